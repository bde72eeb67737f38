package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/reseller/dto"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type GetResellerQuery struct {
	Principal  *access.Principal
	ResellerID uint
}

type GetResellerUseCase struct {
	resellerRepo   reseller.Repository
	adminRepo      reseller.AdminRepository
	customerRepo   reseller.CustomerRepository
	departmentRepo department.Repository
	userRepo       user.Repository
	guard          *authorization.Guard
	logger         logger.Interface
}

func NewGetResellerUseCase(
	resellerRepo reseller.Repository,
	adminRepo reseller.AdminRepository,
	customerRepo reseller.CustomerRepository,
	departmentRepo department.Repository,
	userRepo user.Repository,
	guard *authorization.Guard,
	logger logger.Interface,
) *GetResellerUseCase {
	return &GetResellerUseCase{
		resellerRepo:   resellerRepo,
		adminRepo:      adminRepo,
		customerRepo:   customerRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		guard:          guard,
		logger:         logger,
	}
}

func (uc *GetResellerUseCase) Execute(ctx context.Context, query GetResellerQuery) (*dto.ResellerDetailResponse, error) {
	if err := uc.guard.Reseller(query.Principal, query.ResellerID, access.ResourceReseller, access.ActionRead); err != nil {
		return nil, err
	}

	r, err := uc.resellerRepo.GetByID(ctx, query.ResellerID)
	if err != nil {
		uc.logger.Errorw("failed to get reseller", "error", err, "reseller_id", query.ResellerID)
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	if r == nil {
		return nil, apperrors.NewNotFoundError("reseller not found")
	}

	admins, err := uc.adminRepo.ListByReseller(ctx, r.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list reseller admins: %w", err)
	}
	adminIDs := make([]uint, 0, len(admins))
	for _, a := range admins {
		adminIDs = append(adminIDs, a.UserID)
	}
	users, err := uc.userRepo.GetByIDs(ctx, adminIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load reseller admins: %w", err)
	}
	summaries := make([]userdto.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, userdto.ToUserSummary(u))
	}

	customers, err := loadCustomers(ctx, uc.customerRepo, uc.departmentRepo, r.ID())
	if err != nil {
		return nil, err
	}

	return &dto.ResellerDetailResponse{
		ResellerResponse: *dto.ToResellerResponse(r),
		Admins:           summaries,
		Customers:        customers,
	}, nil
}

func loadCustomers(ctx context.Context, customerRepo reseller.CustomerRepository, departmentRepo department.Repository, resellerID uint) ([]*dto.CustomerResponse, error) {
	links, err := customerRepo.ListByReseller(ctx, resellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reseller customers: %w", err)
	}
	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.DepartmentID)
	}
	depts, err := departmentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer departments: %w", err)
	}
	return dto.ToCustomerResponses(links, depts), nil
}
