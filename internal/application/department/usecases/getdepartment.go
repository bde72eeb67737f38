package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/department/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type GetDepartmentQuery struct {
	Principal    *access.Principal
	DepartmentID uint
}

type GetDepartmentUseCase struct {
	departmentRepo department.Repository
	assignmentRepo department.AssignmentRepository
	customerRepo   reseller.CustomerRepository
	userRepo       user.Repository
	guard          *authorization.Guard
	logger         logger.Interface
}

func NewGetDepartmentUseCase(
	departmentRepo department.Repository,
	assignmentRepo department.AssignmentRepository,
	customerRepo reseller.CustomerRepository,
	userRepo user.Repository,
	guard *authorization.Guard,
	logger logger.Interface,
) *GetDepartmentUseCase {
	return &GetDepartmentUseCase{
		departmentRepo: departmentRepo,
		assignmentRepo: assignmentRepo,
		customerRepo:   customerRepo,
		userRepo:       userRepo,
		guard:          guard,
		logger:         logger,
	}
}

func (uc *GetDepartmentUseCase) Execute(ctx context.Context, query GetDepartmentQuery) (*dto.DepartmentDetailResponse, error) {
	if err := uc.guard.Department(query.Principal, query.DepartmentID, access.ResourceDepartment, access.ActionRead); err != nil {
		return nil, err
	}

	dept, err := uc.departmentRepo.GetByID(ctx, query.DepartmentID)
	if err != nil {
		uc.logger.Errorw("failed to get department", "error", err, "department_id", query.DepartmentID)
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	if dept == nil {
		return nil, apperrors.NewNotFoundError("department not found")
	}

	admins, err := uc.assignmentRepo.ListByDepartment(ctx, department.RoleAdmin, dept.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list department admins: %w", err)
	}
	members, err := uc.assignmentRepo.ListByDepartment(ctx, department.RoleMember, dept.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list department members: %w", err)
	}

	adminIDs := assignedUserIDs(admins)
	memberIDs := assignedUserIDs(members)
	users, err := uc.userRepo.GetByIDs(ctx, append(append([]uint{}, adminIDs...), memberIDs...))
	if err != nil {
		return nil, fmt.Errorf("failed to load department users: %w", err)
	}

	detail := &dto.DepartmentDetailResponse{
		DepartmentResponse: *dto.ToDepartmentResponse(dept),
		Admins:             dto.ToUserSummaries(adminIDs, users),
		Members:            dto.ToUserSummaries(memberIDs, users),
	}

	link, err := uc.customerRepo.GetByDepartment(ctx, dept.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load reseller link: %w", err)
	}
	if link != nil {
		id := link.ResellerID
		detail.ResellerID = &id
	}

	return detail, nil
}

func assignedUserIDs(list []*department.Assignment) []uint {
	ids := make([]uint, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.UserID)
	}
	return ids
}
