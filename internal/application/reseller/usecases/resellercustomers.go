package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	deptdto "github.com/orris-inc/tenantdesk/internal/application/department/dto"
	"github.com/orris-inc/tenantdesk/internal/application/reseller/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type AddResellerCustomerCommand struct {
	Principal   *access.Principal
	ResellerID  uint
	Name        string
	Description string
}

type AddResellerCustomerResult struct {
	ResellerID uint
	Department *deptdto.DepartmentResponse
	IsActive   bool
}

// AddResellerCustomerUseCase creates a new department of type reseller and
// links it to the reseller as an active customer.
type AddResellerCustomerUseCase struct {
	resellerRepo   reseller.Repository
	customerRepo   reseller.CustomerRepository
	departmentRepo department.Repository
	txManager      db.Transactor
	guard          *authorization.Guard
	logger         logger.Interface
}

func NewAddResellerCustomerUseCase(
	resellerRepo reseller.Repository,
	customerRepo reseller.CustomerRepository,
	departmentRepo department.Repository,
	txManager db.Transactor,
	guard *authorization.Guard,
	logger logger.Interface,
) *AddResellerCustomerUseCase {
	return &AddResellerCustomerUseCase{
		resellerRepo:   resellerRepo,
		customerRepo:   customerRepo,
		departmentRepo: departmentRepo,
		txManager:      txManager,
		guard:          guard,
		logger:         logger,
	}
}

func (uc *AddResellerCustomerUseCase) Execute(ctx context.Context, cmd AddResellerCustomerCommand) (*AddResellerCustomerResult, error) {
	if err := uc.guard.Reseller(cmd.Principal, cmd.ResellerID, access.ResourceResellerCustomer, access.ActionCreate); err != nil {
		return nil, err
	}

	var (
		dept *department.Department
		link *reseller.Customer
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := uc.resellerRepo.GetByID(txCtx, cmd.ResellerID)
		if err != nil {
			return fmt.Errorf("failed to get reseller: %w", err)
		}
		if r == nil {
			return apperrors.NewNotFoundError("reseller not found")
		}
		if !r.IsActive() {
			return apperrors.NewBadRequestError("reseller is not active")
		}

		dept, err = department.NewDepartment(cmd.Name, cmd.Description, department.CustomerTypeReseller)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := uc.departmentRepo.Create(txCtx, dept); err != nil {
			return fmt.Errorf("failed to create department: %w", err)
		}

		link, err = reseller.NewCustomer(r.ID(), dept.ID())
		if err != nil {
			return err
		}
		if err := uc.customerRepo.Add(txCtx, link); err != nil {
			return fmt.Errorf("failed to link customer: %w", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.GetAppError(err) == nil {
			uc.logger.Errorw("failed to add reseller customer", "error", err, "reseller_id", cmd.ResellerID)
		}
		return nil, err
	}

	uc.logger.Infow("reseller customer created",
		"reseller_id", cmd.ResellerID,
		"department_id", dept.ID(),
		"by", cmd.Principal.UserID(),
	)
	return &AddResellerCustomerResult{
		ResellerID: cmd.ResellerID,
		Department: deptdto.ToDepartmentResponse(dept),
		IsActive:   link.IsActive,
	}, nil
}

type ListResellerCustomersQuery struct {
	Principal  *access.Principal
	ResellerID uint
}

type ListResellerCustomersUseCase struct {
	resellerRepo   reseller.Repository
	customerRepo   reseller.CustomerRepository
	departmentRepo department.Repository
	guard          *authorization.Guard
	logger         logger.Interface
}

func NewListResellerCustomersUseCase(
	resellerRepo reseller.Repository,
	customerRepo reseller.CustomerRepository,
	departmentRepo department.Repository,
	guard *authorization.Guard,
	logger logger.Interface,
) *ListResellerCustomersUseCase {
	return &ListResellerCustomersUseCase{
		resellerRepo:   resellerRepo,
		customerRepo:   customerRepo,
		departmentRepo: departmentRepo,
		guard:          guard,
		logger:         logger,
	}
}

func (uc *ListResellerCustomersUseCase) Execute(ctx context.Context, query ListResellerCustomersQuery) ([]*dto.CustomerResponse, error) {
	if err := uc.guard.Reseller(query.Principal, query.ResellerID, access.ResourceResellerCustomer, access.ActionRead); err != nil {
		return nil, err
	}

	r, err := uc.resellerRepo.GetByID(ctx, query.ResellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	if r == nil {
		return nil, apperrors.NewNotFoundError("reseller not found")
	}

	customers, err := loadCustomers(ctx, uc.customerRepo, uc.departmentRepo, r.ID())
	if err != nil {
		uc.logger.Errorw("failed to list reseller customers", "error", err, "reseller_id", r.ID())
		return nil, err
	}
	return customers, nil
}

type RemoveResellerCustomerCommand struct {
	Principal    *access.Principal
	ResellerID   uint
	DepartmentID uint
}

// RemoveResellerCustomerUseCase unlinks a customer. The department and its
// subscriptions stay; the reseller simply loses its reach over them.
type RemoveResellerCustomerUseCase struct {
	customerRepo reseller.CustomerRepository
	guard        *authorization.Guard
	logger       logger.Interface
}

func NewRemoveResellerCustomerUseCase(customerRepo reseller.CustomerRepository, guard *authorization.Guard, logger logger.Interface) *RemoveResellerCustomerUseCase {
	return &RemoveResellerCustomerUseCase{customerRepo: customerRepo, guard: guard, logger: logger}
}

func (uc *RemoveResellerCustomerUseCase) Execute(ctx context.Context, cmd RemoveResellerCustomerCommand) error {
	if err := uc.guard.Reseller(cmd.Principal, cmd.ResellerID, access.ResourceResellerCustomer, access.ActionDelete); err != nil {
		return err
	}

	removed, err := uc.customerRepo.Remove(ctx, cmd.ResellerID, cmd.DepartmentID)
	if err != nil {
		uc.logger.Errorw("failed to remove reseller customer", "error", err,
			"reseller_id", cmd.ResellerID, "department_id", cmd.DepartmentID)
		return fmt.Errorf("failed to remove reseller customer: %w", err)
	}
	if !removed {
		return apperrors.NewNotFoundError("department is not a customer of this reseller")
	}

	uc.logger.Infow("reseller customer removed",
		"reseller_id", cmd.ResellerID,
		"department_id", cmd.DepartmentID,
		"by", cmd.Principal.UserID(),
	)
	return nil
}
