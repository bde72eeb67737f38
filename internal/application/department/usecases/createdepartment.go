package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/department/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type CreateDepartmentCommand struct {
	Principal   *access.Principal
	Name        string
	Description string
}

// CreateDepartmentUseCase creates a direct department. The creator becomes
// its first admin in the same transaction.
type CreateDepartmentUseCase struct {
	departmentRepo department.Repository
	assignmentRepo department.AssignmentRepository
	txManager      db.Transactor
	guard          *authorization.Guard
	logger         logger.Interface
}

func NewCreateDepartmentUseCase(
	departmentRepo department.Repository,
	assignmentRepo department.AssignmentRepository,
	txManager db.Transactor,
	guard *authorization.Guard,
	logger logger.Interface,
) *CreateDepartmentUseCase {
	return &CreateDepartmentUseCase{
		departmentRepo: departmentRepo,
		assignmentRepo: assignmentRepo,
		txManager:      txManager,
		guard:          guard,
		logger:         logger,
	}
}

func (uc *CreateDepartmentUseCase) Execute(ctx context.Context, cmd CreateDepartmentCommand) (*dto.DepartmentResponse, error) {
	if err := uc.guard.Global(cmd.Principal, access.ResourceDepartment, access.ActionCreate); err != nil {
		return nil, err
	}

	dept, err := department.NewDepartment(cmd.Name, cmd.Description, department.CustomerTypeDirect)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.departmentRepo.Create(txCtx, dept); err != nil {
			return fmt.Errorf("failed to create department: %w", err)
		}
		admin, err := department.NewAssignment(department.RoleAdmin, cmd.Principal.UserID(), dept.ID())
		if err != nil {
			return err
		}
		if err := uc.assignmentRepo.Add(txCtx, admin); err != nil {
			return fmt.Errorf("failed to add creator as department admin: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create department", "error", err, "user_id", cmd.Principal.UserID())
		return nil, err
	}

	uc.logger.Infow("department created", "department_id", dept.ID(), "created_by", cmd.Principal.UserID())
	return dto.ToDepartmentResponse(dept), nil
}
