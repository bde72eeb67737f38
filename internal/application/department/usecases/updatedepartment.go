package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/department/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type UpdateDepartmentCommand struct {
	Principal    *access.Principal
	DepartmentID uint
	Name         *string
	Description  *string
}

type UpdateDepartmentUseCase struct {
	departmentRepo department.Repository
	guard          *authorization.Guard
	logger         logger.Interface
}

func NewUpdateDepartmentUseCase(departmentRepo department.Repository, guard *authorization.Guard, logger logger.Interface) *UpdateDepartmentUseCase {
	return &UpdateDepartmentUseCase{departmentRepo: departmentRepo, guard: guard, logger: logger}
}

func (uc *UpdateDepartmentUseCase) Execute(ctx context.Context, cmd UpdateDepartmentCommand) (*dto.DepartmentResponse, error) {
	if err := uc.guard.Department(cmd.Principal, cmd.DepartmentID, access.ResourceDepartment, access.ActionUpdate); err != nil {
		return nil, err
	}

	dept, err := uc.departmentRepo.GetByID(ctx, cmd.DepartmentID)
	if err != nil {
		uc.logger.Errorw("failed to get department", "error", err, "department_id", cmd.DepartmentID)
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	if dept == nil {
		return nil, apperrors.NewNotFoundError("department not found")
	}

	if err := dept.Update(cmd.Name, cmd.Description); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.departmentRepo.Update(ctx, dept); err != nil {
		uc.logger.Errorw("failed to update department", "error", err, "department_id", cmd.DepartmentID)
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	uc.logger.Infow("department updated", "department_id", dept.ID(), "updated_by", cmd.Principal.UserID())
	return dto.ToDepartmentResponse(dept), nil
}
