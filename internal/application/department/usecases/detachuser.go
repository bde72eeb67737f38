package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type DetachUserCommand struct {
	Principal    *access.Principal
	DepartmentID uint
	UserID       uint
}

type detacher struct {
	assignmentRepo department.AssignmentRepository
	guard          *authorization.Guard
	logger         logger.Interface
}

// detach deletes exactly one assignment row. Removing someone who does not
// hold the role is not found.
func (d *detacher) detach(ctx context.Context, role department.Role, resource access.Resource, cmd DetachUserCommand) error {
	if err := d.guard.Department(cmd.Principal, cmd.DepartmentID, resource, access.ActionDelete); err != nil {
		return err
	}

	removed, err := d.assignmentRepo.Remove(ctx, role, cmd.UserID, cmd.DepartmentID)
	if err != nil {
		d.logger.Errorw("failed to remove department assignment", "error", err,
			"department_id", cmd.DepartmentID, "user_id", cmd.UserID, "role", role)
		return fmt.Errorf("failed to remove department %s: %w", role, err)
	}
	if !removed {
		if role == department.RoleAdmin {
			return apperrors.NewNotFoundError("user is not an admin of this department")
		}
		return apperrors.NewNotFoundError("user is not a member of this department")
	}

	d.logger.Infow("user removed from department",
		"department_id", cmd.DepartmentID,
		"user_id", cmd.UserID,
		"role", role,
		"by", cmd.Principal.UserID(),
	)
	return nil
}

type RemoveDepartmentAdminUseCase struct {
	detacher
}

func NewRemoveDepartmentAdminUseCase(assignmentRepo department.AssignmentRepository, guard *authorization.Guard, logger logger.Interface) *RemoveDepartmentAdminUseCase {
	return &RemoveDepartmentAdminUseCase{detacher{assignmentRepo, guard, logger}}
}

func (uc *RemoveDepartmentAdminUseCase) Execute(ctx context.Context, cmd DetachUserCommand) error {
	return uc.detach(ctx, department.RoleAdmin, access.ResourceDepartmentAdmin, cmd)
}

type RemoveDepartmentUserUseCase struct {
	detacher
}

func NewRemoveDepartmentUserUseCase(assignmentRepo department.AssignmentRepository, guard *authorization.Guard, logger logger.Interface) *RemoveDepartmentUserUseCase {
	return &RemoveDepartmentUserUseCase{detacher{assignmentRepo, guard, logger}}
}

func (uc *RemoveDepartmentUserUseCase) Execute(ctx context.Context, cmd DetachUserCommand) error {
	return uc.detach(ctx, department.RoleMember, access.ResourceDepartmentUser, cmd)
}
