package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	userusecases "github.com/orris-inc/tenantdesk/internal/application/user/usecases"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// UserProvisioner resolves an email to a user, creating the account when needed.
type UserProvisioner interface {
	Execute(ctx context.Context, cmd userusecases.EnsureUserCommand) (*userusecases.EnsureUserResult, error)
	Welcome(ctx context.Context, res *userusecases.EnsureUserResult, label string)
}

type AttachUserCommand struct {
	Principal    *access.Principal
	DepartmentID uint
	Email        string
	FullName     string
	Password     string
}

type AttachUserResult struct {
	DepartmentID uint
	Role         department.Role
	User         *userdto.UserResponse
	UserCreated  bool
}

// attacher holds the attach-by-email flow shared by the admin and member
// use cases. Everything from the department lookup to the assignment insert
// runs in one transaction.
type attacher struct {
	departmentRepo department.Repository
	assignmentRepo department.AssignmentRepository
	users          UserProvisioner
	txManager      db.Transactor
	guard          *authorization.Guard
	logger         logger.Interface
}

func (a *attacher) attach(ctx context.Context, role department.Role, resource access.Resource, cmd AttachUserCommand) (*AttachUserResult, error) {
	if err := a.guard.Department(cmd.Principal, cmd.DepartmentID, resource, access.ActionCreate); err != nil {
		return nil, err
	}

	var (
		dept     *department.Department
		provided *userusecases.EnsureUserResult
	)
	err := a.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		dept, err = a.departmentRepo.GetByID(txCtx, cmd.DepartmentID)
		if err != nil {
			return fmt.Errorf("failed to get department: %w", err)
		}
		if dept == nil {
			return apperrors.NewNotFoundError("department not found")
		}

		provided, err = a.users.Execute(txCtx, userusecases.EnsureUserCommand{
			Email:    cmd.Email,
			FullName: cmd.FullName,
			Password: cmd.Password,
		})
		if err != nil {
			return err
		}

		exists, err := a.assignmentRepo.Exists(txCtx, role, provided.User.ID(), dept.ID())
		if err != nil {
			return fmt.Errorf("failed to check department %s: %w", role, err)
		}
		if exists {
			return alreadyAssigned(role)
		}

		assignment, err := department.NewAssignment(role, provided.User.ID(), dept.ID())
		if err != nil {
			return err
		}
		if err := a.assignmentRepo.Add(txCtx, assignment); err != nil {
			if apperrors.IsDuplicateError(err) {
				return alreadyAssigned(role)
			}
			return fmt.Errorf("failed to add department %s: %w", role, err)
		}
		return nil
	})
	if err != nil {
		if apperrors.GetAppError(err) == nil {
			a.logger.Errorw("failed to attach user to department", "error", err, "department_id", cmd.DepartmentID, "role", role)
		}
		return nil, err
	}

	a.users.Welcome(ctx, provided, "department "+dept.Name())
	a.logger.Infow("user attached to department",
		"department_id", dept.ID(),
		"user_id", provided.User.ID(),
		"role", role,
		"user_created", provided.Created,
		"by", cmd.Principal.UserID(),
	)

	return &AttachUserResult{
		DepartmentID: dept.ID(),
		Role:         role,
		User:         userdto.ToUserResponse(provided.User),
		UserCreated:  provided.Created,
	}, nil
}

func alreadyAssigned(role department.Role) error {
	if role == department.RoleAdmin {
		return apperrors.NewConflictError("user is already an admin of this department")
	}
	return apperrors.NewConflictError("user is already a member of this department")
}

// AddDepartmentAdminUseCase is reserved to root admins.
type AddDepartmentAdminUseCase struct {
	attacher
}

func NewAddDepartmentAdminUseCase(
	departmentRepo department.Repository,
	assignmentRepo department.AssignmentRepository,
	users UserProvisioner,
	txManager db.Transactor,
	guard *authorization.Guard,
	logger logger.Interface,
) *AddDepartmentAdminUseCase {
	return &AddDepartmentAdminUseCase{attacher{departmentRepo, assignmentRepo, users, txManager, guard, logger}}
}

func (uc *AddDepartmentAdminUseCase) Execute(ctx context.Context, cmd AttachUserCommand) (*AttachUserResult, error) {
	return uc.attach(ctx, department.RoleAdmin, access.ResourceDepartmentAdmin, cmd)
}

// AddDepartmentUserUseCase is open to root and the department's admins.
type AddDepartmentUserUseCase struct {
	attacher
}

func NewAddDepartmentUserUseCase(
	departmentRepo department.Repository,
	assignmentRepo department.AssignmentRepository,
	users UserProvisioner,
	txManager db.Transactor,
	guard *authorization.Guard,
	logger logger.Interface,
) *AddDepartmentUserUseCase {
	return &AddDepartmentUserUseCase{attacher{departmentRepo, assignmentRepo, users, txManager, guard, logger}}
}

func (uc *AddDepartmentUserUseCase) Execute(ctx context.Context, cmd AttachUserCommand) (*AttachUserResult, error) {
	return uc.attach(ctx, department.RoleMember, access.ResourceDepartmentUser, cmd)
}
