package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type ListDepartmentUsersQuery struct {
	Principal    *access.Principal
	DepartmentID uint
}

type ListDepartmentUsersUseCase struct {
	departmentRepo department.Repository
	assignmentRepo department.AssignmentRepository
	userRepo       user.Repository
	guard          *authorization.Guard
	logger         logger.Interface
}

func NewListDepartmentUsersUseCase(
	departmentRepo department.Repository,
	assignmentRepo department.AssignmentRepository,
	userRepo user.Repository,
	guard *authorization.Guard,
	logger logger.Interface,
) *ListDepartmentUsersUseCase {
	return &ListDepartmentUsersUseCase{
		departmentRepo: departmentRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		guard:          guard,
		logger:         logger,
	}
}

func (uc *ListDepartmentUsersUseCase) Execute(ctx context.Context, query ListDepartmentUsersQuery) ([]*userdto.UserResponse, error) {
	if err := uc.guard.Department(query.Principal, query.DepartmentID, access.ResourceDepartmentUser, access.ActionRead); err != nil {
		return nil, err
	}

	dept, err := uc.departmentRepo.GetByID(ctx, query.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	if dept == nil {
		return nil, apperrors.NewNotFoundError("department not found")
	}

	members, err := uc.assignmentRepo.ListByDepartment(ctx, department.RoleMember, dept.ID())
	if err != nil {
		uc.logger.Errorw("failed to list department members", "error", err, "department_id", dept.ID())
		return nil, fmt.Errorf("failed to list department members: %w", err)
	}

	users, err := uc.userRepo.GetByIDs(ctx, assignedUserIDs(members))
	if err != nil {
		return nil, fmt.Errorf("failed to load department members: %w", err)
	}
	return userdto.ToUserResponses(users), nil
}
