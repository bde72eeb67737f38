package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/department/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type ListDepartmentsQuery struct {
	Principal *access.Principal
	Page      int
	PageSize  int
}

type ListDepartmentsResult struct {
	Departments []*dto.DepartmentResponse
	Total       int64
	Page        int
	PageSize    int
}

// ListDepartmentsUseCase returns the departments the caller administers,
// belongs to or manages as a reseller. Root sees all of them.
type ListDepartmentsUseCase struct {
	departmentRepo department.Repository
	guard          *authorization.Guard
	logger         logger.Interface
}

func NewListDepartmentsUseCase(departmentRepo department.Repository, guard *authorization.Guard, logger logger.Interface) *ListDepartmentsUseCase {
	return &ListDepartmentsUseCase{departmentRepo: departmentRepo, guard: guard, logger: logger}
}

func (uc *ListDepartmentsUseCase) Execute(ctx context.Context, query ListDepartmentsQuery) (*ListDepartmentsResult, error) {
	scope, err := uc.guard.Scope(query.Principal, access.ResourceDepartment)
	if err != nil {
		return nil, err
	}

	page := utils.NormalizePagination(query.Page, query.PageSize)
	list, total, err := uc.departmentRepo.List(ctx, authorization.DepartmentFilter(scope, page.Page, page.PageSize))
	if err != nil {
		uc.logger.Errorw("failed to list departments", "error", err, "user_id", query.Principal.UserID())
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	return &ListDepartmentsResult{
		Departments: dto.ToDepartmentResponses(list),
		Total:       total,
		Page:        page.Page,
		PageSize:    page.PageSize,
	}, nil
}
