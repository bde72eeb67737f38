package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type ListUsersQuery struct {
	Principal *access.Principal
	Search    string
	Page      int
	PageSize  int
}

type ListUsersResult struct {
	Users    []*dto.UserResponse
	Total    int64
	Page     int
	PageSize int
}

// ListUsersUseCase lists the users the caller can see: everyone for root,
// the admins and members of administered or customer departments, and always
// the caller themselves.
type ListUsersUseCase struct {
	userRepo user.Repository
	guard    *authorization.Guard
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, guard *authorization.Guard, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, guard: guard, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	scope, err := uc.guard.Scope(query.Principal, access.ResourceUser)
	if err != nil {
		return nil, err
	}

	page := utils.NormalizePagination(query.Page, query.PageSize)
	filter := authorization.UserFilter(scope, query.Principal.UserID(), strings.TrimSpace(query.Search), page.Page, page.PageSize)

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err, "user_id", query.Principal.UserID())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ListUsersResult{
		Users:    dto.ToUserResponses(users),
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}
