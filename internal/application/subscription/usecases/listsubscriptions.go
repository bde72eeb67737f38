package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type ListSubscriptionsQuery struct {
	Principal    *access.Principal
	DepartmentID *uint
	Status       string
	Page         int
	PageSize     int
}

type ListSubscriptionsResult struct {
	Subscriptions []*dto.SubscriptionResponse
	Total         int64
	Page          int
	PageSize      int
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	guard            *authorization.Guard
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(subscriptionRepo subscription.Repository, guard *authorization.Guard, logger logger.Interface) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{subscriptionRepo: subscriptionRepo, guard: guard, logger: logger}
}

// Execute lists the subscriptions in the caller's scope. The status filter
// matches the stored status, which the expiry sweep keeps current.
func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, query ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	scope, err := uc.guard.Scope(query.Principal, access.ResourceSubscription)
	if err != nil {
		return nil, err
	}

	page := utils.NormalizePagination(query.Page, query.PageSize)
	filter := subscription.ListFilter{
		Scope:        authorization.SubscriptionScope(scope),
		DepartmentID: query.DepartmentID,
		Page:         page.Page,
		PageSize:     page.PageSize,
	}
	if query.Status != "" {
		status := subscription.Status(query.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("invalid subscription status", query.Status)
		}
		filter.Status = &status
	}

	list, total, err := uc.subscriptionRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return &ListSubscriptionsResult{
		Subscriptions: dto.ToSubscriptionResponses(list),
		Total:         total,
		Page:          page.Page,
		PageSize:      page.PageSize,
	}, nil
}
