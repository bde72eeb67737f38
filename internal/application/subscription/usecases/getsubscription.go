package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	Principal      *access.Principal
	SubscriptionID uint
}

type GetSubscriptionUseCase struct {
	loader subscriptionLoader
	guard  *authorization.Guard
	logger logger.Interface
}

func NewGetSubscriptionUseCase(subscriptionRepo subscription.Repository, guard *authorization.Guard, logger logger.Interface) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{loader: subscriptionLoader{subscriptionRepo}, guard: guard, logger: logger}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*dto.SubscriptionResponse, error) {
	sub, err := uc.loader.load(ctx, query.Principal, query.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Subscription(query.Principal, sub, access.ResourceSubscription, access.ActionRead); err != nil {
		return nil, err
	}
	return dto.ToSubscriptionResponse(sub), nil
}

// subscriptionLoader fetches a subscription ahead of a row-level check. A
// missing row is not found for root admins and forbidden for everyone else,
// the same answer they get for a subscription of another tenant.
type subscriptionLoader struct {
	repo subscription.Repository
}

func (l subscriptionLoader) load(ctx context.Context, p *access.Principal, id uint) (*subscription.Subscription, error) {
	if p == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	sub, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		if p.IsRoot() {
			return nil, apperrors.NewNotFoundError("subscription not found")
		}
		return nil, apperrors.NewForbiddenError(constants.ErrMsgForbidden)
	}
	return sub, nil
}
