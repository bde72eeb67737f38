package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	Principal      *access.Principal
	SubscriptionID uint
}

type CancelSubscriptionUseCase struct {
	loader           subscriptionLoader
	subscriptionRepo subscription.Repository
	guard            *authorization.Guard
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(subscriptionRepo subscription.Repository, guard *authorization.Guard, logger logger.Interface) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		loader:           subscriptionLoader{subscriptionRepo},
		subscriptionRepo: subscriptionRepo,
		guard:            guard,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionResponse, error) {
	sub, err := uc.loader.load(ctx, cmd.Principal, cmd.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Subscription(cmd.Principal, sub, access.ResourceSubscription, access.ActionUpdate); err != nil {
		return nil, err
	}

	if status := sub.EffectiveStatus(biztime.Today()); status.IsTerminal() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("subscription is already %s", status))
	}
	if err := sub.Cancel(); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		if errors.Is(err, subscription.ErrStatusChanged) {
			return nil, apperrors.NewBadRequestError("subscription was modified concurrently", "reload it and retry")
		}
		uc.logger.Errorw("failed to cancel subscription", "error", err, "subscription_id", sub.ID())
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}

	uc.logger.Infow("subscription cancelled", "subscription_id", sub.ID(), "by", cmd.Principal.UserID())
	return dto.ToSubscriptionResponse(sub), nil
}
