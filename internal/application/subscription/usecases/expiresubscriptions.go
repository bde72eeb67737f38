package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

const expireBatchSize = 200

// ExpireSubscriptionsUseCase marks active subscriptions whose end date has
// passed as expired. It runs from the scheduler and the expire command.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	metrics          *metrics.Metrics
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(subscriptionRepo subscription.Repository, metrics *metrics.Metrics, logger logger.Interface) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{subscriptionRepo: subscriptionRepo, metrics: metrics, logger: logger}
}

// Execute sweeps in batches until nothing is left and returns how many
// subscriptions it expired.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	today := biztime.Today()
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		batch, err := uc.subscriptionRepo.FindExpired(ctx, today, expireBatchSize)
		if err != nil {
			return total, fmt.Errorf("failed to find expired subscriptions: %w", err)
		}

		expired := 0
		for _, sub := range batch {
			if err := sub.MarkAsExpired(); err != nil {
				uc.logger.Warnw("skipping subscription", "subscription_id", sub.ID(), "error", err)
				continue
			}
			if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
				if errors.Is(err, subscription.ErrStatusChanged) {
					uc.logger.Infow("subscription changed during sweep, skipping", "subscription_id", sub.ID())
					continue
				}
				uc.metrics.SubscriptionsExpired(total)
				return total, fmt.Errorf("failed to expire subscription %d: %w", sub.ID(), err)
			}
			expired++
			total++
		}

		if len(batch) < expireBatchSize || expired == 0 {
			break
		}
	}

	uc.metrics.SubscriptionsExpired(total)
	if total > 0 {
		uc.logger.Infow("subscriptions expired", "count", total, "as_of", today.Format("2006-01-02"))
	}
	return total, nil
}
