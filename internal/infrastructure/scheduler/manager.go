// Package scheduler runs the periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// DefaultExpirySpec runs the expiry sweep five minutes past every hour.
const DefaultExpirySpec = "0 5 * * * *"

// BatchJob processes one batch and returns the number of items handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

type SchedulerManager struct {
	cron   *cron.Cron
	logger logger.Interface

	mu      sync.Mutex
	started bool
}

// NewSchedulerManager evaluates cron expressions (with a seconds field) in
// the business timezone. Overlapping runs of the same job are skipped.
func NewSchedulerManager(log logger.Interface) *SchedulerManager {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(biztime.Location()),
		cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &SchedulerManager{cron: c, logger: log}
}

// RegisterSubscriptionJobs schedules the subscription expiry sweep.
func (m *SchedulerManager) RegisterSubscriptionJobs(spec string, expireSubscriptionsJob BatchJob) error {
	if spec == "" {
		spec = DefaultExpirySpec
	}
	_, err := m.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		m.runBatch(ctx, "subscription-expire", expireSubscriptionsJob)
	})
	if err != nil {
		return fmt.Errorf("invalid expiry schedule %q: %w", spec, err)
	}

	m.logger.Infow("registered subscription jobs", "spec", spec)
	return nil
}

func (m *SchedulerManager) runBatch(ctx context.Context, name string, job BatchJob) {
	startTime := biztime.NowUTC()

	count, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("scheduled job failed",
			"job", name,
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if count > 0 {
		m.logger.Infow("scheduled job processed items",
			"job", name,
			"count", count,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("scheduled job found nothing to process",
			"job", name,
			"duration", time.Since(startTime),
		)
	}
}

func (m *SchedulerManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.cron.Start()
	m.started = true
	m.logger.Infow("scheduler started", "jobs", len(m.cron.Entries()))
}

// Stop waits for running jobs or until ctx is done.
func (m *SchedulerManager) Stop(ctx context.Context) {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	m.started = false
	m.mu.Unlock()

	select {
	case <-m.cron.Stop().Done():
		m.logger.Infow("scheduler stopped")
	case <-ctx.Done():
		m.logger.Warnw("scheduler stop timed out")
	}
}
