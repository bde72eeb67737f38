package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type countingJob struct {
	calls atomic.Int32
	err   error
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.calls.Add(1)
	return 2, j.err
}

func TestSchedulerManager_RunsJob(t *testing.T) {
	m := NewSchedulerManager(logger.NewNop())
	job := &countingJob{}

	require.NoError(t, m.RegisterSubscriptionJobs("@every 1s", job))
	m.Start()
	m.Start()
	defer m.Stop(context.Background())

	assert.Eventually(t, func() bool { return job.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestSchedulerManager_InvalidSpec(t *testing.T) {
	m := NewSchedulerManager(logger.NewNop())
	err := m.RegisterSubscriptionJobs("not a cron", &countingJob{})
	assert.ErrorContains(t, err, "invalid expiry schedule")
}

func TestSchedulerManager_DefaultSpec(t *testing.T) {
	m := NewSchedulerManager(logger.NewNop())
	require.NoError(t, m.RegisterSubscriptionJobs("", &countingJob{}))
	assert.Len(t, m.cron.Entries(), 1)
}

func TestSchedulerManager_RunBatchSurvivesErrors(t *testing.T) {
	m := NewSchedulerManager(logger.NewNop())
	job := &countingJob{err: errors.New("db down")}
	assert.NotPanics(t, func() { m.runBatch(context.Background(), "x", job) })
	assert.Equal(t, int32(1), job.calls.Load())
}

func TestSchedulerManager_StopWithoutStart(t *testing.T) {
	m := NewSchedulerManager(logger.NewNop())
	assert.NotPanics(t, func() { m.Stop(context.Background()) })
}
