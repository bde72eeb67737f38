package goroutine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	SafeGo(logger.NewNop(), "panicky", func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestGroup_Wait(t *testing.T) {
	g := NewGroup(logger.NewNop())
	release := make(chan struct{})
	finished := false

	g.Go("slow", func() {
		<-release
		finished = true
	})
	g.Go("panics", func() { panic("ignored") })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, g.Wait(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, g.Wait(context.Background()))
	assert.True(t, finished)
}
