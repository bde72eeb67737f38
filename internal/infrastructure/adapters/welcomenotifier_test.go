package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/email"
	"github.com/orris-inc/tenantdesk/internal/shared/goroutine"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type mockMailer struct {
	SendWelcomeFunc func(ctx context.Context, msg email.WelcomeMessage) error
}

func (m *mockMailer) SendWelcome(ctx context.Context, msg email.WelcomeMessage) error {
	return m.SendWelcomeFunc(ctx, msg)
}

func TestWelcomeNotifierAdapter(t *testing.T) {
	var sent email.WelcomeMessage
	adapter := NewWelcomeNotifierAdapter(&mockMailer{SendWelcomeFunc: func(_ context.Context, msg email.WelcomeMessage) error {
		sent = msg
		return nil
	}})

	require.NoError(t, adapter.NotifyWelcome(context.Background(), "bob@example.com", "Bob", "department Acme"))
	assert.Equal(t, email.WelcomeMessage{To: "bob@example.com", FullName: "Bob", Context: "department Acme"}, sent)

	failing := NewWelcomeNotifierAdapter(&mockMailer{SendWelcomeFunc: func(context.Context, email.WelcomeMessage) error {
		return errors.New("smtp down")
	}})
	assert.Error(t, failing.NotifyWelcome(context.Background(), "bob@example.com", "Bob", "x"))
}

func TestAsyncWelcomeNotifier(t *testing.T) {
	tasks := goroutine.NewGroup(logger.NewNop())
	sent := make(chan email.WelcomeMessage, 2)
	inner := NewWelcomeNotifierAdapter(&mockMailer{SendWelcomeFunc: func(ctx context.Context, msg email.WelcomeMessage) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		sent <- msg
		if msg.To == "broken@example.com" {
			return errors.New("smtp down")
		}
		return nil
	}})
	async := NewAsyncWelcomeNotifier(inner, tasks, time.Second, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, async.NotifyWelcome(ctx, "bob@example.com", "Bob", "reseller Northwind"))
	cancel()
	require.NoError(t, async.NotifyWelcome(context.Background(), "broken@example.com", "X", "x"))

	require.NoError(t, tasks.Wait(context.Background()))
	close(sent)
	var got []string
	for msg := range sent {
		got = append(got, msg.To)
	}
	assert.ElementsMatch(t, []string{"bob@example.com", "broken@example.com"}, got)
}
