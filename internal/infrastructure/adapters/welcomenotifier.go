// Package adapters connects application ports to infrastructure services.
package adapters

import (
	"context"
	"time"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/email"
	"github.com/orris-inc/tenantdesk/internal/shared/goroutine"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// WelcomeNotifierAdapter implements the user use cases' WelcomeNotifier on
// top of an email.WelcomeMailer.
type WelcomeNotifierAdapter struct {
	mailer email.WelcomeMailer
}

func NewWelcomeNotifierAdapter(mailer email.WelcomeMailer) *WelcomeNotifierAdapter {
	return &WelcomeNotifierAdapter{mailer: mailer}
}

func (a *WelcomeNotifierAdapter) NotifyWelcome(ctx context.Context, address, fullName, label string) error {
	return a.mailer.SendWelcome(ctx, email.WelcomeMessage{
		To:       address,
		FullName: fullName,
		Context:  label,
	})
}

type welcomeNotifier interface {
	NotifyWelcome(ctx context.Context, address, fullName, label string) error
}

// AsyncWelcomeNotifier sends welcome notifications in the background so a
// slow mail server never holds up the request that created the user.
// Failures are logged, not returned.
type AsyncWelcomeNotifier struct {
	next    welcomeNotifier
	tasks   *goroutine.Group
	timeout time.Duration
	logger  logger.Interface
}

func NewAsyncWelcomeNotifier(next welcomeNotifier, tasks *goroutine.Group, timeout time.Duration, log logger.Interface) *AsyncWelcomeNotifier {
	return &AsyncWelcomeNotifier{next: next, tasks: tasks, timeout: timeout, logger: log}
}

func (a *AsyncWelcomeNotifier) NotifyWelcome(ctx context.Context, address, fullName, label string) error {
	detached := context.WithoutCancel(ctx)
	a.tasks.Go("welcome-notification", func() {
		sendCtx, cancel := context.WithTimeout(detached, a.timeout)
		defer cancel()
		if err := a.next.NotifyWelcome(sendCtx, address, fullName, label); err != nil {
			a.logger.Warnw("failed to send welcome notification", "error", err, "to", address)
		}
	})
	return nil
}
