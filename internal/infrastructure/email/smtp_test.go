package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/orris-inc/tenantdesk/internal/shared/config"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func newTestService(sender messageSender) *SMTPEmailService {
	svc := NewSMTPEmailService(config.EmailConfig{
		Enabled:     true,
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		FromAddress: "noreply@example.com",
		FromName:    "Tenantdesk",
	}, "https://app.example.com/")
	svc.sender = sender
	return svc
}

func TestSMTPEmailService_SendWelcome(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(sender)

	err := svc.SendWelcome(context.Background(), WelcomeMessage{
		To:       "new@example.com",
		FullName: "New User",
		Context:  "Acme Sales",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	m := sender.sent[0]
	assert.Equal(t, []string{"new@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Your account is ready"}, m.GetHeader("Subject"))

}

func TestSMTPEmailService_SendFailure(t *testing.T) {
	svc := newTestService(&fakeSender{err: errors.New("connection refused")})
	err := svc.SendWelcome(context.Background(), WelcomeMessage{To: "x@example.com"})
	assert.ErrorContains(t, err, "failed to send email")
}

func TestNewWelcomeMailer(t *testing.T) {
	log := logger.NewNop()

	_, isLog := NewWelcomeMailer(config.EmailConfig{Enabled: false}, "", log).(*LogMailer)
	assert.True(t, isLog)

	_, isSMTP := NewWelcomeMailer(config.EmailConfig{Enabled: true, SMTPHost: "smtp"}, "", log).(*SMTPEmailService)
	assert.True(t, isSMTP)

	assert.NoError(t, NewLogMailer(log).SendWelcome(context.Background(), WelcomeMessage{To: "a@b.c"}))
}

func TestWelcomeMarkdown(t *testing.T) {
	body := welcomeMarkdown(WelcomeMessage{To: "a@example.com"}, "http://x/login")
	assert.Contains(t, body, "Welcome, a@example.com")
	assert.Contains(t, body, "An account was created for you.")
	assert.Contains(t, body, "http://x/login")

	body = welcomeMarkdown(WelcomeMessage{To: "b@example.com", FullName: "Bee", Context: "Acme Sales"}, "http://x/login")
	assert.Contains(t, body, "Welcome, Bee")
	assert.Contains(t, body, "**Acme Sales**")
}
