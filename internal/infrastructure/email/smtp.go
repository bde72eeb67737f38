// Package email sends transactional mail over SMTP.
package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/orris-inc/tenantdesk/internal/shared/config"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/services/markdown"
)

// WelcomeMessage goes to a user whose account was created on their behalf.
type WelcomeMessage struct {
	To       string
	FullName string
	// Context names what the account was created for, e.g. a department.
	Context string
}

// WelcomeMailer is implemented by SMTPEmailService and LogMailer.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, msg WelcomeMessage) error
}

type messageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	fromAddress string
	fromName    string
	baseURL     string
	sender      messageSender
	renderer    *markdown.Renderer
}

func NewSMTPEmailService(cfg config.EmailConfig, baseURL string) *SMTPEmailService {
	return &SMTPEmailService{
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		baseURL:     strings.TrimRight(baseURL, "/"),
		sender:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		renderer:    markdown.NewRenderer(),
	}
}

// NewWelcomeMailer returns the SMTP mailer when email is enabled and a mailer
// that only logs otherwise.
func NewWelcomeMailer(cfg config.EmailConfig, baseURL string, log logger.Interface) WelcomeMailer {
	if !cfg.Enabled || cfg.SMTPHost == "" {
		return NewLogMailer(log)
	}
	return NewSMTPEmailService(cfg, baseURL)
}

func welcomeMarkdown(msg WelcomeMessage, loginURL string) string {
	name := msg.FullName
	if name == "" {
		name = msg.To
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## Welcome, %s\n\n", name)
	if msg.Context != "" {
		fmt.Fprintf(&b, "An account was created for you to access **%s**.\n\n", msg.Context)
	} else {
		b.WriteString("An account was created for you.\n\n")
	}
	fmt.Fprintf(&b, "Sign in with `%s` at %s using the password your administrator shared with you.\n", msg.To, loginURL)
	return b.String()
}

func (s *SMTPEmailService) SendWelcome(_ context.Context, msg WelcomeMessage) error {
	body := welcomeMarkdown(msg, s.baseURL+"/login")
	htmlBody, err := s.renderer.Render(body)
	if err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}
	return s.sendEmail(msg.To, "Your account is ready", htmlBody, body)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogMailer records the message instead of sending it.
type LogMailer struct {
	logger logger.Interface
}

func NewLogMailer(log logger.Interface) *LogMailer {
	return &LogMailer{logger: log.Named("mailer")}
}

func (m *LogMailer) SendWelcome(_ context.Context, msg WelcomeMessage) error {
	m.logger.Infow("email disabled, welcome message not sent", "to", msg.To)
	return nil
}
