// AngelaMos | 2026
// notify.go

// Package notify sends transactional email. Every send is best-effort:
// callers log failures and never fail the request over mail.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/rentloop/rentloop-api/internal/config"
)

type Mailer interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendApplicationReceived(
		ctx context.Context,
		email, name, propertyTitle, tenantName string,
	) error
	SendApplicationStatusChanged(
		ctx context.Context,
		email, name, propertyTitle, status string,
	) error
	SendVisitRequested(
		ctx context.Context,
		email, name, propertyTitle string,
		preferredAt time.Time,
	) error
	SendVisitStatusChanged(
		ctx context.Context,
		email, name, propertyTitle, status string,
	) error
	SendAgreementReady(
		ctx context.Context,
		email, name, propertyTitle string,
	) error
}

type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridMailer(cfg config.MailConfig) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.SendGridKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

func (m *SendGridMailer) send(to *mail.Email, subject, body string) error {
	msg := mail.NewSingleEmail(m.from, subject, to, body, body)

	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf(
			"send email: sendgrid status %d: %s",
			resp.StatusCode,
			resp.Body,
		)
	}

	return nil
}

func (m *SendGridMailer) SendWelcome(
	ctx context.Context,
	email, name string,
) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to RentLoop. Your account is ready.\n",
		name,
	)
	return m.send(mail.NewEmail(name, email), "Welcome to RentLoop", body)
}

func (m *SendGridMailer) SendApplicationReceived(
	ctx context.Context,
	email, name, propertyTitle, tenantName string,
) error {
	body := fmt.Sprintf(
		"Hi %s,\n\n%s applied for your listing %q. Review it in your dashboard.\n",
		name, tenantName, propertyTitle,
	)
	return m.send(
		mail.NewEmail(name, email),
		"New rental application",
		body,
	)
}

func (m *SendGridMailer) SendApplicationStatusChanged(
	ctx context.Context,
	email, name, propertyTitle, status string,
) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour application for %q is now %s.\n",
		name, propertyTitle, status,
	)
	return m.send(
		mail.NewEmail(name, email),
		"Application update",
		body,
	)
}

func (m *SendGridMailer) SendVisitRequested(
	ctx context.Context,
	email, name, propertyTitle string,
	preferredAt time.Time,
) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nA visit was requested for %q on %s.\n",
		name, propertyTitle, preferredAt.Format(time.RFC1123),
	)
	return m.send(
		mail.NewEmail(name, email),
		"New visit request",
		body,
	)
}

func (m *SendGridMailer) SendVisitStatusChanged(
	ctx context.Context,
	email, name, propertyTitle, status string,
) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour visit request for %q is now %s.\n",
		name, propertyTitle, status,
	)
	return m.send(
		mail.NewEmail(name, email),
		"Visit request update",
		body,
	)
}

func (m *SendGridMailer) SendAgreementReady(
	ctx context.Context,
	email, name, propertyTitle string,
) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nA rental agreement for %q is ready for your signature.\n",
		name, propertyTitle,
	)
	return m.send(
		mail.NewEmail(name, email),
		"Rental agreement ready",
		body,
	)
}

var _ Mailer = (*SendGridMailer)(nil)

// NoopMailer is used when mail is disabled in config.
type NoopMailer struct{}

func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

func (NoopMailer) SendWelcome(context.Context, string, string) error {
	return nil
}

func (NoopMailer) SendApplicationReceived(
	context.Context, string, string, string, string,
) error {
	return nil
}

func (NoopMailer) SendApplicationStatusChanged(
	context.Context, string, string, string, string,
) error {
	return nil
}

func (NoopMailer) SendVisitRequested(
	context.Context, string, string, string, time.Time,
) error {
	return nil
}

func (NoopMailer) SendVisitStatusChanged(
	context.Context, string, string, string, string,
) error {
	return nil
}

func (NoopMailer) SendAgreementReady(
	context.Context, string, string, string,
) error {
	return nil
}

var _ Mailer = (*NoopMailer)(nil)
