// Package notify records in-app notifications and delivers best-effort email.
//
// Notification rows are written inside the caller's transaction; emails are
// queued only after that transaction commits and are sent by a background
// Dispatcher. Delivery failures are logged and counted, never returned.
package notify

import (
	"context"
	"fmt"
	"strings"

	"findjob-backend/internal/config"
	"findjob-backend/internal/logger"

	"github.com/wneessen/go-mail"
)

// Email is one outgoing message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a single email.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer builds a mailer from configuration. Auth is skipped when no
// username is set. STARTTLS is used when the relay offers it.
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// Send implements Mailer.
func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	msg, err := newMessage(m.from, e)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", e.To, err)
	}
	return nil
}

func newMessage(from string, e Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(e.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", e.To, err)
	}
	msg.Subject(headerValue(e.Subject))
	msg.SetBodyString(mail.TypeTextPlain, e.Body)
	return msg, nil
}

// headerValue strips line breaks so values cannot inject extra headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// LogMailer only logs messages. It is used when SMTP is not configured.
type LogMailer struct{}

// Send implements Mailer.
func (LogMailer) Send(_ context.Context, e Email) error {
	log := logger.Get()
	log.Info().Str("to", e.To).Str("subject", e.Subject).Msg("email delivery disabled, message logged only")
	return nil
}

// NewMailer return an SMTPMailer when a host is configured, LogMailer otherwise.
func NewMailer(cfg config.MailConfig) (Mailer, error) {
	if cfg.Host == "" {
		return LogMailer{}, nil
	}
	m, err := NewSMTPMailer(cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}
