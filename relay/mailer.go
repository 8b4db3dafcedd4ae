package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"urbanreport-be/config"
	"urbanreport-be/models"

	"gopkg.in/mail.v2"
)

var ErrMailerNotConfigured = errors.New("smtp host is not configured")

// Mailer delivers one composed email.
type Mailer interface {
	Send(ctx context.Context, email models.Email) error
}

// SMTPMailer sends email through an SMTP server.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	timeout  time.Duration
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		timeout:  10 * time.Second,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, email models.Email) error {
	if m.host == "" {
		return ErrMailerNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	message := mail.NewMessage()
	message.SetHeader("From", email.From)
	message.SetHeader("To", email.To)
	message.SetHeader("Subject", email.Subject)
	message.SetBody("text/plain", email.Body)

	dialer := mail.NewDialer(m.host, m.port, m.username, m.password)
	dialer.Timeout = m.timeout

	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", m.host, m.port, err)
	}
	return nil
}
