package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/craftbase/account-service/internal/config"
	"github.com/craftbase/account-service/internal/models"
	"github.com/mailgun/mailgun-go/v4"
)

const resetSubject = "Password reset request"

type MailgunMailer struct {
	client  *mailgun.MailgunImpl
	from    string
	timeout time.Duration
}

func NewMailgunMailer(cfg *config.Config) *MailgunMailer {
	return &MailgunMailer{
		client:  mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey),
		from:    cfg.MailFrom,
		timeout: cfg.MailTimeout,
	}
}

func (m *MailgunMailer) SendPasswordReset(ctx context.Context, user *models.User, resetLink string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. "+
			"Follow the link below to choose a new one:\n\n%s\n\n"+
			"If you did not request this, you can ignore this email.\n",
		user.FullName, resetLink,
	)

	msg := m.client.NewMessage(m.from, resetSubject, body, user.Email)

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, id, err := m.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}

	slog.Info("password reset email dispatched", "email", user.Email, "message_id", id)
	return nil
}
