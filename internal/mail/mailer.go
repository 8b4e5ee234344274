// Package mail delivers transactional account email. The reset flow only
// depends on the Mailer interface so delivery can be faked in tests.
package mail

import (
	"context"
	"log/slog"

	"github.com/craftbase/account-service/internal/config"
	"github.com/craftbase/account-service/internal/models"
)

type Mailer interface {
	// SendPasswordReset delivers the reset link to the user's address.
	// A non-nil error means delivery failed; already persisted reset state
	// is not rolled back by callers.
	SendPasswordReset(ctx context.Context, user *models.User, resetLink string) error
}

// New picks the Mailgun mailer when credentials are configured and falls
// back to the log-only mailer otherwise.
func New(cfg *config.Config) Mailer {
	if cfg.MailgunAPIKey != "" && cfg.MailgunDomain != "" {
		return NewMailgunMailer(cfg)
	}
	slog.Warn("mailgun not configured, password reset emails will be logged only")
	return LogMailer{}
}

// LogMailer writes the reset link to the log instead of sending email.
// Used in development and as the fallback when no provider is configured.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(_ context.Context, user *models.User, resetLink string) error {
	slog.Info("password reset link generated",
		"email", user.Email,
		"link", resetLink,
	)
	return nil
}
