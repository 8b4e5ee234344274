package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/url"
	"time"

	"github.com/craftbase/account-service/internal/config"
	"github.com/craftbase/account-service/internal/mail"
	"github.com/craftbase/account-service/internal/models"
	"github.com/craftbase/account-service/internal/password"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrResetNotFound covers every non-matching confirm attempt: unknown
	// user, wrong OTP, already consumed, expired. One error, no oracle.
	ErrResetNotFound = errors.New("no matching reset request")

	ErrResetBadRequest = errors.New("otp, uuidb64 and password are required")

	// ErrDeliveryFailed reports an email failure after the OTP was already
	// persisted. The reset state stays live and re-drivable.
	ErrDeliveryFailed = errors.New("failed to deliver password reset email")
)

// ResetService drives the OTP lifecycle: a request overwrites any prior code
// and stamps an expiry, a confirm consumes the code exactly once.
type ResetService struct {
	db     *gorm.DB
	cfg    *config.Config
	tokens *TokenIssuer
	mailer mail.Mailer
}

func NewResetService(db *gorm.DB, cfg *config.Config, tokens *TokenIssuer, mailer mail.Mailer) *ResetService {
	return &ResetService{
		db:     db,
		cfg:    cfg,
		tokens: tokens,
		mailer: mailer,
	}
}

// RequestReset generates a fresh OTP for the account behind email, persists
// it and dispatches the reset link. Unknown emails return ErrUserNotFound
// with no side effect; the existence leak is a documented trade-off.
// On delivery failure the persisted OTP is kept and ErrDeliveryFailed is
// returned alongside the link.
func (s *ResetService) RequestReset(ctx context.Context, email string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	otp, err := generateOTP(models.OTPLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	expiresAt := time.Now().Add(s.cfg.OTPExpiry)

	updates := map[string]interface{}{
		"otp":            otp,
		"otp_expires_at": expiresAt,
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	token, err := s.tokens.AccessToken(&user)
	if err != nil {
		return "", fmt.Errorf("failed to mint reset token: %w", err)
	}

	link := fmt.Sprintf("%s/create-new-password/?otp=%s&uuid=%s&token=%s",
		s.cfg.FrontendURL, otp, user.ID, url.QueryEscape(token))

	if err := s.mailer.SendPasswordReset(ctx, &user, link); err != nil {
		slog.Error("password reset email delivery failed", "user_id", user.ID.String(), "error", err)
		return link, ErrDeliveryFailed
	}

	return link, nil
}

// ConfirmReset consumes the OTP and sets the new password. The match, the
// expiry check and the clear happen in one conditional UPDATE, so two
// concurrent confirms with the same code resolve to exactly one winner.
func (s *ResetService) ConfirmReset(ctx context.Context, userID, otp, newPassword string) error {
	if userID == "" || otp == "" || newPassword == "" {
		return ErrResetBadRequest
	}
	if len(newPassword) > password.MaxPasswordBytes {
		return ErrResetBadRequest
	}

	// A malformed id can never match a reset request; fold it into the
	// uniform not-found answer rather than hinting at the failure mode.
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ErrResetNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND otp = ? AND otp <> '' AND otp_expires_at > ?", uid, otp, time.Now()).
		Updates(map[string]interface{}{
			"password":       string(hash),
			"otp":            "",
			"otp_expires_at": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrResetNotFound
	}

	slog.Info("password reset completed", "user_id", uid.String())
	return nil
}

// generateOTP returns a fixed-width numeric code. Each digit comes from
// crypto/rand, leading zeros allowed.
func generateOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
