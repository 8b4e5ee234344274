package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/craftbase/account-service/internal/config"
	"github.com/craftbase/account-service/internal/dto"
	"github.com/craftbase/account-service/internal/models"
	"github.com/craftbase/account-service/internal/password"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError is a client-correctable failure scoped to a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	policy *password.Policy
	tokens *TokenIssuer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, policy *password.Policy, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		policy: policy,
		tokens: tokens,
	}
}

// Register creates a user and its default profile in one transaction.
// The plaintext password is hashed before touching the store and never
// appears in the returned view.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if req.Password != req.Password2 {
		return nil, &ValidationError{Field: "password", Message: "password fields didn't match"}
	}

	if err := s.policy.Validate(req.Password, req.Email, req.FullName); err != nil {
		return nil, &ValidationError{Field: "password", Message: err.Error()}
	}

	user := models.User{
		Email:    req.Email,
		FullName: req.FullName,
	}
	user.FillDerivedFields()

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return nil, &ValidationError{Field: "email", Message: "a user with this email already exists"}
	}
	if err := s.db.WithContext(ctx).Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return nil, &ValidationError{Field: "username", Message: "a user with this username already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID:   user.ID,
			FullName: user.Username,
			Image:    models.DefaultUserImage,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &dto.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	}, nil
}

// Login checks credentials and issues a token pair. The stored user record
// is read only, never mutated.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenPairResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := s.tokens.IssuePair(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &dto.TokenPairResponse{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenPairResponse, error) {
	userID, err := s.tokens.ParseRefresh(req.Refresh)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrInvalidToken
	}

	access, refresh, err := s.tokens.IssuePair(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &dto.TokenPairResponse{Access: access, Refresh: refresh}, nil
}
