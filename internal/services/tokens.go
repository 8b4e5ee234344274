package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/craftbase/account-service/internal/config"
	"github.com/craftbase/account-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired refresh token")

// TokenIssuer mints HS256 access/refresh pairs. It is stateless: nothing is
// persisted and the user record is never mutated.
type TokenIssuer struct {
	cfg *config.Config
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// IssuePair returns an access token carrying identity claims plus a
// longer-lived refresh token.
func (t *TokenIssuer) IssuePair(user *models.User) (access, refresh string, err error) {
	access, err = t.AccessToken(user)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.refreshToken(user)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// AccessToken builds a short-lived token whose claims identify the user to
// the frontend: full name, email and username beside the standard set.
func (t *TokenIssuer) AccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"email":     user.Email,
		"username":  user.Username,
		"full_name": user.FullName,
		"iat":       now.Unix(),
		"exp":       now.Add(t.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.cfg.JWTSecret))
}

func (t *TokenIssuer) refreshToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(t.cfg.JWTRefreshExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.cfg.JWTSecret))
}

// ParseRefresh validates a refresh token and returns the subject user id.
func (t *TokenIssuer) ParseRefresh(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte(t.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
