package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/craftbase/account-service/internal/config"
	"github.com/craftbase/account-service/internal/dto"
	"github.com/craftbase/account-service/internal/models"
	"github.com/craftbase/account-service/internal/password"
	"github.com/craftbase/account-service/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:svc_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// Single connection serializes writes; sqlite shared-cache otherwise
	// reports busy under concurrent access.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		OTPExpiry:        15 * time.Minute,
		FrontendURL:      "http://localhost:5173",
		Env:              "development",
	}
}

func newAuthService(db *gorm.DB, cfg *config.Config) *services.AuthService {
	return services.NewAuthService(db, cfg, password.Default(), services.NewTokenIssuer(cfg))
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db, testConfig())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "a@x.com",
		FullName:  "A A",
		Password:  "Sw9!xyz12",
		Password2: "Sw9!xyz12",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", resp.Email)
	assert.Equal(t, "A A", resp.FullName)
	assert.Equal(t, "a", resp.Username, "username derives from the email local-part")

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)
	assert.NotEqual(t, "Sw9!xyz12", user.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Sw9!xyz12")))

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "exactly one profile per user, created with the user")

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, user.Username, profile.FullName)
	assert.Equal(t, models.DefaultUserImage, profile.Image)
}

func TestRegisterDerivesBlankFullName(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db, testConfig())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "jane.doe@example.com",
		Password:  "tr0mb0ne!Quartet",
		Password2: "tr0mb0ne!Quartet",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", resp.Username)
	assert.Equal(t, "jane.doe", resp.FullName)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db, testConfig())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "a@x.com",
		FullName:  "A A",
		Password:  "Sw9!xyz12",
		Password2: "Sw9!xyz13",
	})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count, "no user persisted on validation failure")
}

func TestRegisterWeakPasswords(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"Too short", "Ab1!xyz"},
		{"Longer than the bcrypt limit", strings.Repeat("Sw9!xyz12e", 9)},
		{"Entirely numeric", "92837465102"},
		{"Common password", "password123"},
		{"Similar to email", "jane.doe2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			svc := newAuthService(db, testConfig())

			_, err := svc.Register(context.Background(), &dto.RegisterRequest{
				Email:     "jane.doe@example.com",
				FullName:  "Jane Doe",
				Password:  tt.password,
				Password2: tt.password,
			})
			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "password", verr.Field)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db, testConfig())

	first := &dto.RegisterRequest{
		Email:     "a@x.com",
		FullName:  "A A",
		Password:  "Sw9!xyz12",
		Password2: "Sw9!xyz12",
	}
	_, err := svc.Register(context.Background(), first)
	require.NoError(t, err)

	second := &dto.RegisterRequest{
		Email:     "a@x.com",
		FullName:  "Other Name",
		Password:  "tr0mb0ne!Quartet",
		Password2: "tr0mb0ne!Quartet",
	}
	_, err = svc.Register(context.Background(), second)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestLoginTokenClaims(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	svc := newAuthService(db, cfg)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "jane.doe@example.com",
		FullName:  "Jane Doe",
		Password:  "tr0mb0ne!Quartet",
		Password2: "tr0mb0ne!Quartet",
	})
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: "tr0mb0ne!Quartet",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	token, err := jwt.Parse(pair.Access, func(_ *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "jane.doe@example.com", claims["email"])
	assert.Equal(t, "jane.doe", claims["username"])
	assert.Equal(t, "Jane Doe", claims["full_name"])
	assert.NotEmpty(t, claims["sub"])

	// Login must not mutate the stored record.
	var user models.User
	require.NoError(t, db.Where("email = ?", "jane.doe@example.com").First(&user).Error)
	assert.Empty(t, user.OTP)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db, testConfig())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "a@x.com",
		FullName:  "A A",
		Password:  "Sw9!xyz12",
		Password2: "Sw9!xyz12",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "a@x.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "missing@x.com",
		Password: "Sw9!xyz12",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	db := setupDB(t)
	cfg := testConfig()
	svc := newAuthService(db, cfg)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "a@x.com",
		FullName:  "A A",
		Password:  "Sw9!xyz12",
		Password2: "Sw9!xyz12",
	})
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "a@x.com",
		Password: "Sw9!xyz12",
	})
	require.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), &dto.RefreshRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.Access)
	assert.NotEmpty(t, fresh.Refresh)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{Refresh: pair.Access})
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{Refresh: "garbage"})
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
