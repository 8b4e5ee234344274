package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Password2, validation.Required),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Refresh, validation.Required),
	)
}

// PasswordChangeRequest carries the fields from the emailed reset link.
// UUIDB64 is the user id; the field name matches the link parameter.
type PasswordChangeRequest struct {
	OTP      string `json:"otp"`
	UUIDB64  string `json:"uuidb64"`
	Password string `json:"password"`
}

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
}

type MessageResponse struct {
	Message string `json:"message"`
	// ResetLink is populated only in development builds.
	ResetLink string `json:"reset_link,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse maps field names to human-readable messages.
type ValidationErrorResponse map[string]string

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type ProfileResponse struct {
	ID       uuid.UUID    `json:"id"`
	User     UserResponse `json:"user"`
	FullName string       `json:"full_name"`
	Country  string       `json:"country"`
	About    string       `json:"about"`
	Image    string       `json:"image"`
	Date     time.Time    `json:"date"`
}

type ProfileUpdateRequest struct {
	FullName string `json:"full_name"`
	Country  string `json:"country"`
	About    string `json:"about"`
	Image    string `json:"image"`
}

func (r ProfileUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Length(0, 100)),
		validation.Field(&r.Country, validation.Length(0, 100)),
		validation.Field(&r.About, validation.Length(0, 500)),
	)
}
