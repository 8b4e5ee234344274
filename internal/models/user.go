package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// OTPLength is the fixed width of reset codes. Leading zeros count.
	OTPLength = 7

	MaxNameLength  = 100
	MaxAboutLength = 500

	DefaultUserImage = "default-user.jpg"
)

// User is authenticated by email; username and full name fall back to the
// email local-part when the caller leaves them blank.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username     string         `gorm:"size:100;not null;uniqueIndex" json:"username"`
	FullName     string         `gorm:"size:100;not null" json:"full_name"`
	Password     string         `gorm:"not null" json:"-"`
	OTP          string         `gorm:"size:7" json:"-"`
	OTPExpiresAt *time.Time     `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FillDerivedFields backfills username and full name from the email
// local-part. Called explicitly before persistence; there is no save hook.
func (u *User) FillDerivedFields() {
	local := strings.SplitN(u.Email, "@", 2)[0]
	if u.FullName == "" {
		u.FullName = local
	}
	if u.Username == "" {
		u.Username = local
	}
}

// Profile is created in the same transaction as its User and exists for
// every user from creation onward.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FullName string    `gorm:"size:100" json:"full_name"`
	Country  string    `gorm:"size:100" json:"country"`
	About    string    `gorm:"size:500" json:"about"`
	Image    string    `gorm:"size:255;default:'default-user.jpg'" json:"image"`
	Date     time.Time `gorm:"autoCreateTime" json:"date"`
}

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
