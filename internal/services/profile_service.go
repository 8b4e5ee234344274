package services

import (
	"context"
	"fmt"

	"github.com/craftbase/account-service/internal/dto"
	"github.com/craftbase/account-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileService exposes the simple read/write surface over the profile
// record that every user owns from creation.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, ErrUserNotFound
	}

	return profileView(&user, &profile), nil
}

// Update applies the editable profile fields. A blank full name falls back
// to the owner's username.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *dto.ProfileUpdateRequest) (*dto.ProfileResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, ErrUserNotFound
	}

	profile.FullName = req.FullName
	if profile.FullName == "" {
		profile.FullName = user.Username
	}
	profile.Country = req.Country
	profile.About = req.About
	if req.Image != "" {
		profile.Image = req.Image
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return profileView(&user, &profile), nil
}

func profileView(user *models.User, profile *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID: profile.ID,
		User: dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			FullName: user.FullName,
		},
		FullName: profile.FullName,
		Country:  profile.Country,
		About:    profile.About,
		Image:    profile.Image,
		Date:     profile.Date,
	}
}
