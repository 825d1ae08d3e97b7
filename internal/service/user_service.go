package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hydropoints/internal/model"
	"hydropoints/internal/repository"
)

// UserService handles registration and profile updates
type UserService struct {
	profileRepo repository.ProfileRepo
	authSvc     *AuthService
}

// NewUserService creates a new user service
func NewUserService(profileRepo repository.ProfileRepo, authSvc *AuthService) *UserService {
	return &UserService{
		profileRepo: profileRepo,
		authSvc:     authSvc,
	}
}

// Register creates a profile and returns a user-scoped token
func (s *UserService) Register(ctx context.Context, nickname string, householdSize int) (*model.UserProfile, string, error) {
	if householdSize < 1 {
		householdSize = 1
	}

	profile := &model.UserProfile{
		UserID:        "user_" + uuid.New().String()[:8],
		Nickname:      nickname,
		HouseholdSize: householdSize,
		CreatedAt:     time.Now(),
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, "", err
	}

	token, err := s.authSvc.GenerateUserToken(profile.UserID)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// UpdateHousehold changes the household size used to normalize expected intake
func (s *UserService) UpdateHousehold(ctx context.Context, userID string, size int) (*model.UserProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &model.UserProfile{UserID: userID, CreatedAt: time.Now()}
	}
	if size < 1 {
		size = 1
	}
	profile.HouseholdSize = size
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the profile, or nil if none exists
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}
