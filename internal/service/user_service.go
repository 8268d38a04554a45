package service

import (
	"fmt"

	"familyconnect/internal/models"
	"familyconnect/internal/repository"
)

// UserService handles user profile business logic. Identity itself lives
// with the external auth provider; this service only maintains the local
// profile row.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SyncUser upserts the local profile row from token claims. Called on
// every authenticated request so provider-owned fields stay fresh.
func (s *UserService) SyncUser(id, email, firstName, lastName, profileImageURL string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	user, err := s.userRepo.UpsertUser(id, email, firstName, lastName, profileImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user profile
func (s *UserService) GetUser(userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile updates the caller's own display fields
func (s *UserService) UpdateProfile(userID, firstName, lastName, bio, phoneNumber, address, birthday string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Bio = bio
	user.PhoneNumber = phoneNumber
	user.Address = address
	user.Birthday = birthday

	updated, err := s.userRepo.UpdateProfile(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if !updated {
		return nil, ErrUserNotFound
	}

	return s.GetUser(userID)
}
