package service

import (
	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/utils"
)

// UserService reads user profiles for the admin panel.
type UserService struct {
	profiles ProfileStore
}

// NewUserService constructs a UserService.
func NewUserService(profiles ProfileStore) *UserService {
	return &UserService{profiles: profiles}
}

// ListUsers returns all profiles, optionally filtered by role.
func (s *UserService) ListUsers(role string) ([]models.User, error) {
	if role == "" {
		return s.profiles.ListAll()
	}
	return s.profiles.ListByRole(models.Role(role))
}

// GetUser returns a profile by id.
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.profiles.GetByID(id)
	if err != nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}
