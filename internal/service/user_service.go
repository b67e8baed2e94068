package service

import (
	"context"
	"strings"

	"harbor/internal/models"
	"harbor/internal/repository"
	"harbor/internal/validation"
)

// UserService exposes user profile operations.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ProfileUpdate holds the editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Username *string
	Bio      *string
	Avatar   *string
}

// UpdateProfile applies a partial profile update to the user's own account.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewInvalidInputError(err.Error())
		}
		user.Username = username
	}
	if update.Bio != nil {
		user.Bio = validation.SanitizeContent(*update.Bio)
	}
	if update.Avatar != nil {
		user.Avatar = strings.TrimSpace(*update.Avatar)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns a page of users.
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]models.User, error) {
	limit, offset := clampPage(page, pageSize)
	return s.users.List(ctx, limit, offset)
}
