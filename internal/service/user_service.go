package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"profiles-feed-be/internal/models"
	"profiles-feed-be/internal/repository"
)

// UserService manages the authenticated caller's own record
type UserService interface {
	GetSelf(ctx context.Context, userID string) (*models.UserResponse, error)
	UpdateSelf(ctx context.Context, userID string, req *models.UpdateUserRequest) (*models.UserResponse, error)
}

type userService struct {
	userRepo          repository.UserRepository
	minPasswordLength int
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, minPasswordLength int) UserService {
	return &userService{
		userRepo:          userRepo,
		minPasswordLength: minPasswordLength,
	}
}

// GetSelf returns the caller's own record
func (s *userService) GetSelf(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// A valid token for a vanished user is still a bad credential.
			return nil, fmt.Errorf("%w: user no longer exists", ErrAuthentication)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return models.NewUserResponse(user), nil
}

// UpdateSelf applies the supplied writable fields to the caller's record
func (s *userService) UpdateSelf(ctx context.Context, userID string, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	var update repository.UserUpdate

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return nil, invalid("email", "email may not be blank")
		}
		update.Email = &email
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name", "name may not be blank")
		}
		update.Name = &name
	}

	if req.Password != nil {
		passwordHash, err := hashPassword(*req.Password, s.minPasswordLength)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &passwordHash
	}

	user, err := s.userRepo.Update(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, invalid("email", "user with this email already exists")
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: user no longer exists", ErrAuthentication)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return models.NewUserResponse(user), nil
}
