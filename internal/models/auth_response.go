package models

import "profiles-feed-be/internal/entities"

// UserResponse is the public projection of a user; the password hash never leaves the service
type UserResponse struct {
	ID    string `json:"id"` // UUID
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenResponse represents the response after successful token issuance
type TokenResponse struct {
	Token string `json:"token"`
}

// NewUserResponse projects a user entity onto its public fields
func NewUserResponse(user *entities.User) *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}
