package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"profiles-feed-be/internal/entities"
)

// TokenRepository defines the interface for auth token database operations
type TokenRepository interface {
	Create(ctx context.Context, key, userID string) (*entities.AuthToken, error)
	FindByKey(ctx context.Context, key string) (*entities.AuthToken, error)
}

type tokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Create persists a token bound to userID
func (r *tokenRepository) Create(ctx context.Context, key, userID string) (*entities.AuthToken, error) {
	query := `
		INSERT INTO auth_tokens (key, user_id)
		VALUES ($1, $2)
		RETURNING key, user_id, created_at
	`

	var token entities.AuthToken
	err := r.db.QueryRowContext(ctx, query, key, userID).Scan(&token.Key, &token.UserID, &token.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &token, nil
}

// FindByKey looks a token up by its key
func (r *tokenRepository) FindByKey(ctx context.Context, key string) (*entities.AuthToken, error) {
	query := `
		SELECT key, user_id, created_at
		FROM auth_tokens
		WHERE key = $1
	`

	var token entities.AuthToken
	err := r.db.QueryRowContext(ctx, query, key).Scan(&token.Key, &token.UserID, &token.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find token: %w", err)
	}

	return &token, nil
}
