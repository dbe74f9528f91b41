package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"profiles-feed-be/internal/entities"
)

// FeedRepository defines the interface for profiles feed database operations.
// Every lookup and mutation is scoped to the owning user.
type FeedRepository interface {
	Create(ctx context.Context, userID, description string) (*entities.FeedItem, error)
	ListByUserID(ctx context.Context, userID string) ([]*entities.FeedItem, error)
	FindByID(ctx context.Context, id int64, userID string) (*entities.FeedItem, error)
	Update(ctx context.Context, id int64, userID string, description *string) (*entities.FeedItem, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type feedRepository struct {
	db *sql.DB
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *sql.DB) FeedRepository {
	return &feedRepository{db: db}
}

// Create inserts a new feed item owned by userID
func (r *feedRepository) Create(ctx context.Context, userID, description string) (*entities.FeedItem, error) {
	query := `
		INSERT INTO profiles_feeds (user_id, description)
		VALUES ($1, $2)
		RETURNING id, user_id, description, created_at, updated_at
	`

	item, err := scanFeedItem(r.db.QueryRowContext(ctx, query, userID, description))
	if err != nil {
		return nil, fmt.Errorf("failed to create feed item: %w", err)
	}

	return item, nil
}

// ListByUserID retrieves all feed items for a user, most recent first
func (r *feedRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.FeedItem, error) {
	query := `
		SELECT id, user_id, description, created_at, updated_at
		FROM profiles_feeds
		WHERE user_id = $1
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed items: %w", err)
	}
	defer rows.Close()

	items := make([]*entities.FeedItem, 0)
	for rows.Next() {
		item, err := scanFeedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed items: %w", err)
	}

	return items, nil
}

// FindByID finds a feed item only if userID owns it
func (r *feedRepository) FindByID(ctx context.Context, id int64, userID string) (*entities.FeedItem, error) {
	query := `
		SELECT id, user_id, description, created_at, updated_at
		FROM profiles_feeds
		WHERE id = $1 AND user_id = $2
	`

	item, err := scanFeedItem(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find feed item: %w", err)
	}

	return item, nil
}

// Update changes the description of a feed item owned by userID.
// A nil description leaves the row as is. The owner column is never written.
func (r *feedRepository) Update(ctx context.Context, id int64, userID string, description *string) (*entities.FeedItem, error) {
	query := `
		UPDATE profiles_feeds
		SET description = COALESCE($1, description),
			updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, description, created_at, updated_at
	`

	item, err := scanFeedItem(r.db.QueryRowContext(ctx, query, description, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update feed item: %w", err)
	}

	return item, nil
}

// Delete removes a feed item (only if user owns it)
func (r *feedRepository) Delete(ctx context.Context, id int64, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles_feeds WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete feed item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedItem(row rowScanner) (*entities.FeedItem, error) {
	var item entities.FeedItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Description,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
