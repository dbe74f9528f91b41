package entities

import "time"

// FeedItem represents a profiles feed entry owned by exactly one user
type FeedItem struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"` // Owner, immutable after creation
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
