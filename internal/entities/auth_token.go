package entities

import "time"

// AuthToken is an opaque bearer credential bound to a single user
type AuthToken struct {
	Key       string    `json:"key"` // 40 hex characters
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
