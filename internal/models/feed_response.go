package models

import "profiles-feed-be/internal/entities"

// FeedItemResponse represents a feed item as returned to its owner
type FeedItemResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Owner       string `json:"owner"` // User UUID, read-only
}

// NewFeedItemResponse projects a feed item entity onto its public fields
func NewFeedItemResponse(item *entities.FeedItem) *FeedItemResponse {
	return &FeedItemResponse{
		ID:          item.ID,
		Description: item.Description,
		Owner:       item.UserID,
	}
}
