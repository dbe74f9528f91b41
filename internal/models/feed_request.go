package models

import "encoding/json"

// CreateFeedItemRequest represents the request body for creating a feed item.
// There is no owner field: the owner is always the caller.
type CreateFeedItemRequest struct {
	Description string `json:"description" binding:"required"`
}

// UpdateFeedItemRequest represents a partial update of a feed item (PATCH).
// Owner and User are parsed so clients may echo them back, but they are discarded.
type UpdateFeedItemRequest struct {
	Description *string         `json:"description"`
	Owner       json.RawMessage `json:"owner,omitempty"`
	User        json.RawMessage `json:"user,omitempty"`
}

// ReplaceFeedItemRequest represents a full update of a feed item (PUT)
type ReplaceFeedItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Owner       json.RawMessage `json:"owner,omitempty"`
	User        json.RawMessage `json:"user,omitempty"`
}

// AsUpdate converts a full update into the partial form the service applies
func (r *ReplaceFeedItemRequest) AsUpdate() *UpdateFeedItemRequest {
	return &UpdateFeedItemRequest{Description: &r.Description, Owner: r.Owner, User: r.User}
}
