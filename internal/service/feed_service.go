package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"profiles-feed-be/internal/models"
	"profiles-feed-be/internal/repository"
)

// FeedService defines the interface for profiles feed business logic.
// Every operation is scoped to the calling user; other users' items behave as absent.
type FeedService interface {
	List(ctx context.Context, userID string) ([]*models.FeedItemResponse, error)
	Get(ctx context.Context, userID string, id int64) (*models.FeedItemResponse, error)
	Create(ctx context.Context, userID string, req *models.CreateFeedItemRequest) (*models.FeedItemResponse, error)
	Update(ctx context.Context, userID string, id int64, req *models.UpdateFeedItemRequest) (*models.FeedItemResponse, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type feedService struct {
	repo repository.FeedRepository
}

// NewFeedService creates a new feed service
func NewFeedService(repo repository.FeedRepository) FeedService {
	return &feedService{repo: repo}
}

// List returns the caller's feed items, most recent first
func (s *feedService) List(ctx context.Context, userID string) ([]*models.FeedItemResponse, error) {
	items, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.FeedItemResponse, len(items))
	for i, item := range items {
		responses[i] = models.NewFeedItemResponse(item)
	}

	return responses, nil
}

// Get returns one of the caller's feed items
func (s *feedService) Get(ctx context.Context, userID string, id int64) (*models.FeedItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, translateFeedError(err)
	}

	return models.NewFeedItemResponse(item), nil
}

// Create stores a new feed item owned by the caller
func (s *feedService) Create(ctx context.Context, userID string, req *models.CreateFeedItemRequest) (*models.FeedItemResponse, error) {
	description, err := cleanDescription(req.Description)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Create(ctx, userID, description)
	if err != nil {
		return nil, err
	}

	return models.NewFeedItemResponse(item), nil
}

// Update changes the description of one of the caller's feed items.
// Owner fields in the request are ignored.
func (s *feedService) Update(ctx context.Context, userID string, id int64, req *models.UpdateFeedItemRequest) (*models.FeedItemResponse, error) {
	var description *string
	if req.Description != nil {
		cleaned, err := cleanDescription(*req.Description)
		if err != nil {
			return nil, err
		}
		description = &cleaned
	}

	item, err := s.repo.Update(ctx, id, userID, description)
	if err != nil {
		return nil, translateFeedError(err)
	}

	return models.NewFeedItemResponse(item), nil
}

// Delete permanently removes one of the caller's feed items
func (s *feedService) Delete(ctx context.Context, userID string, id int64) error {
	return translateFeedError(s.repo.Delete(ctx, id, userID))
}

func cleanDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", invalid("description", "description may not be blank")
	}
	return description, nil
}

func translateFeedError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: feed item", ErrNotFound)
	}
	return err
}
