package controllers

import (
	"net/http"

	"profiles-feed-be/internal/models"
	"profiles-feed-be/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedController struct {
	feedService service.FeedService
}

func NewFeedController(feedService service.FeedService) *FeedController {
	return &FeedController{
		feedService: feedService,
	}
}

// ListItems handles GET /feed/items - the caller's items, most recent first
func (fc *FeedController) ListItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := fc.feedService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateItem handles POST /feed/items
func (fc *FeedController) CreateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateFeedItemRequest
	if !bindJSON(c, &req, false) {
		return
	}

	item, err := fc.feedService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetItem handles GET /feed/items/:id
func (fc *FeedController) GetItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := feedItemID(c)
	if !ok {
		return
	}

	item, err := fc.feedService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateItem handles PATCH /feed/items/:id
func (fc *FeedController) UpdateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := feedItemID(c)
	if !ok {
		return
	}

	var req models.UpdateFeedItemRequest
	if !bindJSON(c, &req, true) {
		return
	}

	fc.update(c, userID, id, &req)
}

// ReplaceItem handles PUT /feed/items/:id
func (fc *FeedController) ReplaceItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := feedItemID(c)
	if !ok {
		return
	}

	var req models.ReplaceFeedItemRequest
	if !bindJSON(c, &req, false) {
		return
	}

	fc.update(c, userID, id, req.AsUpdate())
}

func (fc *FeedController) update(c *gin.Context, userID string, id int64, req *models.UpdateFeedItemRequest) {
	item, err := fc.feedService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /feed/items/:id
func (fc *FeedController) DeleteItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := feedItemID(c)
	if !ok {
		return
	}

	if err := fc.feedService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
