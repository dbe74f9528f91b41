package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"profiles-feed-be/internal/middleware"
	"profiles-feed-be/internal/service"
)

// respondError maps service errors onto HTTP statuses; unknown errors become a logged 500
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": verr.Message,
			"field": verr.Field,
		})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAuthentication):
		c.Header("WWW-Authenticate", "Token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unable to authenticate with provided credentials"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		log.Printf("ERROR: [%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindJSON decodes the body into req; an empty body is accepted when allowEmpty is set
func bindJSON(c *gin.Context, req any, allowEmpty bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
	return false
}

// currentUser returns the caller set by the auth middleware
func currentUser(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.Header("WWW-Authenticate", "Token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided"})
		c.Abort()
		return "", false
	}
	return userID, true
}

// feedItemID parses the :id path parameter; anything but a positive integer is not found
func feedItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return id, true
}
