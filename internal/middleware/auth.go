package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"profiles-feed-be/internal/service"
)

const userIDKey = "user_id"

// Authenticator resolves a token key to the id of its user
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (string, error)
}

// AuthMiddleware rejects requests without a valid token and stores the caller's id
// in the gin context under "user_id"
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.TrimSpace(header) == "" {
			unauthorized(c, "Authentication credentials were not provided")
			return
		}

		key, ok := parseAuthorization(header)
		if !ok {
			unauthorized(c, "Invalid token header")
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, service.ErrAuthentication) {
				unauthorized(c, "Invalid token")
				return
			}
			log.Printf("ERROR: [%s] authenticate: %v", GetRequestID(c), err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated caller's id, or "" outside AuthMiddleware
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get(userIDKey)
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// parseAuthorization accepts "Token <key>" and "Bearer <key>" (scheme is case-insensitive)
func parseAuthorization(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", false
	}
	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
		return parts[1], true
	}
	return "", false
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Token")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}
