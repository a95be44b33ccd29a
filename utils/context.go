package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wandergo/tripmarket/logger"
)

// GetUserIDFromContext extracts the authenticated user's id from the Gin
// context. The auth middleware stores it as a string under "user_id".
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		logger.ErrorLogger.Error("User ID not found in context")
		return uuid.Nil, ErrUserIDNotFound
	}

	userIDStr, ok := raw.(string)
	if !ok {
		logger.ErrorLogger.Errorf("User ID in context is not a string, actual type: %T", raw)
		return uuid.Nil, fmt.Errorf("invalid user ID format in context")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to parse user ID %q: %v", userIDStr, err)
		return uuid.Nil, fmt.Errorf("invalid user ID format")
	}
	return userID, nil
}

// GetRoleFromContext returns the role claim the auth middleware stored, or
// "" when absent.
func GetRoleFromContext(c *gin.Context) string {
	raw, exists := c.Get("role")
	if !exists {
		return ""
	}
	role, _ := raw.(string)
	return role
}

// GetEmailFromContext returns the email claim when the token carries one.
// Used for best-effort notification emails only.
func GetEmailFromContext(c *gin.Context) string {
	raw, exists := c.Get("email")
	if !exists {
		return ""
	}
	email, _ := raw.(string)
	return email
}
