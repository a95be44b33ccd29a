package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/utils"
	"github.com/wandergo/tripmarket/utils/jwt_parse"
)

const RoleOrganizer = "organizer"

// AuthMiddleware verifies the bearer credential and attaches the caller's
// identity to the request. User records live in a separate identity
// service; the token is the source of truth here.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwt_parse.ParseJWTToken()(c)
		if c.IsAborted() {
			return
		}

		if _, exists := c.Get("user_id"); !exists {
			logger.ErrorLogger.Error("User ID missing from context after token parse")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Unauthorized: missing user identification"})
			return
		}

		c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role. The
// role check is independent of per-resource ownership checks, which stay in
// the controllers.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.GetRoleFromContext(c) != role {
			logger.WarnLogger.Warnf("Role check failed: need %q", role)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
			return
		}
		c.Next()
	}
}
