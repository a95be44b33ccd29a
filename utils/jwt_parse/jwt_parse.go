package jwt_parse

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/utils"
)

// ParseJWTToken validates the bearer token and stores the identity claims
// ("user_id", "role") in the context. Token issuance lives in a separate
// auth service; this side only verifies.
func ParseJWTToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.ErrorLogger.Error("No authorization header provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No authorization token"})
			return
		}

		var tokenString string
		if len(authHeader) > 7 && strings.ToLower(authHeader[:7]) == "bearer " {
			tokenString = authHeader[7:]
		} else {
			logger.ErrorLogger.Error("Invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid authorization format"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return utils.GetJWTSecret(), nil
		})
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to parse JWT token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			logger.ErrorLogger.Error("Invalid token claims")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid token"})
			return
		}

		if userID, exists := claims["user_id"]; exists {
			c.Set("user_id", userID)
		} else if sub, exists := claims["sub"]; exists {
			c.Set("user_id", sub)
		} else {
			logger.ErrorLogger.Error("No user identifier found in token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid token claims"})
			return
		}

		if role, exists := claims["role"]; exists {
			c.Set("role", role)
		}
		if email, exists := claims["email"]; exists {
			c.Set("email", email)
		}

		c.Next()
	}
}
