package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/eventpulse-api/internal/constants"
	apierrors "github.com/eventpulse/eventpulse-api/internal/errors"
	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/utils"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireAuth rejects requests without a valid access token and resolves the
// caller's identity into the gin context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(secret, token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a valid token is present but lets
// anonymous requests through. A malformed token is treated as anonymous, not
// as an error; listing endpoints are public.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := utils.ParseAccessToken(secret, token); err == nil {
				c.Set(constants.ContextKeyUserID, claims.UserID)
				c.Set(constants.ContextKeyUserRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(constants.ContextKeyUserRole)
		if !exists || role != string(models.RoleAdmin) {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetOptionalUserID returns a pointer to the user ID when a caller is
// authenticated, nil otherwise.
func GetOptionalUserID(c *gin.Context) *uint64 {
	if id, ok := GetUserID(c); ok {
		return &id
	}
	return nil
}
