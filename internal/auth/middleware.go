package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// Directory resolves a user id to the user's role. The role is re-read on
// every request so admin role edits take effect immediately.
type Directory interface {
	Role(ctx context.Context, userID int) (string, error)
}

// RequireAuth rejects requests without a valid session.
func RequireAuth(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := m.UserID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequireRole rejects authenticated users whose role is not in the allowed set.
// Must run after RequireAuth.
func RequireRole(dir Directory, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := dir.Role(c.Request.Context(), CurrentUserID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// CurrentUserID returns the authenticated user id set by RequireAuth.
func CurrentUserID(c *gin.Context) int {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(int)
	return userID
}
