package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
	"github.com/thatboigung/SmartAcademicSystem/internal/user"
)

// activityLog feeds the audit trail. Implementations must not fail the
// request on logging errors.
type activityLog interface {
	Record(ctx context.Context, userID int, action, details string)
}

type authHandler struct {
	sessions   *auth.Manager
	users      *user.Service
	activities activityLog
}

type loginRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h authHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if err := h.sessions.Issue(c, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session create failed"})
		return
	}

	h.activities.Record(c.Request.Context(), u.ID, "Login", fmt.Sprintf("User %s logged in", u.Username))
	c.JSON(http.StatusOK, u)
}

func (h authHandler) logout(c *gin.Context) {
	h.activities.Record(c.Request.Context(), auth.CurrentUserID(c), "Logout", "User logged out")
	if err := h.sessions.Clear(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h authHandler) currentUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch user failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}
