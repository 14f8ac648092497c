package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
	"github.com/thatboigung/SmartAcademicSystem/internal/qr"
	"github.com/thatboigung/SmartAcademicSystem/internal/user"
)

type qrService interface {
	Issue(ctx context.Context, userID int) (string, error)
	Verify(ctx context.Context, token string) (int, error)
}

type userGetter interface {
	Get(ctx context.Context, id int) (user.User, error)
}

type qrHandler struct {
	svc   qrService
	users userGetter
}

func (h qrHandler) generate(c *gin.Context) {
	token, err := h.svc.Issue(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, qr.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generate qr code failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type verifyRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h qrHandler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	userID, err := h.svc.Verify(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, qr.ErrInvalidToken) {
			// Same message for unknown and expired; no token-guessing feedback.
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verify qr code failed"})
		return
	}

	u, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verify qr code failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}
