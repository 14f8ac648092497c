package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/activity"
)

type activityHandler struct {
	repo *activity.Repository
}

func (h activityHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	if userID := queryInt(c, "userId"); userID > 0 {
		activities, err := h.repo.ListByUser(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch activities failed"})
			return
		}
		c.JSON(http.StatusOK, activities)
		return
	}
	activities, err := h.repo.List(ctx, queryInt(c, "limit"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch activities failed"})
		return
	}
	c.JSON(http.StatusOK, activities)
}
