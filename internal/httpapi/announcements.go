package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/announce"
	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
)

type announceHandler struct {
	repo *announce.Repository
}

func (h announceHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	if courseID := queryInt(c, "courseId"); courseID > 0 {
		announcements, err := h.repo.ListByCourse(ctx, courseID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch announcements failed"})
			return
		}
		c.JSON(http.StatusOK, announcements)
		return
	}
	if studentID := queryInt(c, "studentId"); studentID > 0 {
		announcements, err := h.repo.ListForStudent(ctx, studentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch announcements failed"})
			return
		}
		c.JSON(http.StatusOK, announcements)
		return
	}
	announcements, err := h.repo.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch announcements failed"})
		return
	}
	c.JSON(http.StatusOK, announcements)
}

type announcementRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	CourseID   *int   `json:"courseId"`
	IsGlobal   bool   `json:"isGlobal"`
	Recipients []int  `json:"recipients"`
}

func (h announceHandler) create(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	author := auth.CurrentUserID(c)
	created, err := h.repo.Create(c.Request.Context(), announce.Announcement{
		Title:       req.Title,
		Content:     req.Content,
		CourseID:    req.CourseID,
		CreatedByID: &author,
		IsGlobal:    req.IsGlobal,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create announcement failed"})
		return
	}
	for _, studentID := range req.Recipients {
		if _, err := h.repo.AddRecipient(c.Request.Context(), announce.Recipient{
			AnnouncementID: created.ID,
			StudentID:      studentID,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create announcement failed"})
			return
		}
	}
	c.JSON(http.StatusCreated, created)
}

func (h announceHandler) markRead(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient id"})
		return
	}
	rec, err := h.repo.MarkRead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, announce.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mark read failed"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
