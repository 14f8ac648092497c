package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
	"github.com/thatboigung/SmartAcademicSystem/internal/resource"
)

type resourceHandler struct {
	repo *resource.Repository
}

func (h resourceHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		resources []resource.Resource
		err       error
	)
	switch {
	case queryInt(c, "courseId") > 0:
		resources, err = h.repo.ListByCourse(ctx, queryInt(c, "courseId"))
	case c.Query("type") != "":
		resources, err = h.repo.ListByType(ctx, c.Query("type"))
	case queryInt(c, "uploaderId") > 0:
		resources, err = h.repo.ListByUploader(ctx, queryInt(c, "uploaderId"))
	default:
		resources, err = h.repo.List(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch resources failed"})
		return
	}
	c.JSON(http.StatusOK, resources)
}

type resourceRequest struct {
	Title    string `json:"title" binding:"required"`
	Type     string `json:"type" binding:"required"`
	URL      string `json:"url" binding:"required,url"`
	CourseID *int   `json:"courseId"`
}

func (h resourceHandler) create(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uploader := auth.CurrentUserID(c)
	created, err := h.repo.Create(c.Request.Context(), resource.Resource{
		Title:        req.Title,
		Type:         req.Type,
		URL:          req.URL,
		CourseID:     req.CourseID,
		UploadedByID: &uploader,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create resource failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
