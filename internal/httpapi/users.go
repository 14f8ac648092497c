package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/user"
)

type userHandler struct {
	svc *user.Service
}

func (h userHandler) list(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		if errors.Is(err, user.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch users failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h userHandler) getByStudentID(c *gin.Context) {
	studentID := c.Param("studentId")
	found, err := h.svc.GetByStudentID(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch user failed"})
		return
	}
	c.JSON(http.StatusOK, found)
}

type createUserRequest struct {
	Username  string  `json:"username" binding:"required,min=3"`
	Password  string  `json:"password" binding:"required,min=6"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Role      string  `json:"role"`
	StudentID *string `json:"studentId"`
}

func (h userHandler) create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), user.User{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		StudentID: req.StudentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		case errors.Is(err, user.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "username or email already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

type updateUserRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	StudentID *string `json:"studentId"`
}

func (h userHandler) update(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, user.User{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		StudentID: req.StudentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, user.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		case errors.Is(err, user.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "username or email already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update user failed"})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}
