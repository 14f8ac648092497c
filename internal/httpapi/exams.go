package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
	"github.com/thatboigung/SmartAcademicSystem/internal/exam"
)

// eligibilityChecker is what the handler needs from the exam service.
type eligibilityChecker interface {
	CheckEligibility(ctx context.Context, studentID, examID int) (bool, error)
}

type examHandler struct {
	repo       *exam.Repository
	checker    eligibilityChecker
	activities activityLog
}

func (h examHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	if studentID := queryInt(c, "studentId"); studentID > 0 {
		exams, err := h.repo.ListExamsByStudent(ctx, studentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch exams failed"})
			return
		}
		c.JSON(http.StatusOK, exams)
		return
	}
	if from, ok := queryTime(c, "from"); ok {
		to, ok := queryTime(c, "to")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to is required with from"})
			return
		}
		exams, err := h.repo.ListExamsByDateRange(ctx, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch exams failed"})
			return
		}
		c.JSON(http.StatusOK, exams)
		return
	}
	courseID := queryInt(c, "courseId")
	if courseID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId is required"})
		return
	}
	exams, err := h.repo.ListExamsByCourse(ctx, courseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch exams failed"})
		return
	}
	c.JSON(http.StatusOK, exams)
}

type examRequest struct {
	CourseID          int       `json:"courseId" binding:"required"`
	Title             string    `json:"title" binding:"required"`
	Description       *string   `json:"description"`
	Date              time.Time `json:"date" binding:"required"`
	Duration          int       `json:"duration" binding:"required,min=1"`
	Location          *string   `json:"location"`
	MinimumAttendance *int      `json:"minimumAttendance" binding:"omitempty,min=0,max=100"`
}

func (h examHandler) create(c *gin.Context) {
	var req examRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.repo.CreateExam(c.Request.Context(), exam.Exam{
		CourseID:          req.CourseID,
		Title:             req.Title,
		Description:       req.Description,
		Date:              req.Date,
		Duration:          req.Duration,
		Location:          req.Location,
		MinimumAttendance: req.MinimumAttendance,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create exam failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

type examAttendanceRequest struct {
	ExamID    int  `json:"examId" binding:"required"`
	StudentID int  `json:"studentId" binding:"required"`
	Present   bool `json:"present"`
}

func (h examHandler) recordAttendance(c *gin.Context) {
	var req examAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.repo.RecordAttendance(c.Request.Context(), exam.Attendance{
		ExamID:    req.ExamID,
		StudentID: req.StudentID,
		Present:   req.Present,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record exam attendance failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h examHandler) listEligibility(c *gin.Context) {
	ctx := c.Request.Context()
	if examID := queryInt(c, "examId"); examID > 0 {
		records, err := h.repo.ListEligibilityByExam(ctx, examID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch eligibility failed"})
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}
	if studentID := queryInt(c, "studentId"); studentID > 0 {
		records, err := h.repo.ListEligibilityByStudent(ctx, studentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch eligibility failed"})
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "examId or studentId is required"})
}

type eligibilityRequest struct {
	ExamID    int  `json:"examId" binding:"required"`
	StudentID int  `json:"studentId" binding:"required"`
	Eligible  bool `json:"eligible"`
}

func (h examHandler) createEligibility(c *gin.Context) {
	var req eligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	verifier := auth.CurrentUserID(c)
	created, err := h.repo.CreateEligibility(c.Request.Context(), exam.Eligibility{
		ExamID:       req.ExamID,
		StudentID:    req.StudentID,
		Eligible:     req.Eligible,
		VerifiedByID: &verifier,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create eligibility failed"})
		return
	}
	h.activities.Record(c.Request.Context(), verifier, "Eligibility Verified",
		fmt.Sprintf("Verified eligibility for student %d for exam %d", req.StudentID, req.ExamID))
	c.JSON(http.StatusCreated, created)
}

type eligibilityCheckRequest struct {
	StudentID int `json:"studentId" binding:"required"`
	ExamID    int `json:"examId" binding:"required"`
}

func (h examHandler) checkEligibility(c *gin.Context) {
	var req eligibilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studentId and examId are required"})
		return
	}
	eligible, err := h.checker.CheckEligibility(c.Request.Context(), req.StudentID, req.ExamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "check eligibility failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligible": eligible})
}
