package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
	"github.com/thatboigung/SmartAcademicSystem/internal/course"
)

type courseHandler struct {
	repo       *course.Repository
	activities activityLog
}

func (h courseHandler) listCourses(c *gin.Context) {
	courses, err := h.repo.ListCourses(c.Request.Context(), queryInt(c, "lecturerId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch courses failed"})
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h courseHandler) getCourse(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}
	found, err := h.repo.GetCourse(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch course failed"})
		return
	}
	c.JSON(http.StatusOK, found)
}

type courseRequest struct {
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	LecturerID   *int    `json:"lecturerId"`
	Semester     *string `json:"semester"`
	AcademicYear *string `json:"academicYear"`
}

func (h courseHandler) createCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.repo.CreateCourse(c.Request.Context(), course.Course{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		LecturerID:   req.LecturerID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create course failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h courseHandler) updateCourse(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}
	var req struct {
		Code         string  `json:"code"`
		Name         string  `json:"name"`
		Description  *string `json:"description"`
		LecturerID   *int    `json:"lecturerId"`
		Semester     *string `json:"semester"`
		AcademicYear *string `json:"academicYear"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.repo.UpdateCourse(c.Request.Context(), id, course.Course{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		LecturerID:   req.LecturerID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
	})
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update course failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h courseHandler) listSessions(c *gin.Context) {
	courseID := queryInt(c, "courseId")
	if courseID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId is required"})
		return
	}
	sessions, err := h.repo.ListSessionsByCourse(c.Request.Context(), courseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch sessions failed"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h courseHandler) getSession(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	found, err := h.repo.GetSession(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch session failed"})
		return
	}
	c.JSON(http.StatusOK, found)
}

type sessionRequest struct {
	CourseID int       `json:"courseId" binding:"required"`
	Title    string    `json:"title" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Duration int       `json:"duration" binding:"required,min=1"`
	Location *string   `json:"location"`
}

func (h courseHandler) createSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.repo.CreateSession(c.Request.Context(), course.ClassSession{
		CourseID: req.CourseID,
		Title:    req.Title,
		Date:     req.Date,
		Duration: req.Duration,
		Location: req.Location,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create session failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h courseHandler) listAttendance(c *gin.Context) {
	if sessionID := queryInt(c, "sessionId"); sessionID > 0 {
		records, err := h.repo.ListAttendanceBySession(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch attendance failed"})
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}
	if studentID := queryInt(c, "studentId"); studentID > 0 {
		records, err := h.repo.ListAttendanceByStudent(c.Request.Context(), studentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch attendance failed"})
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId or studentId is required"})
}

type attendanceRequest struct {
	SessionID int  `json:"sessionId" binding:"required"`
	StudentID int  `json:"studentId" binding:"required"`
	Present   bool `json:"present"`
}

func (h courseHandler) createAttendance(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	markedBy := auth.CurrentUserID(c)
	created, err := h.repo.CreateAttendance(c.Request.Context(), course.Attendance{
		SessionID:  req.SessionID,
		StudentID:  req.StudentID,
		Present:    req.Present,
		MarkedByID: &markedBy,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record attendance failed"})
		return
	}
	h.activities.Record(c.Request.Context(), markedBy, "Attendance Recorded",
		fmt.Sprintf("Recorded attendance for student %d in session %d", req.StudentID, req.SessionID))
	c.JSON(http.StatusCreated, created)
}

func (h courseHandler) listEnrollments(c *gin.Context) {
	if courseID := queryInt(c, "courseId"); courseID > 0 {
		enrollments, err := h.repo.ListEnrollmentsByCourse(c.Request.Context(), courseID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch enrollments failed"})
			return
		}
		c.JSON(http.StatusOK, enrollments)
		return
	}
	if studentID := queryInt(c, "studentId"); studentID > 0 {
		enrollments, err := h.repo.ListEnrollmentsByStudent(c.Request.Context(), studentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch enrollments failed"})
			return
		}
		c.JSON(http.StatusOK, enrollments)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "courseId or studentId is required"})
}

type enrollmentRequest struct {
	StudentID int `json:"studentId" binding:"required"`
	CourseID  int `json:"courseId" binding:"required"`
}

func (h courseHandler) createEnrollment(c *gin.Context) {
	var req enrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.repo.CreateEnrollment(c.Request.Context(), course.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create enrollment failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h courseHandler) deleteEnrollment(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid enrollment id"})
		return
	}
	if err := h.repo.DeleteEnrollment(c.Request.Context(), id); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "enrollment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete enrollment failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "enrollment deleted"})
}
