package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
	"github.com/thatboigung/SmartAcademicSystem/internal/schedule"
)

type scheduleHandler struct {
	repo *schedule.Repository
}

func (h scheduleHandler) listEvents(c *gin.Context) {
	ctx := c.Request.Context()
	if category := c.Query("category"); category != "" {
		events, err := h.repo.ListEventsByCategory(ctx, category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch events failed"})
			return
		}
		c.JSON(http.StatusOK, events)
		return
	}
	from, fromOK := queryTime(c, "from")
	to, toOK := queryTime(c, "to")
	if fromOK && toOK {
		events, err := h.repo.ListEventsByRange(ctx, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch events failed"})
			return
		}
		c.JSON(http.StatusOK, events)
		return
	}
	events, err := h.repo.ListEvents(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch events failed"})
		return
	}
	c.JSON(http.StatusOK, events)
}

type eventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	Category    string    `json:"category" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	Duration    int       `json:"duration" binding:"required,min=1"`
	Location    *string   `json:"location"`
}

func (h scheduleHandler) createEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	author := auth.CurrentUserID(c)
	created, err := h.repo.CreateEvent(c.Request.Context(), schedule.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		StartDate:   req.StartDate,
		Duration:    req.Duration,
		Location:    req.Location,
		CreatedByID: &author,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create event failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h scheduleHandler) listTimetable(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		entries []schedule.TimetableEntry
		err     error
	)
	switch {
	case queryInt(c, "courseId") > 0:
		entries, err = h.repo.ListTimetableByCourse(ctx, queryInt(c, "courseId"))
	case queryInt(c, "lecturerId") > 0:
		entries, err = h.repo.ListTimetableByLecturer(ctx, queryInt(c, "lecturerId"))
	case queryInt(c, "studentId") > 0:
		entries, err = h.repo.ListTimetableForStudent(ctx, queryInt(c, "studentId"))
	default:
		entries, err = h.repo.ListTimetable(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch timetable failed"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

type timetableRequest struct {
	CourseID  int     `json:"courseId" binding:"required"`
	DayOfWeek *int    `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime string  `json:"startTime" binding:"required"`
	EndTime   string  `json:"endTime" binding:"required"`
	Location  *string `json:"location"`
}

func (h scheduleHandler) createTimetableEntry(c *gin.Context) {
	var req timetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.repo.CreateTimetableEntry(c.Request.Context(), schedule.TimetableEntry{
		CourseID:  req.CourseID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create timetable entry failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
