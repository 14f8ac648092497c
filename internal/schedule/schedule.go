package schedule

import "time"

// Event is a campus-wide happening: seminars, sports, deadlines.
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"`
	StartDate   time.Time `json:"startDate"`
	Duration    int       `json:"duration"` // minutes
	Location    *string   `json:"location,omitempty"`
	CreatedByID *int      `json:"createdById,omitempty"`
}

// TimetableEntry is one weekly slot of a course. DayOfWeek is 0 (Sunday)
// through 6; times are "HH:MM" strings to match the client.
type TimetableEntry struct {
	ID        int     `json:"id"`
	CourseID  int     `json:"courseId"`
	DayOfWeek int     `json:"dayOfWeek"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Location  *string `json:"location,omitempty"`
}
