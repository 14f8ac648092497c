package exam

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an exam or eligibility record is missing.
var ErrNotFound = errors.New("not found")

// Exam belongs to a course. MinimumAttendance is the percentage a student
// must reach to sit the exam; nil means no requirement was configured.
type Exam struct {
	ID                int       `json:"id"`
	CourseID          int       `json:"courseId"`
	Title             string    `json:"title"`
	Description       *string   `json:"description,omitempty"`
	Date              time.Time `json:"date"`
	Duration          int       `json:"duration"` // minutes
	Location          *string   `json:"location,omitempty"`
	MinimumAttendance *int      `json:"minimumAttendance,omitempty"`
}

// Eligibility is a verified record that a student may sit an exam.
type Eligibility struct {
	ID           int        `json:"id"`
	ExamID       int        `json:"examId"`
	StudentID    int        `json:"studentId"`
	Eligible     bool       `json:"eligible"`
	VerifiedByID *int       `json:"verifiedById,omitempty"`
	VerifiedAt   *time.Time `json:"verifiedAt,omitempty"`
}

// Attendance records that a student sat (or missed) an exam.
type Attendance struct {
	ID        int       `json:"id"`
	ExamID    int       `json:"examId"`
	StudentID int       `json:"studentId"`
	Present   bool      `json:"present"`
	Timestamp time.Time `json:"timestamp"`
}
