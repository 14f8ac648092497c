package course

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a course, session or enrollment is missing.
var ErrNotFound = errors.New("not found")

// Course is a taught unit, optionally owned by one lecturer.
type Course struct {
	ID           int     `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	LecturerID   *int    `json:"lecturerId,omitempty"`
	Semester     *string `json:"semester,omitempty"`
	AcademicYear *string `json:"academicYear,omitempty"`
}

// ClassSession is a single scheduled meeting of a course.
type ClassSession struct {
	ID       int       `json:"id"`
	CourseID int       `json:"courseId"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Duration int       `json:"duration"` // minutes
	Location *string   `json:"location,omitempty"`
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID         int       `json:"id"`
	StudentID  int       `json:"studentId"`
	CourseID   int       `json:"courseId"`
	EnrolledAt time.Time `json:"enrollmentDate"`
}

// Attendance records whether a student was present at a class session.
type Attendance struct {
	ID         int       `json:"id"`
	SessionID  int       `json:"sessionId"`
	StudentID  int       `json:"studentId"`
	Present    bool      `json:"present"`
	Timestamp  time.Time `json:"timestamp"`
	MarkedByID *int      `json:"markedById,omitempty"`
}
