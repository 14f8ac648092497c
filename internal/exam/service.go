package exam

import (
	"context"
	"errors"
)

type examSource interface {
	GetExam(ctx context.Context, id int) (Exam, error)
}

type rateSource interface {
	AttendanceRate(ctx context.Context, studentID, courseID int) (float64, error)
}

// Service decides exam eligibility from attendance rates.
type Service struct {
	exams examSource
	rates rateSource
}

// NewService creates a service over the exam repository and the attendance
// rate calculator.
func NewService(exams examSource, rates rateSource) *Service {
	return &Service{exams: exams, rates: rates}
}

// CheckEligibility reports whether the student's attendance rate in the
// exam's course meets the exam's minimum requirement. A missing exam, or one
// without a positive minimum, yields false rather than an error; only store
// failures propagate.
func (s *Service) CheckEligibility(ctx context.Context, studentID, examID int) (bool, error) {
	e, err := s.exams.GetExam(ctx, examID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	// A zero minimum is treated the same as an unset one, matching the
	// system's historical behavior. See DESIGN.md before changing this.
	if e.MinimumAttendance == nil || *e.MinimumAttendance == 0 {
		return false, nil
	}
	rate, err := s.rates.AttendanceRate(ctx, studentID, e.CourseID)
	if err != nil {
		return false, err
	}
	return rate >= float64(*e.MinimumAttendance), nil
}
