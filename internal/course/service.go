package course

import "context"

type attendanceSource interface {
	CountSessions(ctx context.Context, courseID int) (int, error)
	CountPresent(ctx context.Context, studentID, courseID int) (int, error)
}

// Service computes attendance statistics over the repository.
type Service struct {
	repo attendanceSource
}

// NewService creates a service backed by a repository.
func NewService(repo attendanceSource) *Service {
	return &Service{repo: repo}
}

// AttendanceRate returns the percentage of a course's sessions with a
// present-attendance record for the student. A course with no sessions rates
// 0. Duplicate rows for one session are each counted, so the result can
// exceed 100 when the data carries duplicates; callers that need a hard cap
// must enforce uniqueness at write time.
func (s *Service) AttendanceRate(ctx context.Context, studentID, courseID int) (float64, error) {
	sessions, err := s.repo.CountSessions(ctx, courseID)
	if err != nil {
		return 0, err
	}
	if sessions == 0 {
		return 0, nil
	}
	present, err := s.repo.CountPresent(ctx, studentID, courseID)
	if err != nil {
		return 0, err
	}
	return float64(present) / float64(sessions) * 100, nil
}
