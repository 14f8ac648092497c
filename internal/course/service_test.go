package course

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendance struct {
	sessions map[int]int         // courseID -> session count
	present  map[[2]int]int      // {studentID, courseID} -> present count
	err      error
}

func (f fakeAttendance) CountSessions(_ context.Context, courseID int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.sessions[courseID], nil
}

func (f fakeAttendance) CountPresent(_ context.Context, studentID, courseID int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.present[[2]int{studentID, courseID}], nil
}

func TestAttendanceRate(t *testing.T) {
	tests := []struct {
		name     string
		sessions int
		present  int
		want     float64
	}{
		{"no sessions", 0, 0, 0},
		{"no attendance", 4, 0, 0},
		{"partial", 4, 3, 75},
		{"full", 4, 4, 100},
		{"thirds", 3, 1, 100.0 / 3},
		// Duplicate present rows for a session each count, so the rate
		// can pass 100. Writes do not dedupe.
		{"duplicates", 4, 5, 125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(fakeAttendance{
				sessions: map[int]int{10: tt.sessions},
				present:  map[[2]int]int{{1, 10}: tt.present},
			})
			rate, err := svc.AttendanceRate(context.Background(), 1, 10)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, rate, 1e-9)
		})
	}
}

func TestAttendanceRateStoreError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(fakeAttendance{err: boom})

	_, err := svc.AttendanceRate(context.Background(), 1, 10)
	assert.ErrorIs(t, err, boom)
}
