package schedule

import (
	"context"
	"database/sql"
	"time"
)

// Repository persists campus events and timetable entries in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const eventColumns = `id, title, description, category, start_date, duration, location, created_by_id`

// ListEvents returns all events ordered by start date.
func (r *Repository) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events ORDER BY start_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListEventsByCategory returns events in a category ordered by start date.
func (r *Repository) ListEventsByCategory(ctx context.Context, category string) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events WHERE category = $1 ORDER BY start_date
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListEventsByRange returns events that start and finish within [from, to].
func (r *Repository) ListEventsByRange(ctx context.Context, from, to time.Time) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE start_date >= $1 AND start_date + (duration * interval '1 minute') <= $2
		ORDER BY start_date
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.StartDate, &e.Duration, &e.Location, &e.CreatedByID); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CreateEvent inserts an event.
func (r *Repository) CreateEvent(ctx context.Context, e Event) (Event, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO events (title, description, category, start_date, duration, location, created_by_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, e.Title, e.Description, e.Category, e.StartDate, e.Duration, e.Location, e.CreatedByID)
	if err := row.Scan(&e.ID); err != nil {
		return Event{}, err
	}
	return e, nil
}

const timetableColumns = `id, course_id, day_of_week, start_time, end_time, location`

// ListTimetable returns every timetable entry in weekly order.
func (r *Repository) ListTimetable(ctx context.Context) ([]TimetableEntry, error) {
	return r.queryTimetable(ctx, `
		SELECT `+timetableColumns+` FROM timetable ORDER BY day_of_week, start_time
	`)
}

// ListTimetableByCourse returns a course's weekly slots.
func (r *Repository) ListTimetableByCourse(ctx context.Context, courseID int) ([]TimetableEntry, error) {
	return r.queryTimetable(ctx, `
		SELECT `+timetableColumns+` FROM timetable
		WHERE course_id = $1 ORDER BY day_of_week, start_time
	`, courseID)
}

// ListTimetableByLecturer returns the slots of every course the lecturer owns.
func (r *Repository) ListTimetableByLecturer(ctx context.Context, lecturerID int) ([]TimetableEntry, error) {
	return r.queryTimetable(ctx, `
		SELECT t.id, t.course_id, t.day_of_week, t.start_time, t.end_time, t.location
		FROM timetable t
		JOIN courses c ON c.id = t.course_id
		WHERE c.lecturer_id = $1
		ORDER BY t.day_of_week, t.start_time
	`, lecturerID)
}

// ListTimetableForStudent returns the slots of every course the student is
// enrolled in.
func (r *Repository) ListTimetableForStudent(ctx context.Context, studentID int) ([]TimetableEntry, error) {
	return r.queryTimetable(ctx, `
		SELECT t.id, t.course_id, t.day_of_week, t.start_time, t.end_time, t.location
		FROM timetable t
		JOIN enrollments en ON en.course_id = t.course_id
		WHERE en.student_id = $1
		ORDER BY t.day_of_week, t.start_time
	`, studentID)
}

func (r *Repository) queryTimetable(ctx context.Context, query string, args ...any) ([]TimetableEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []TimetableEntry
	for rows.Next() {
		var t TimetableEntry
		if err := rows.Scan(&t.ID, &t.CourseID, &t.DayOfWeek, &t.StartTime, &t.EndTime, &t.Location); err != nil {
			return nil, err
		}
		entries = append(entries, t)
	}
	return entries, rows.Err()
}

// CreateTimetableEntry inserts a weekly slot.
func (r *Repository) CreateTimetableEntry(ctx context.Context, t TimetableEntry) (TimetableEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO timetable (course_id, day_of_week, start_time, end_time, location)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, t.CourseID, t.DayOfWeek, t.StartTime, t.EndTime, t.Location)
	if err := row.Scan(&t.ID); err != nil {
		return TimetableEntry{}, err
	}
	return t, nil
}
