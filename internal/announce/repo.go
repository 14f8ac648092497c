package announce

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repository persists announcements and their recipients in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const announcementColumns = `id, title, content, course_id, created_by_id, is_global, created_at`

// List returns all announcements, most recent first.
func (r *Repository) List(ctx context.Context) ([]Announcement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+announcementColumns+` FROM announcements ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ListByCourse returns a course's announcements, most recent first.
func (r *Repository) ListByCourse(ctx context.Context, courseID int) ([]Announcement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+announcementColumns+` FROM announcements
		WHERE course_id = $1 ORDER BY created_at DESC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ListForStudent returns announcements addressed to the student plus the
// global ones, most recent first.
func (r *Repository) ListForStudent(ctx context.Context, studentID int) ([]Announcement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT a.id, a.title, a.content, a.course_id, a.created_by_id, a.is_global, a.created_at
		FROM announcements a
		LEFT JOIN announcement_recipients rec ON rec.announcement_id = a.id
		WHERE a.is_global OR rec.student_id = $1
		ORDER BY a.created_at DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Announcement, error) {
	var announcements []Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CourseID, &a.CreatedByID, &a.IsGlobal, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// Create inserts an announcement.
func (r *Repository) Create(ctx context.Context, a Announcement) (Announcement, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO announcements (title, content, course_id, created_by_id, is_global)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at
	`, a.Title, a.Content, a.CourseID, a.CreatedByID, a.IsGlobal)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return Announcement{}, err
	}
	return a, nil
}

// AddRecipient registers a student as a recipient of an announcement.
func (r *Repository) AddRecipient(ctx context.Context, rec Recipient) (Recipient, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO announcement_recipients (announcement_id, student_id)
		VALUES ($1,$2)
		RETURNING id
	`, rec.AnnouncementID, rec.StudentID)
	if err := row.Scan(&rec.ID); err != nil {
		return Recipient{}, err
	}
	rec.IsRead = false
	rec.ReadAt = nil
	return rec, nil
}

// MarkRead flags a recipient record as read and stamps the time.
func (r *Repository) MarkRead(ctx context.Context, id int) (Recipient, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `
		UPDATE announcement_recipients SET is_read = TRUE, read_at = $2
		WHERE id = $1
		RETURNING id, announcement_id, student_id, is_read, read_at
	`, id, now)
	var rec Recipient
	err := row.Scan(&rec.ID, &rec.AnnouncementID, &rec.StudentID, &rec.IsRead, &rec.ReadAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Recipient{}, ErrNotFound
	}
	return rec, err
}
