package resource

import (
	"context"
	"database/sql"
	"time"
)

// Resource is course material: slides, notes, recordings, links.
type Resource struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	URL          string    `json:"url"`
	CourseID     *int      `json:"courseId,omitempty"`
	UploadedByID *int      `json:"uploadedById,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// Repository persists resources in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const resourceColumns = `id, title, type, url, course_id, uploaded_by_id, uploaded_at`

// List returns all resources, newest first.
func (r *Repository) List(ctx context.Context) ([]Resource, error) {
	return r.query(ctx, `SELECT `+resourceColumns+` FROM resources ORDER BY uploaded_at DESC`)
}

// ListByCourse returns a course's resources, newest first.
func (r *Repository) ListByCourse(ctx context.Context, courseID int) ([]Resource, error) {
	return r.query(ctx, `
		SELECT `+resourceColumns+` FROM resources WHERE course_id = $1 ORDER BY uploaded_at DESC
	`, courseID)
}

// ListByType returns resources of one type, newest first.
func (r *Repository) ListByType(ctx context.Context, resourceType string) ([]Resource, error) {
	return r.query(ctx, `
		SELECT `+resourceColumns+` FROM resources WHERE type = $1 ORDER BY uploaded_at DESC
	`, resourceType)
}

// ListByUploader returns one user's uploads, newest first.
func (r *Repository) ListByUploader(ctx context.Context, uploaderID int) ([]Resource, error) {
	return r.query(ctx, `
		SELECT `+resourceColumns+` FROM resources WHERE uploaded_by_id = $1 ORDER BY uploaded_at DESC
	`, uploaderID)
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]Resource, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var resources []Resource
	for rows.Next() {
		var res Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.Type, &res.URL, &res.CourseID, &res.UploadedByID, &res.UploadedAt); err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// Create inserts a resource.
func (r *Repository) Create(ctx context.Context, res Resource) (Resource, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO resources (title, type, url, course_id, uploaded_by_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, uploaded_at
	`, res.Title, res.Type, res.URL, res.CourseID, res.UploadedByID)
	if err := row.Scan(&res.ID, &res.UploadedAt); err != nil {
		return Resource{}, err
	}
	return res, nil
}
