package activity

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// Activity is one row of the audit trail shown on dashboards.
type Activity struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"userId,omitempty"`
	Action    string    `json:"action"`
	Details   *string   `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Repository persists the activity log in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an activity entry.
func (r *Repository) Create(ctx context.Context, a Activity) (Activity, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO activities (user_id, action, details)
		VALUES ($1,$2,$3)
		RETURNING id, timestamp
	`, a.UserID, a.Action, a.Details)
	if err := row.Scan(&a.ID, &a.Timestamp); err != nil {
		return Activity{}, err
	}
	return a, nil
}

// Record logs an action for a user. Failures are logged and swallowed; the
// audit trail never blocks the request that produced it.
func (r *Repository) Record(ctx context.Context, userID int, action, details string) {
	a := Activity{Action: action}
	if userID > 0 {
		a.UserID = &userID
	}
	if details != "" {
		a.Details = &details
	}
	if _, err := r.Create(ctx, a); err != nil {
		log.Printf("activity log failed: %v", err)
	}
}

// List returns the most recent activities, capped at limit when > 0.
func (r *Repository) List(ctx context.Context, limit int) ([]Activity, error) {
	query := `SELECT id, user_id, action, details, timestamp FROM activities ORDER BY timestamp DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ListByUser returns a user's activities, most recent first.
func (r *Repository) ListByUser(ctx context.Context, userID int) ([]Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, action, details, timestamp
		FROM activities WHERE user_id = $1 ORDER BY timestamp DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Details, &a.Timestamp); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
