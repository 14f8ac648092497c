package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, username, password, first_name, last_name, email, role, student_id, created_at`

// Repository persists users in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.StudentID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// Get returns a user by id.
func (r *Repository) Get(ctx context.Context, id int) (User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByUsername returns a user by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// GetByStudentID returns a user by student business key.
func (r *Repository) GetByStudentID(ctx context.Context, studentID string) (User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE student_id = $1`, studentID)
	return scanUser(row)
}

// Exists reports whether a user with the id exists.
func (r *Repository) Exists(ctx context.Context, id int) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&found)
	return found, err
}

// Role returns the role of the user with the given id.
func (r *Repository) Role(ctx context.Context, id int) (string, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return role, err
}

// List returns all users, optionally filtered by role.
func (r *Repository) List(ctx context.Context, role string) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	args := []any{}
	if role != "" {
		query = `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`
		args = append(args, role)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts a user. The password must already be hashed.
func (r *Repository) Create(ctx context.Context, u User) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password, first_name, last_name, email, role, student_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at
	`, u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.Role, u.StudentID)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	return u, nil
}

// Update applies non-zero fields to an existing user and returns the result.
func (r *Repository) Update(ctx context.Context, id int, u User) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET
			username   = COALESCE(NULLIF($2, ''), username),
			password   = COALESCE(NULLIF($3, ''), password),
			first_name = COALESCE(NULLIF($4, ''), first_name),
			last_name  = COALESCE(NULLIF($5, ''), last_name),
			email      = COALESCE(NULLIF($6, ''), email),
			role       = COALESCE(NULLIF($7, ''), role),
			student_id = COALESCE($8, student_id)
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id, u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.Role, u.StudentID)
	updated, err := scanUser(row)
	if err != nil && isUniqueViolation(err) {
		return User{}, ErrDuplicate
	}
	return updated, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
