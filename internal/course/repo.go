package course

import (
	"context"
	"database/sql"
	"errors"
)

// Repository persists courses, enrollments, class sessions and attendance
// records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const courseColumns = `id, code, name, description, lecturer_id, semester, academic_year`

func scanCourse(row interface{ Scan(...any) error }) (Course, error) {
	var c Course
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.LecturerID, &c.Semester, &c.AcademicYear)
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, ErrNotFound
	}
	return c, err
}

// GetCourse returns a course by id.
func (r *Repository) GetCourse(ctx context.Context, id int) (Course, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
	return scanCourse(row)
}

// ListCourses returns all courses, or only those owned by lecturerID when > 0.
func (r *Repository) ListCourses(ctx context.Context, lecturerID int) ([]Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY code`
	args := []any{}
	if lecturerID > 0 {
		query = `SELECT ` + courseColumns + ` FROM courses WHERE lecturer_id = $1 ORDER BY code`
		args = append(args, lecturerID)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var courses []Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// CreateCourse inserts a course.
func (r *Repository) CreateCourse(ctx context.Context, c Course) (Course, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO courses (code, name, description, lecturer_id, semester, academic_year)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, c.Code, c.Name, c.Description, c.LecturerID, c.Semester, c.AcademicYear)
	if err := row.Scan(&c.ID); err != nil {
		return Course{}, err
	}
	return c, nil
}

// UpdateCourse applies non-empty fields to an existing course.
func (r *Repository) UpdateCourse(ctx context.Context, id int, c Course) (Course, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE courses SET
			code          = COALESCE(NULLIF($2, ''), code),
			name          = COALESCE(NULLIF($3, ''), name),
			description   = COALESCE($4, description),
			lecturer_id   = COALESCE($5, lecturer_id),
			semester      = COALESCE($6, semester),
			academic_year = COALESCE($7, academic_year)
		WHERE id = $1
		RETURNING `+courseColumns+`
	`, id, c.Code, c.Name, c.Description, c.LecturerID, c.Semester, c.AcademicYear)
	return scanCourse(row)
}

// GetSession returns a class session by id.
func (r *Repository) GetSession(ctx context.Context, id int) (ClassSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, course_id, title, date, duration, location FROM class_sessions WHERE id = $1
	`, id)
	var s ClassSession
	err := row.Scan(&s.ID, &s.CourseID, &s.Title, &s.Date, &s.Duration, &s.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return ClassSession{}, ErrNotFound
	}
	return s, err
}

// ListSessionsByCourse returns all class sessions of a course.
func (r *Repository) ListSessionsByCourse(ctx context.Context, courseID int) ([]ClassSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, course_id, title, date, duration, location
		FROM class_sessions WHERE course_id = $1 ORDER BY date
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []ClassSession
	for rows.Next() {
		var s ClassSession
		if err := rows.Scan(&s.ID, &s.CourseID, &s.Title, &s.Date, &s.Duration, &s.Location); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CreateSession inserts a class session.
func (r *Repository) CreateSession(ctx context.Context, s ClassSession) (ClassSession, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO class_sessions (course_id, title, date, duration, location)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, s.CourseID, s.Title, s.Date, s.Duration, s.Location)
	if err := row.Scan(&s.ID); err != nil {
		return ClassSession{}, err
	}
	return s, nil
}

// ListEnrollmentsByCourse returns the enrollments of a course.
func (r *Repository) ListEnrollmentsByCourse(ctx context.Context, courseID int) ([]Enrollment, error) {
	return r.listEnrollments(ctx, `course_id`, courseID)
}

// ListEnrollmentsByStudent returns the enrollments of a student.
func (r *Repository) ListEnrollmentsByStudent(ctx context.Context, studentID int) ([]Enrollment, error) {
	return r.listEnrollments(ctx, `student_id`, studentID)
}

func (r *Repository) listEnrollments(ctx context.Context, column string, id int) ([]Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, student_id, course_id, enrollment_date
		FROM enrollments WHERE `+column+` = $1 ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var enrollments []Enrollment
	for rows.Next() {
		var e Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// CreateEnrollment links a student to a course.
func (r *Repository) CreateEnrollment(ctx context.Context, e Enrollment) (Enrollment, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1,$2)
		RETURNING id, enrollment_date
	`, e.StudentID, e.CourseID)
	if err := row.Scan(&e.ID, &e.EnrolledAt); err != nil {
		return Enrollment{}, err
	}
	return e, nil
}

// DeleteEnrollment removes an enrollment by id.
func (r *Repository) DeleteEnrollment(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAttendanceBySession returns the attendance records of a class session.
func (r *Repository) ListAttendanceBySession(ctx context.Context, sessionID int) ([]Attendance, error) {
	return r.listAttendance(ctx, `session_id`, sessionID)
}

// ListAttendanceByStudent returns a student's attendance records.
func (r *Repository) ListAttendanceByStudent(ctx context.Context, studentID int) ([]Attendance, error) {
	return r.listAttendance(ctx, `student_id`, studentID)
}

func (r *Repository) listAttendance(ctx context.Context, column string, id int) ([]Attendance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, student_id, present, timestamp, marked_by_id
		FROM attendance WHERE `+column+` = $1 ORDER BY timestamp
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []Attendance
	for rows.Next() {
		var a Attendance
		if err := rows.Scan(&a.ID, &a.SessionID, &a.StudentID, &a.Present, &a.Timestamp, &a.MarkedByID); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// CreateAttendance records a student's presence at a class session.
func (r *Repository) CreateAttendance(ctx context.Context, a Attendance) (Attendance, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (session_id, student_id, present, marked_by_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id, timestamp
	`, a.SessionID, a.StudentID, a.Present, a.MarkedByID)
	if err := row.Scan(&a.ID, &a.Timestamp); err != nil {
		return Attendance{}, err
	}
	return a, nil
}

// CountSessions returns the number of class sessions a course has.
func (r *Repository) CountSessions(ctx context.Context, courseID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM class_sessions WHERE course_id = $1
	`, courseID).Scan(&count)
	return count, err
}

// CountPresent returns the number of present-attendance rows a student has
// across a course's sessions. Duplicate rows per session each count.
func (r *Repository) CountPresent(ctx context.Context, studentID, courseID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM attendance a
		JOIN class_sessions s ON s.id = a.session_id
		WHERE a.student_id = $1 AND a.present AND s.course_id = $2
	`, studentID, courseID).Scan(&count)
	return count, err
}
