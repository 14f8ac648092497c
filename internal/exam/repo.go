package exam

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repository persists exams, eligibility records and exam attendance in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const examColumns = `id, course_id, title, description, date, duration, location, minimum_attendance`

func scanExam(row interface{ Scan(...any) error }) (Exam, error) {
	var e Exam
	err := row.Scan(&e.ID, &e.CourseID, &e.Title, &e.Description, &e.Date, &e.Duration, &e.Location, &e.MinimumAttendance)
	if errors.Is(err, sql.ErrNoRows) {
		return Exam{}, ErrNotFound
	}
	return e, err
}

// GetExam returns an exam by id.
func (r *Repository) GetExam(ctx context.Context, id int) (Exam, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+examColumns+` FROM exams WHERE id = $1`, id)
	return scanExam(row)
}

// ListExamsByCourse returns a course's exams.
func (r *Repository) ListExamsByCourse(ctx context.Context, courseID int) ([]Exam, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+examColumns+` FROM exams WHERE course_id = $1 ORDER BY date
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExams(rows)
}

// ListExamsByDateRange returns exams scheduled within [from, to].
func (r *Repository) ListExamsByDateRange(ctx context.Context, from, to time.Time) ([]Exam, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+examColumns+` FROM exams WHERE date >= $1 AND date <= $2 ORDER BY date
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExams(rows)
}

// ListExamsByStudent returns exams in the courses the student is enrolled in.
func (r *Repository) ListExamsByStudent(ctx context.Context, studentID int) ([]Exam, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prefixedExamColumns("e")+`
		FROM exams e
		JOIN enrollments en ON en.course_id = e.course_id
		WHERE en.student_id = $1
		ORDER BY e.date
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExams(rows)
}

func prefixedExamColumns(alias string) string {
	return alias + `.id, ` + alias + `.course_id, ` + alias + `.title, ` + alias + `.description, ` +
		alias + `.date, ` + alias + `.duration, ` + alias + `.location, ` + alias + `.minimum_attendance`
}

func collectExams(rows *sql.Rows) ([]Exam, error) {
	var exams []Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// CreateExam inserts an exam.
func (r *Repository) CreateExam(ctx context.Context, e Exam) (Exam, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO exams (course_id, title, description, date, duration, location, minimum_attendance)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, e.CourseID, e.Title, e.Description, e.Date, e.Duration, e.Location, e.MinimumAttendance)
	if err := row.Scan(&e.ID); err != nil {
		return Exam{}, err
	}
	return e, nil
}

// ListEligibilityByExam returns the eligibility records of an exam.
func (r *Repository) ListEligibilityByExam(ctx context.Context, examID int) ([]Eligibility, error) {
	return r.listEligibility(ctx, `exam_id`, examID)
}

// ListEligibilityByStudent returns a student's eligibility records.
func (r *Repository) ListEligibilityByStudent(ctx context.Context, studentID int) ([]Eligibility, error) {
	return r.listEligibility(ctx, `student_id`, studentID)
}

func (r *Repository) listEligibility(ctx context.Context, column string, id int) ([]Eligibility, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, exam_id, student_id, eligible, verified_by_id, verified_at
		FROM exam_eligibility WHERE `+column+` = $1 ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []Eligibility
	for rows.Next() {
		var el Eligibility
		if err := rows.Scan(&el.ID, &el.ExamID, &el.StudentID, &el.Eligible, &el.VerifiedByID, &el.VerifiedAt); err != nil {
			return nil, err
		}
		records = append(records, el)
	}
	return records, rows.Err()
}

// CreateEligibility inserts an eligibility record. VerifiedAt is stamped only
// when a verifier is present.
func (r *Repository) CreateEligibility(ctx context.Context, el Eligibility) (Eligibility, error) {
	if el.VerifiedByID != nil {
		now := time.Now().UTC()
		el.VerifiedAt = &now
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO exam_eligibility (exam_id, student_id, eligible, verified_by_id, verified_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, el.ExamID, el.StudentID, el.Eligible, el.VerifiedByID, el.VerifiedAt)
	if err := row.Scan(&el.ID); err != nil {
		return Eligibility{}, err
	}
	return el, nil
}

// RecordAttendance records that a student sat or missed an exam.
func (r *Repository) RecordAttendance(ctx context.Context, a Attendance) (Attendance, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO exam_attendance (exam_id, student_id, present)
		VALUES ($1,$2,$3)
		RETURNING id, timestamp
	`, a.ExamID, a.StudentID, a.Present)
	if err := row.Scan(&a.ID, &a.Timestamp); err != nil {
		return Attendance{}, err
	}
	return a, nil
}
