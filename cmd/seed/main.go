package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/thatboigung/SmartAcademicSystem/internal/config"
	"github.com/thatboigung/SmartAcademicSystem/internal/course"
	"github.com/thatboigung/SmartAcademicSystem/internal/exam"
	"github.com/thatboigung/SmartAcademicSystem/internal/store"
	"github.com/thatboigung/SmartAcademicSystem/internal/user"
)

// Seed applies the schema and loads a small demo data set: one admin, one
// lecturer, one student, a course with sessions, attendance and an exam.
func main() {
	schemaPath := flag.String("schema", "migrations/schema.sql", "path to schema file")
	demo := flag.Bool("demo", true, "insert demo users and course data")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("read schema failed: %v", err)
	}
	if _, err := db.Client.ExecContext(ctx, string(schema)); err != nil {
		log.Fatalf("apply schema failed: %v", err)
	}
	log.Println("schema applied")

	if !*demo {
		return
	}

	users := user.NewService(user.NewRepository(db.Client))
	courses := course.NewRepository(db.Client)
	exams := exam.NewRepository(db.Client)

	admin := seedUser(ctx, users, user.User{
		Username: "admin", Password: "password", FirstName: "Admin", LastName: "User",
		Email: "admin@sams.edu", Role: user.RoleAdmin,
	})
	lecturer := seedUser(ctx, users, user.User{
		Username: "lecturer", Password: "password", FirstName: "John", LastName: "Doe",
		Email: "john.doe@sams.edu", Role: user.RoleLecturer,
	})
	studentNo := "ST12345"
	student := seedUser(ctx, users, user.User{
		Username: "student", Password: "password", FirstName: "Jane", LastName: "Smith",
		Email: "jane.smith@sams.edu", Role: user.RoleStudent, StudentID: &studentNo,
	})
	if admin.ID == 0 || lecturer.ID == 0 || student.ID == 0 {
		log.Println("demo users already present, skipping course data")
		return
	}

	cs101, err := courses.CreateCourse(ctx, course.Course{
		Code: "CS101", Name: "Introduction to Computer Science", LecturerID: &lecturer.ID,
	})
	if err != nil {
		log.Fatalf("seed course failed: %v", err)
	}
	if _, err := courses.CreateEnrollment(ctx, course.Enrollment{StudentID: student.ID, CourseID: cs101.ID}); err != nil {
		log.Fatalf("seed enrollment failed: %v", err)
	}

	// Four weekly sessions, present in the first three: a 75% attendance rate.
	for week := 0; week < 4; week++ {
		session, err := courses.CreateSession(ctx, course.ClassSession{
			CourseID: cs101.ID,
			Title:    "Lecture",
			Date:     time.Now().AddDate(0, 0, -7*(4-week)),
			Duration: 90,
		})
		if err != nil {
			log.Fatalf("seed session failed: %v", err)
		}
		if _, err := courses.CreateAttendance(ctx, course.Attendance{
			SessionID:  session.ID,
			StudentID:  student.ID,
			Present:    week < 3,
			MarkedByID: &lecturer.ID,
		}); err != nil {
			log.Fatalf("seed attendance failed: %v", err)
		}
	}

	minAttendance := 70
	if _, err := exams.CreateExam(ctx, exam.Exam{
		CourseID:          cs101.ID,
		Title:             "Final Exam",
		Date:              time.Now().AddDate(0, 1, 0),
		Duration:          120,
		MinimumAttendance: &minAttendance,
	}); err != nil {
		log.Fatalf("seed exam failed: %v", err)
	}

	log.Println("demo data loaded")
}

func seedUser(ctx context.Context, users *user.Service, u user.User) user.User {
	created, err := users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return user.User{}
		}
		log.Fatalf("seed user %s failed: %v", u.Username, err)
	}
	return created
}
