package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thatboigung/SmartAcademicSystem/internal/activity"
	"github.com/thatboigung/SmartAcademicSystem/internal/announce"
	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
	"github.com/thatboigung/SmartAcademicSystem/internal/config"
	"github.com/thatboigung/SmartAcademicSystem/internal/course"
	"github.com/thatboigung/SmartAcademicSystem/internal/exam"
	"github.com/thatboigung/SmartAcademicSystem/internal/httpapi"
	"github.com/thatboigung/SmartAcademicSystem/internal/qr"
	"github.com/thatboigung/SmartAcademicSystem/internal/resource"
	"github.com/thatboigung/SmartAcademicSystem/internal/schedule"
	"github.com/thatboigung/SmartAcademicSystem/internal/store"
	"github.com/thatboigung/SmartAcademicSystem/internal/user"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Printf("warning: db not reachable: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var sessionStore auth.SessionStore
	if cfg.SessionBackend == "memory" {
		sessionStore = auth.NewMemorySessionStore()
	} else {
		sessionStore = auth.NewRedisSessionStore(redisClient.Client)
	}
	sessions := auth.NewManager(sessionStore, cfg.SessionTTL, cfg.SessionCookie, cfg.SecureCookies)

	var tokenStore qr.Store
	if cfg.QRBackend == "redis" {
		tokenStore = qr.NewRedisStore(redisClient.Client)
	} else {
		tokenStore = qr.NewMemoryStore()
	}

	userRepo := user.NewRepository(db.Client)
	users := user.NewService(userRepo)
	courses := course.NewRepository(db.Client)
	rates := course.NewService(courses)
	exams := exam.NewRepository(db.Client)
	eligibility := exam.NewService(exams, rates)
	qrTokens := qr.NewService(userRepo, tokenStore, cfg.QRTokenTTL)

	api := &httpapi.API{
		Cfg:           cfg,
		DB:            db,
		Redis:         redisClient,
		Sessions:      sessions,
		Users:         users,
		UserRepo:      userRepo,
		Courses:       courses,
		Rates:         rates,
		Exams:         exams,
		Eligibility:   eligibility,
		QR:            qrTokens,
		Activities:    activity.NewRepository(db.Client),
		Announcements: announce.NewRepository(db.Client),
		Schedule:      schedule.NewRepository(db.Client),
		Resources:     resource.NewRepository(db.Client),
	}

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
