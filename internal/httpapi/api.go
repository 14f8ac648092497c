package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thatboigung/SmartAcademicSystem/internal/activity"
	"github.com/thatboigung/SmartAcademicSystem/internal/announce"
	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
	"github.com/thatboigung/SmartAcademicSystem/internal/config"
	"github.com/thatboigung/SmartAcademicSystem/internal/course"
	"github.com/thatboigung/SmartAcademicSystem/internal/exam"
	"github.com/thatboigung/SmartAcademicSystem/internal/httpmiddleware"
	"github.com/thatboigung/SmartAcademicSystem/internal/qr"
	"github.com/thatboigung/SmartAcademicSystem/internal/resource"
	"github.com/thatboigung/SmartAcademicSystem/internal/schedule"
	"github.com/thatboigung/SmartAcademicSystem/internal/store"
	"github.com/thatboigung/SmartAcademicSystem/internal/user"
)

// API bundles every dependency the HTTP layer needs.
type API struct {
	Cfg           config.App
	DB            *store.DB
	Redis         *store.Redis
	Sessions      *auth.Manager
	Users         *user.Service
	UserRepo      *user.Repository
	Courses       *course.Repository
	Rates         *course.Service
	Exams         *exam.Repository
	Eligibility   *exam.Service
	QR            *qr.Service
	Activities    *activity.Repository
	Announcements *announce.Repository
	Schedule      *schedule.Repository
	Resources     *resource.Repository
}

// Router builds the gin engine with all middleware and routes.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.Cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.Metrics())
	r.Use(httpmiddleware.NewSimpleTokenBucket(a.Cfg.RateLimitPerMin, a.Cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		dbHealthy := a.DB.Healthy(c.Request.Context())
		redisHealthy := a.Redis.Healthy(c.Request.Context())
		status := http.StatusOK
		if !dbHealthy || !redisHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
	})

	authn := auth.RequireAuth(a.Sessions)
	staff := auth.RequireRole(a.UserRepo, user.RoleAdmin, user.RoleLecturer)
	adminOnly := auth.RequireRole(a.UserRepo, user.RoleAdmin)

	ah := authHandler{sessions: a.Sessions, users: a.Users, activities: a.Activities}
	uh := userHandler{svc: a.Users}
	ch := courseHandler{repo: a.Courses, activities: a.Activities}
	eh := examHandler{repo: a.Exams, checker: a.Eligibility, activities: a.Activities}
	qh := qrHandler{svc: a.QR, users: a.Users}
	nh := announceHandler{repo: a.Announcements}
	sh := scheduleHandler{repo: a.Schedule}
	rh := resourceHandler{repo: a.Resources}
	acth := activityHandler{repo: a.Activities}

	api := r.Group("/api")

	api.POST("/auth/login", ah.login)
	api.POST("/auth/logout", authn, ah.logout)
	api.GET("/auth/user", authn, ah.currentUser)

	api.GET("/users", authn, adminOnly, uh.list)
	api.POST("/users", authn, adminOnly, uh.create)
	api.PUT("/users/:id", authn, adminOnly, uh.update)
	api.GET("/users/student/:studentId", authn, staff, uh.getByStudentID)

	api.GET("/courses", authn, ch.listCourses)
	api.GET("/courses/:id", authn, ch.getCourse)
	api.POST("/courses", authn, staff, ch.createCourse)
	api.PUT("/courses/:id", authn, staff, ch.updateCourse)

	api.GET("/sessions", authn, ch.listSessions)
	api.GET("/sessions/:id", authn, ch.getSession)
	api.POST("/sessions", authn, staff, ch.createSession)

	api.GET("/attendance", authn, ch.listAttendance)
	api.POST("/attendance", authn, staff, ch.createAttendance)

	api.GET("/enrollments", authn, ch.listEnrollments)
	api.POST("/enrollments", authn, adminOnly, ch.createEnrollment)
	api.DELETE("/enrollments/:id", authn, adminOnly, ch.deleteEnrollment)

	api.GET("/exams", authn, eh.list)
	api.POST("/exams", authn, staff, eh.create)
	api.POST("/exams/attendance", authn, staff, eh.recordAttendance)

	api.GET("/eligibility", authn, eh.listEligibility)
	api.POST("/eligibility", authn, staff, eh.createEligibility)
	api.POST("/eligibility/check", authn, eh.checkEligibility)

	api.GET("/qrcode", authn, qh.generate)
	api.POST("/qrcode/verify", authn, staff, qh.verify)

	api.GET("/announcements", authn, nh.list)
	api.POST("/announcements", authn, staff, nh.create)
	api.POST("/announcements/recipients/:id/read", authn, nh.markRead)

	api.GET("/events", authn, sh.listEvents)
	api.POST("/events", authn, adminOnly, sh.createEvent)

	api.GET("/timetable", authn, sh.listTimetable)
	api.POST("/timetable", authn, adminOnly, sh.createTimetableEntry)

	api.GET("/resources", authn, rh.list)
	api.POST("/resources", authn, staff, rh.create)

	api.GET("/activities", authn, acth.list)

	return r
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
