package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/config"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/guard"
	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/response"

	academicYearHttp "lemuel.com/eduspaceadmin/internal/modules/academicyear/delivery/http"
	academicYearService "lemuel.com/eduspaceadmin/internal/modules/academicyear/service"

	activityLogHttp "lemuel.com/eduspaceadmin/internal/modules/activitylog/delivery/http"
	activityLogService "lemuel.com/eduspaceadmin/internal/modules/activitylog/service"

	attachmentHttp "lemuel.com/eduspaceadmin/internal/modules/attachment/delivery/http"
	attachmentService "lemuel.com/eduspaceadmin/internal/modules/attachment/service"

	authHttp "lemuel.com/eduspaceadmin/internal/modules/auth/delivery/http"
	authService "lemuel.com/eduspaceadmin/internal/modules/auth/service"

	bannerHttp "lemuel.com/eduspaceadmin/internal/modules/banner/delivery/http"
	bannerService "lemuel.com/eduspaceadmin/internal/modules/banner/service"

	classHttp "lemuel.com/eduspaceadmin/internal/modules/class/delivery/http"
	classService "lemuel.com/eduspaceadmin/internal/modules/class/service"

	sessionHttp "lemuel.com/eduspaceadmin/internal/modules/classsession/delivery/http"
	sessionService "lemuel.com/eduspaceadmin/internal/modules/classsession/service"

	enrollmentHttp "lemuel.com/eduspaceadmin/internal/modules/enrollment/delivery/http"
	enrollmentService "lemuel.com/eduspaceadmin/internal/modules/enrollment/service"

	notificationHttp "lemuel.com/eduspaceadmin/internal/modules/notification/delivery/http"
	notificationService "lemuel.com/eduspaceadmin/internal/modules/notification/service"

	promotionHttp "lemuel.com/eduspaceadmin/internal/modules/promotion/delivery/http"
	promotionService "lemuel.com/eduspaceadmin/internal/modules/promotion/service"

	regionHttp "lemuel.com/eduspaceadmin/internal/modules/region/delivery/http"
	regionService "lemuel.com/eduspaceadmin/internal/modules/region/service"

	studentHttp "lemuel.com/eduspaceadmin/internal/modules/student/delivery/http"
	studentService "lemuel.com/eduspaceadmin/internal/modules/student/service"

	subjectHttp "lemuel.com/eduspaceadmin/internal/modules/subject/delivery/http"
	subjectService "lemuel.com/eduspaceadmin/internal/modules/subject/service"

	submissionHttp "lemuel.com/eduspaceadmin/internal/modules/submission/delivery/http"
	submissionService "lemuel.com/eduspaceadmin/internal/modules/submission/service"

	teacherHttp "lemuel.com/eduspaceadmin/internal/modules/teacher/delivery/http"
	teacherService "lemuel.com/eduspaceadmin/internal/modules/teacher/service"

	teacherSubjectHttp "lemuel.com/eduspaceadmin/internal/modules/teachersubject/delivery/http"
	teacherSubjectService "lemuel.com/eduspaceadmin/internal/modules/teachersubject/service"
)

type Server struct {
	engine      *gin.Engine
	store       session.Store
	redisClient *redis.Client
}

type Option func(*options)

type options struct {
	store session.Store
	api   *client.Client
}

// WithSessionStore overrides the store picked from the Redis client.
func WithSessionStore(store session.Store) Option {
	return func(o *options) { o.store = store }
}

// WithAPIClient overrides the backend client built from the config.
func WithAPIClient(api *client.Client) Option {
	return func(o *options) { o.api = api }
}

// NewServer wires every module. Without Redis, sessions and submit locks live
// in process memory.
func NewServer(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client, opts ...Option) *Server {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	response.SetLogger(logger)

	api := o.api
	if api == nil {
		api = client.New(cfg.APIBaseURL, client.WithTimeout(cfg.HTTPTimeout))
	}

	store := o.store
	if store == nil {
		if redisClient != nil {
			store = session.NewRedisStore(redisClient, cfg.SessionTTL)
		} else {
			logger.Warn("REDIS_URL not set, keeping sessions in memory")
			store = session.NewMemoryStore()
		}
	}

	authSvc := authService.NewAuthService(api, store, cfg.SessionTTL, logger)
	authHandler := authHttp.NewAuthHandler(authSvc)

	yearSvc := academicYearService.NewAcademicYearService(api, store, logger)
	yearHandler := academicYearHttp.NewAcademicYearHandler(yearSvc)

	studentSvc := studentService.NewStudentService(api, store, logger)
	studentHandler := studentHttp.NewStudentHandler(studentSvc)

	teacherSvc := teacherService.NewTeacherService(api, logger)
	teacherHandler := teacherHttp.NewTeacherHandler(teacherSvc)

	classSvc := classService.NewClassService(api, logger)
	classHandler := classHttp.NewClassHandler(classSvc)

	subjectSvc := subjectService.NewSubjectService(api, logger)
	subjectHandler := subjectHttp.NewSubjectHandler(subjectSvc)

	sessionSvc := sessionService.NewSessionService(api, logger)
	sessionHandler := sessionHttp.NewSessionHandler(sessionSvc)

	attachmentSvc := attachmentService.NewAttachmentService(api, logger)
	attachmentHandler := attachmentHttp.NewAttachmentHandler(attachmentSvc)

	submissionSvc := submissionService.NewSubmissionService(api, logger)
	submissionHandler := submissionHttp.NewSubmissionHandler(submissionSvc)

	notificationSvc := notificationService.NewNotificationService(api, logger)
	notificationHandler := notificationHttp.NewNotificationHandler(notificationSvc)

	bannerSvc := bannerService.NewBannerService(api, logger)
	bannerHandler := bannerHttp.NewBannerHandler(bannerSvc)

	enrollmentSvc := enrollmentService.NewEnrollmentService(api)
	enrollmentHandler := enrollmentHttp.NewEnrollmentHandler(enrollmentSvc)

	teacherSubjectSvc := teacherSubjectService.NewTeacherSubjectService(api)
	teacherSubjectHandler := teacherSubjectHttp.NewTeacherSubjectHandler(teacherSubjectSvc)

	regionSvc := regionService.NewRegionService(api, logger)
	regionHandler := regionHttp.NewRegionHandler(regionSvc)

	logSvc := activityLogService.NewLogService(api)
	logHandler := activityLogHttp.NewLogHandler(logSvc)

	promotionSvc := promotionService.NewPromotionService(api, store, logger)
	promotionHandler := promotionHttp.NewPromotionHandler(promotionSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz"},
	}))
	setupCookies(router, cfg)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(store, logger)
	submit := middleware.NewSubmitMiddleware(guard.New(redisClient), cfg.SubmitLockTTL, logger)
	can := authMiddleware.RequireCapability

	apiGroup := router.Group("/api")

	// Public routes (no auth required)
	auth := apiGroup.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := apiGroup.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		// Academic-year context
		protected.GET("/context", yearHandler.GetContext)
		protected.PUT("/context/year", yearHandler.SelectYear)

		years := protected.Group("/academic-years", can(entity.CapManageAcademicYears))
		{
			years.GET("", yearHandler.List)
			years.POST("", submit.Once("create_academic_year"), yearHandler.Create)
			years.POST("/snapshot", submit.Once("snapshot_academic_year"), yearHandler.Snapshot)
			years.PUT("/:id", submit.Once("update_academic_year"), yearHandler.Update)
			years.DELETE("/:id", yearHandler.Delete)
			years.POST("/:id/set-current", submit.Once("set_current_year"), yearHandler.SetCurrent)
		}

		// Dependent form lists
		protected.GET("/regions", regionHandler.Regions)
		protected.GET("/regions/:id/classes", regionHandler.Classes)
		protected.GET("/teachers/available", regionHandler.AvailableTeachers)
		protected.GET("/users/available", regionHandler.AvailableUsers)
		protected.GET("/form-options", regionHandler.FormOptions)

		users := protected.Group("", can(entity.CapManageUsers))
		{
			users.GET("/students", studentHandler.List)
			users.GET("/students/:id", studentHandler.Get)
			users.POST("/students", submit.Once("create_student"), studentHandler.Create)
			users.PUT("/students/:id", submit.Once("update_student"), studentHandler.Update)
			users.DELETE("/students/:id", studentHandler.Delete)
			users.POST("/students/:id/profile-picture", submit.Once("student_picture"), studentHandler.UploadProfilePicture)
			users.DELETE("/student-detail", studentHandler.CloseDetail)

			users.GET("/teachers", teacherHandler.List)
			users.GET("/teachers/:id", teacherHandler.Get)
			users.POST("/teachers", submit.Once("create_teacher"), teacherHandler.Create)
			users.PUT("/teachers/:id", submit.Once("update_teacher"), teacherHandler.Update)
			users.DELETE("/teachers/:id", teacherHandler.Delete)
			users.POST("/teachers/:id/profile-picture", submit.Once("teacher_picture"), teacherHandler.UploadProfilePicture)
		}

		// Courses: readable by every role, managed by admins
		courses := protected.Group("", can(entity.CapViewCourses))
		{
			courses.GET("/classes", classHandler.List)
			courses.GET("/classes/:id", classHandler.Get)
			courses.GET("/subjects", subjectHandler.List)
			courses.GET("/subjects/:id", subjectHandler.Get)
			courses.GET("/sessions", sessionHandler.List)
			courses.GET("/sessions/:id/attachments", attachmentHandler.List)
		}

		academics := protected.Group("", can(entity.CapManageAcademics))
		{
			academics.POST("/classes", submit.Once("create_class"), classHandler.Create)
			academics.PUT("/classes/:id", submit.Once("update_class"), classHandler.Update)
			academics.DELETE("/classes/:id", classHandler.Delete)

			academics.POST("/subjects", submit.Once("create_subject"), subjectHandler.Create)
			academics.PUT("/subjects/:id", submit.Once("update_subject"), subjectHandler.Update)
			academics.DELETE("/subjects/:id", subjectHandler.Delete)

			academics.GET("/enrollments", enrollmentHandler.List)
			academics.POST("/enrollments", submit.Once("create_enrollment"), enrollmentHandler.Create)
			academics.DELETE("/enrollments/:id", enrollmentHandler.Delete)

			academics.GET("/teacher-subjects", teacherSubjectHandler.List)
			academics.POST("/teacher-subjects", submit.Once("assign_subject"), teacherSubjectHandler.Assign)
			academics.DELETE("/teacher-subjects/:id", teacherSubjectHandler.Unassign)
		}

		sessions := protected.Group("", can(entity.CapManageSessions))
		{
			sessions.GET("/subjects/:id/next-session-no", sessionHandler.NextSessionNo)
			sessions.POST("/sessions", submit.Once("create_session"), sessionHandler.Create)
			sessions.PUT("/sessions/:id", submit.Once("update_session"), sessionHandler.Update)
			sessions.DELETE("/sessions/:id", sessionHandler.Delete)
		}

		attachments := protected.Group("", can(entity.CapManageAttachments))
		{
			attachments.POST("/sessions/:id/attachments", submit.Once("upload_attachment"), attachmentHandler.Upload)
			attachments.DELETE("/attachments/:id", attachmentHandler.Delete)
		}

		protected.GET("/sessions/:id/submissions", can(entity.CapGradeSubmissions), submissionHandler.List)
		protected.PUT("/submissions/:id/grade", can(entity.CapGradeSubmissions), submit.Once("grade_submission"), submissionHandler.Grade)
		protected.POST("/sessions/:id/submissions", can(entity.CapSubmitAssignments), submit.Once("upload_submission"), submissionHandler.Upload)

		notifications := protected.Group("/notifications", can(entity.CapManageNotifications))
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("", submit.Once("create_notification"), notificationHandler.Create)
			notifications.POST("/upload-image", submit.Once("notification_image"), notificationHandler.UploadImage)
			notifications.PUT("/:id", submit.Once("update_notification"), notificationHandler.Update)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		banners := protected.Group("/banners", can(entity.CapManageBanners))
		{
			banners.GET("", bannerHandler.List)
			banners.POST("", submit.Once("create_banner"), bannerHandler.Create)
			banners.PUT("/:id", submit.Once("update_banner"), bannerHandler.Update)
			banners.DELETE("/:id", bannerHandler.Delete)
		}

		logs := protected.Group("/logs", can(entity.CapViewAuditLogs))
		{
			logs.GET("/login", logHandler.LoginLogs)
			logs.GET("/activity", logHandler.ActivityLogs)
		}

		promotion := protected.Group("/promotion", can(entity.CapRunPromotion))
		{
			promotion.GET("/wizard", promotionHandler.Wizard)
			promotion.POST("/wizard/start", promotionHandler.Start)
			promotion.POST("/wizard/preview", submit.Once("promotion_preview"), promotionHandler.Preview)
			promotion.POST("/wizard/back", promotionHandler.Back)
			promotion.POST("/wizard/exclusions/:student_id", promotionHandler.ToggleExclusion)
			promotion.POST("/wizard/confirm", submit.Once("promotion_confirm"), promotionHandler.Confirm)
			promotion.POST("/wizard/close", promotionHandler.Close)
			promotion.GET("/history", promotionHandler.History)
			promotion.GET("/history/:id", promotionHandler.HistoryDetail)
			promotion.DELETE("/history/:id", promotionHandler.CollapseDetail)
			promotion.POST("/history/:id/undo", submit.Once("promotion_undo"), promotionHandler.Undo)
		}
	}

	return &Server{
		engine:      router,
		store:       store,
		redisClient: redisClient,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.SessionHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// setupCookies installs the signed cookie that carries the session id.
func setupCookies(router *gin.Engine, cfg *config.Config) {
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(middleware.CookieName, store))
}
