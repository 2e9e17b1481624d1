package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studyhive/studyhive-api/config"
	"github.com/studyhive/studyhive-api/internal/cache"
	"github.com/studyhive/studyhive-api/internal/handlers"
	"github.com/studyhive/studyhive-api/internal/middleware"
	"github.com/studyhive/studyhive-api/internal/repository"
	"github.com/studyhive/studyhive-api/internal/services"
	"github.com/studyhive/studyhive-api/pkg/db"
	"github.com/studyhive/studyhive-api/pkg/httpclient"
	"github.com/studyhive/studyhive-api/pkg/jwt"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"github.com/studyhive/studyhive-api/pkg/metrics"
	"github.com/studyhive/studyhive-api/pkg/profiling"
	"github.com/studyhive/studyhive-api/pkg/storage"
	"github.com/studyhive/studyhive-api/pkg/stripe"
	"github.com/studyhive/studyhive-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerPublicRoutes registers routes that require no session cookie
func registerPublicRoutes(
	router *gin.Engine,
	generalRateLimiter, authRateLimiter, registrationRateLimiter, paymentRateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	sessionHandler *handlers.SessionHandler,
	reviewHandler *handlers.ReviewHandler,
	bookingHandler *handlers.BookingHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	router.POST("/jwt", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.IssueToken)
	router.POST("/logout", generalRateLimiter.Middleware(), authHandler.Logout)
	router.POST("/users", registrationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), userHandler.Register)
	router.GET("/users/:email", generalRateLimiter.Middleware(), userHandler.Exists)

	// Public catalog
	router.GET("/sessions", generalRateLimiter.Middleware(), sessionHandler.GetAll)
	router.GET("/approved", generalRateLimiter.Middleware(), sessionHandler.GetApproved)
	router.GET("/session/:id", generalRateLimiter.Middleware(), sessionHandler.GetByID)
	router.GET("/all-tutor", generalRateLimiter.Middleware(), userHandler.GetTutors)
	router.GET("/tutor/:id", generalRateLimiter.Middleware(), userHandler.GetTutor)
	router.GET("/tutor-sessions/:id", generalRateLimiter.Middleware(), userHandler.GetTutorSessions)
	router.GET("/reviews", generalRateLimiter.Middleware(), reviewHandler.List)
	router.GET("/api/session/:sessionId/bookings-count", generalRateLimiter.Middleware(), bookingHandler.CountBySession)

	// Intent creation needs no session; the intent is only honored by the
	// booking endpoint after the provider confirms the charge
	router.POST("/stripe/create-payment-intent", paymentRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), paymentHandler.CreateIntent)
}

// registerAuthenticatedRoutes registers routes open to any signed-in role
func registerAuthenticatedRoutes(
	router *gin.Engine,
	sessionAuth gin.HandlerFunc,
	generalRateLimiter *middleware.RateLimiter,
	userHandler *handlers.UserHandler,
	materialHandler *handlers.MaterialHandler,
	bookingHandler *handlers.BookingHandler,
) {
	authed := router.Group("", sessionAuth)
	authed.GET("/users/:email/role", generalRateLimiter.Middleware(), userHandler.GetRole)
	authed.GET("/materials", generalRateLimiter.Middleware(), materialHandler.List)
	authed.GET("/booked-sessions", generalRateLimiter.Middleware(), bookingHandler.List)
	authed.GET("/booked-sessions/check", generalRateLimiter.Middleware(), bookingHandler.Check)
	authed.GET("/booked-sessions/:id", generalRateLimiter.Middleware(), bookingHandler.GetByID)
}

// registerTutorRoutes registers session authoring, materials, and the tutor dashboard
func registerTutorRoutes(
	router *gin.Engine,
	sessionAuth gin.HandlerFunc,
	generalRateLimiter, uploadRateLimiter *middleware.RateLimiter,
	sessionHandler *handlers.SessionHandler,
	materialHandler *handlers.MaterialHandler,
	tutorDashboardHandler *handlers.TutorDashboardHandler,
) {
	tutor := router.Group("", sessionAuth, middleware.RequireTutor())
	tutor.POST("/session", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), sessionHandler.Create)
	tutor.GET("/current-user", generalRateLimiter.Middleware(), sessionHandler.GetMine)
	tutor.GET("/tutor-approved-sessions", generalRateLimiter.Middleware(), sessionHandler.GetMineApproved)
	tutor.GET("/tutor-rejected-sessions", generalRateLimiter.Middleware(), sessionHandler.GetMineRejected)
	tutor.PATCH("/sessions/request-again/:id", generalRateLimiter.Middleware(), sessionHandler.RequestAgain)

	tutor.POST("/materials", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), materialHandler.Create)
	tutor.PATCH("/materials/:id", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), materialHandler.Update)
	tutor.DELETE("/materials/:id", generalRateLimiter.Middleware(), materialHandler.Delete)
	tutor.POST("/materials/:id/image", uploadRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(15*1024*1024), materialHandler.UploadImage)

	tutor.GET("/api/tutor/stats", generalRateLimiter.Middleware(), tutorDashboardHandler.Stats)
	tutor.GET("/api/tutor/upcoming-sessions", generalRateLimiter.Middleware(), tutorDashboardHandler.UpcomingSessions)
	tutor.GET("/api/tutor/recent-students", generalRateLimiter.Middleware(), tutorDashboardHandler.RecentStudents)
}

// registerStudentRoutes registers booking, reviews, notes, and the student dashboard
func registerStudentRoutes(
	router *gin.Engine,
	sessionAuth gin.HandlerFunc,
	generalRateLimiter, paymentRateLimiter *middleware.RateLimiter,
	bookingHandler *handlers.BookingHandler,
	reviewHandler *handlers.ReviewHandler,
	noteHandler *handlers.NoteHandler,
	studentDashboardHandler *handlers.StudentDashboardHandler,
) {
	student := router.Group("", sessionAuth, middleware.RequireStudent())
	student.POST("/booked-sessions", paymentRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), bookingHandler.Create)

	student.POST("/reviews", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), reviewHandler.Create)
	student.PATCH("/reviews/:id", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), reviewHandler.Update)
	student.DELETE("/reviews/:id", generalRateLimiter.Middleware(), reviewHandler.Delete)

	student.POST("/create-notes", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), noteHandler.Create)
	student.GET("/notes", generalRateLimiter.Middleware(), noteHandler.List)
	student.PATCH("/notes/:id", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), noteHandler.Update)
	student.DELETE("/notes/:id", generalRateLimiter.Middleware(), noteHandler.Delete)

	student.GET("/student/dashboard-stats", generalRateLimiter.Middleware(), studentDashboardHandler.Stats)
	student.GET("/student/ongoing-sessions", generalRateLimiter.Middleware(), studentDashboardHandler.OngoingSessions)
	student.GET("/student/upcoming-sessions", generalRateLimiter.Middleware(), studentDashboardHandler.UpcomingSessions)
	student.GET("/student/recent-performance", generalRateLimiter.Middleware(), studentDashboardHandler.RecentPerformance)
	student.GET("/student/recent-notes", generalRateLimiter.Middleware(), studentDashboardHandler.RecentNotes)
	student.GET("/student/study-materials", generalRateLimiter.Middleware(), studentDashboardHandler.StudyMaterials)
}

// registerAdminRoutes registers moderation, user management, and reporting
func registerAdminRoutes(
	router *gin.Engine,
	sessionAuth gin.HandlerFunc,
	generalRateLimiter *middleware.RateLimiter,
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
) {
	admin := router.Group("", sessionAuth, middleware.RequireAdmin())
	admin.GET("/all-users", generalRateLimiter.Middleware(), userHandler.GetAll)
	admin.GET("/search-users", generalRateLimiter.Middleware(), userHandler.Search)
	admin.PATCH("/update-user-role/:id", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), userHandler.UpdateRole)

	admin.GET("/admin/sessions", generalRateLimiter.Middleware(), adminHandler.GetSessions)
	admin.PATCH("/admin/sessions/:id/approve", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), adminHandler.ApproveSession)
	admin.PATCH("/admin/sessions/:id/reject", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), adminHandler.RejectSession)
	admin.PATCH("/admin/sessions/:id/update", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), adminHandler.UpdateSession)
	admin.DELETE("/admin/sessions/:id", generalRateLimiter.Middleware(), adminHandler.DeleteSession)

	admin.GET("/admin/materials", generalRateLimiter.Middleware(), adminHandler.GetMaterials)
	admin.DELETE("/admin/materials/:id", generalRateLimiter.Middleware(), adminHandler.DeleteMaterial)

	admin.GET("/admin/stats", generalRateLimiter.Middleware(), adminHandler.GetStats)
	admin.GET("/admin/recent-activities", generalRateLimiter.Middleware(), adminHandler.GetRecentActivities)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting StudyHive API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (no-op unless enabled)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Initialize metrics with service name from config
	metrics.Init(cfg.Observability.ServiceName)

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command
	// before starting the app: ./migrate or docker-compose run migrate

	// Initialize S3-compatible object storage (optional)
	var imageStore services.ImageStore
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		storageClient, storageErr := storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if storageErr != nil {
			logger.Fatal("Failed to initialize object storage client", zap.Error(storageErr))
		}
		imageStore = storageClient
	} else {
		logger.Warn("Object storage not configured, material image uploads are disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	// Approved-sessions cache backs the public homepage listing.
	// Initialized synchronously so the container is not marked healthy
	// before the listing can be served.
	var listingCache *cache.SessionCache
	cacheReadyFunc := func() bool { return true }
	if cfg.Cache.DisableSessionsCache {
		logger.Warn("Sessions cache is DISABLED, reading approved sessions from database on every request")
	} else {
		listingCache = cache.NewSessionCache(sessionRepo, cfg.Cache.ApprovedSessionsTTLSeconds)
		if err := listingCache.Initialize(); err != nil {
			logger.Fatal("Failed to initialize sessions cache", zap.Error(err))
		}
		cacheReadyFunc = listingCache.IsReady
	}

	// External clients
	httpClient := httpclient.NewStandardClient()
	stripeClient := stripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.BaseURL, cfg.Stripe.Currency, httpClient)
	tokenManager := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTLHours)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenManager)
	userService := services.NewUserService(userRepo, sessionRepo)
	var sessionService *services.SessionService
	if listingCache != nil {
		sessionService = services.NewSessionService(sessionRepo, listingCache)
	} else {
		sessionService = services.NewSessionService(sessionRepo, nil)
	}
	materialService := services.NewMaterialService(materialRepo, sessionRepo, imageStore)
	bookingService := services.NewBookingService(bookingRepo, sessionRepo, stripeClient)
	paymentService := services.NewPaymentService(stripeClient)
	reviewService := services.NewReviewService(reviewRepo, sessionRepo)
	noteService := services.NewNoteService(noteRepo)
	adminStatsService := services.NewAdminStatsService(statsRepo, paymentRepo)
	studentDashboardService := services.NewStudentDashboardService(bookingRepo, noteRepo, reviewRepo, sessionRepo, materialRepo)
	tutorStatsService := services.NewTutorStatsService(statsRepo, sessionRepo, bookingRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Auth)
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	materialHandler := handlers.NewMaterialHandler(materialService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	noteHandler := handlers.NewNoteHandler(noteService)
	adminHandler := handlers.NewAdminHandler(sessionService, materialService, adminStatsService)
	studentDashboardHandler := handlers.NewStudentDashboardHandler(studentDashboardService)
	tutorDashboardHandler := handlers.NewTutorDashboardHandler(tutorStatsService)
	healthHandler := handlers.NewHealthHandler(pool.Ping, cacheReadyFunc)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only configured origins; credentials required for the session cookie
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200)     // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(5, 10)           // 5 req/sec, burst of 10 (login abuse)
	registrationRateLimiter := middleware.NewRateLimiter(0.5, 5)  // 1 req/2sec, burst of 5 (signup spam)
	paymentRateLimiter := middleware.NewRateLimiter(5, 10)        // 5 req/sec, burst of 10
	uploadRateLimiter := middleware.NewRateLimiter(1, 5)          // 1 req/sec, burst of 5 (image uploads)

	// Session cookie auth shared by every protected group
	sessionAuth := middleware.AuthMiddleware(tokenManager, userRepo, cfg.Auth.CookieDomain, cfg.Auth.CookieSecure)

	// Operational endpoints
	router.GET("/api/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	router.GET("/api/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	registerPublicRoutes(router, generalRateLimiter, authRateLimiter, registrationRateLimiter, paymentRateLimiter,
		authHandler, userHandler, sessionHandler, reviewHandler, bookingHandler, paymentHandler)
	registerAuthenticatedRoutes(router, sessionAuth, generalRateLimiter,
		userHandler, materialHandler, bookingHandler)
	registerTutorRoutes(router, sessionAuth, generalRateLimiter, uploadRateLimiter,
		sessionHandler, materialHandler, tutorDashboardHandler)
	registerStudentRoutes(router, sessionAuth, generalRateLimiter, paymentRateLimiter,
		bookingHandler, reviewHandler, noteHandler, studentDashboardHandler)
	registerAdminRoutes(router, sessionAuth, generalRateLimiter, userHandler, adminHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
