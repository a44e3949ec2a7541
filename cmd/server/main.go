package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/auth"
	"github.com/codecampus/backend/internal/config"
	"github.com/codecampus/backend/internal/handlers"
	"github.com/codecampus/backend/internal/logger"
	"github.com/codecampus/backend/internal/middleware"
	"github.com/codecampus/backend/internal/models"
	"github.com/codecampus/backend/internal/repositories"
	"github.com/codecampus/backend/internal/repositories/memory"
	"github.com/codecampus/backend/internal/services"
	"github.com/codecampus/backend/internal/storage"
)

// @title CodeCampus API
// @version 1.0
// @description Course platform backend: catalog, enrollments, progress, badges and achievements

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting CodeCampus backend")

	// Repositories: MySQL when DB_HOST is set, in-memory store otherwise
	var (
		userRepo         services.UserRepository
		categoryRepo     services.CategoryRepository
		instructorRepo   services.InstructorRepository
		courseRepo       services.CourseRepository
		moduleRepo       services.ModuleRepository
		lessonRepo       services.LessonRepository
		enrollmentRepo   services.EnrollmentRepository
		progressRepo     services.ProgressRepository
		reviewRepo       services.ReviewRepository
		pathRepo         services.LearningPathRepository
		badgeRepo        services.BadgeRepository
		achievementRepo  services.AchievementRepository
		subscriptionRepo services.SubscriptionRepository
		contactRepo      services.ContactMessageRepository
	)

	if cfg.UseMemoryStore() {
		logger.Logger.Warn("DB_HOST is empty, using non-persistent in-memory store")
		store := memory.NewStore()
		userRepo = memory.NewUserRepository(store)
		categoryRepo = memory.NewCategoryRepository(store)
		instructorRepo = memory.NewInstructorRepository(store)
		courseRepo = memory.NewCourseRepository(store)
		moduleRepo = memory.NewModuleRepository(store)
		lessonRepo = memory.NewLessonRepository(store)
		enrollmentRepo = memory.NewEnrollmentRepository(store)
		progressRepo = memory.NewProgressRepository(store)
		reviewRepo = memory.NewReviewRepository(store)
		pathRepo = memory.NewLearningPathRepository(store)
		badgeRepo = memory.NewBadgeRepository(store)
		achievementRepo = memory.NewAchievementRepository(store)
		subscriptionRepo = memory.NewSubscriptionRepository(store)
		contactRepo = memory.NewContactMessageRepository(store)
	} else {
		db, err := connectDB(cfg.DSN())
		if err != nil {
			logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := runMigrations(db); err != nil {
			logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		userRepo = repositories.NewUserRepository(db)
		categoryRepo = repositories.NewCategoryRepository(db)
		instructorRepo = repositories.NewInstructorRepository(db)
		courseRepo = repositories.NewCourseRepository(db)
		moduleRepo = repositories.NewModuleRepository(db)
		lessonRepo = repositories.NewLessonRepository(db)
		enrollmentRepo = repositories.NewEnrollmentRepository(db)
		progressRepo = repositories.NewProgressRepository(db)
		reviewRepo = repositories.NewReviewRepository(db)
		pathRepo = repositories.NewLearningPathRepository(db)
		badgeRepo = repositories.NewBadgeRepository(db)
		achievementRepo = repositories.NewAchievementRepository(db)
		subscriptionRepo = repositories.NewSubscriptionRepository(db)
		contactRepo = repositories.NewContactMessageRepository(db)
	}

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize file storage
	fileStorage := storage.NewLocalStorage(cfg.Upload.BasePath, cfg.Upload.BaseURL)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator)
	categoryService := services.NewCategoryService(categoryRepo)
	achievementService := services.NewAchievementService(achievementRepo, badgeRepo)
	courseService := services.NewCourseService(courseRepo, categoryRepo, instructorRepo,
		moduleRepo, lessonRepo, enrollmentRepo, progressRepo, reviewRepo)
	lessonService := services.NewLessonService(lessonRepo, moduleRepo, enrollmentRepo,
		progressRepo, achievementService, logger.Logger)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, courseRepo, logger.Logger)
	learningPathService := services.NewLearningPathService(pathRepo, categoryRepo,
		lessonRepo, progressRepo, enrollmentRepo)
	adminCourseService := services.NewAdminCourseService(courseRepo, categoryRepo,
		instructorRepo, moduleRepo, lessonRepo, fileStorage, logger.Logger)
	outreachService := services.NewOutreachService(subscriptionRepo, contactRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger.Logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger.Logger)
	lessonHandler := handlers.NewLessonHandler(lessonService, logger.Logger)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, logger.Logger)
	learningPathHandler := handlers.NewLearningPathHandler(learningPathService, logger.Logger)
	userAchievementHandler := handlers.NewUserAchievementHandler(achievementService, logger.Logger)
	adminCourseHandler := handlers.NewAdminCourseHandler(adminCourseService, logger.Logger)
	outreachHandler := handlers.NewOutreachHandler(outreachService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := auth.Middleware(tokenGenerator)
	optionalAuthMiddleware := auth.OptionalMiddleware(tokenGenerator)
	adminMiddleware := auth.RoleMiddleware(tokenGenerator, models.RoleAdmin)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger.Logger))
	r.Use(middleware.Recovery(logger.Logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimit(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Uploaded course images
	r.Handle(cfg.Upload.BaseURL+"/*", http.StripPrefix(cfg.Upload.BaseURL+"/",
		http.FileServer(http.Dir(cfg.Upload.BasePath))))

	// Scope router to /api
	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authMiddleware)
		categoryHandler.RegisterRoutes(r)
		courseHandler.RegisterRoutes(r, authMiddleware, optionalAuthMiddleware)
		lessonHandler.RegisterRoutes(r, authMiddleware)
		enrollmentHandler.RegisterRoutes(r, authMiddleware)
		learningPathHandler.RegisterRoutes(r, optionalAuthMiddleware)
		userAchievementHandler.RegisterRoutes(r, authMiddleware)
		adminCourseHandler.RegisterRoutes(r, adminMiddleware)
		outreachHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
