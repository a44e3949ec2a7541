package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/codecampus/backend/internal/config"
	"github.com/codecampus/backend/internal/logger"
	"github.com/codecampus/backend/internal/models"
	"github.com/codecampus/backend/internal/repositories"
)

// Seeds the database with demo catalog data, demo accounts and the
// badge/achievement definitions. Safe to run repeatedly: every insert is
// guarded by an existence check.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	if cfg.UseMemoryStore() {
		logger.Logger.Fatal("Seeding requires a database, set DB_HOST")
	}

	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	s := &seeder{
		userRepo:        repositories.NewUserRepository(db),
		categoryRepo:    repositories.NewCategoryRepository(db),
		instructorRepo:  repositories.NewInstructorRepository(db),
		courseRepo:      repositories.NewCourseRepository(db),
		moduleRepo:      repositories.NewModuleRepository(db),
		lessonRepo:      repositories.NewLessonRepository(db),
		pathRepo:        repositories.NewLearningPathRepository(db),
		badgeRepo:       repositories.NewBadgeRepository(db),
		achievementRepo: repositories.NewAchievementRepository(db),
	}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"categories", s.seedCategories},
		{"instructors", s.seedInstructors},
		{"courses", s.seedCourses},
		{"course content", s.seedCourseContent},
		{"learning paths", s.seedLearningPaths},
		{"users", s.seedUsers},
		{"badges", s.seedBadges},
		{"achievements", s.seedAchievements},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			logger.Logger.Fatal("Seeding failed", zap.String("step", step.name), zap.Error(err))
		}
		logger.Logger.Info("Seeded", zap.String("step", step.name))
	}

	logger.Logger.Info("Database seeding complete")
}

type userRepo interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type categoryRepo interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	AddCourseCategory(ctx context.Context, courseID, categoryID int) error
}

type instructorRepo interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, instructor *models.Instructor) error
}

type courseRepo interface {
	GetAll(ctx context.Context, filter models.CourseFilter, restrictIDs []int) ([]models.Course, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
}

type moduleRepo interface {
	ExistsByCourseID(ctx context.Context, courseID int) (bool, error)
	Create(ctx context.Context, module *models.Module) error
}

type lessonRepo interface {
	Create(ctx context.Context, lesson *models.Lesson) error
}

type learningPathRepo interface {
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, path *models.LearningPath) error
	AddCourse(ctx context.Context, pathID, courseID, orderIndex int) error
}

type badgeRepo interface {
	GetByName(ctx context.Context, name string) (*models.Badge, error)
	Create(ctx context.Context, badge *models.Badge) error
}

type achievementRepo interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, achievement *models.Achievement) error
}

type seeder struct {
	userRepo        userRepo
	categoryRepo    categoryRepo
	instructorRepo  instructorRepo
	courseRepo      courseRepo
	moduleRepo      moduleRepo
	lessonRepo      lessonRepo
	pathRepo        learningPathRepo
	badgeRepo       badgeRepo
	achievementRepo achievementRepo
}

func (s *seeder) seedCategories(ctx context.Context) error {
	categories := []models.Category{
		{Name: "Go", Description: "Backend development with Go", IconName: "go"},
		{Name: "Web Development", Description: "Building applications for the web", IconName: "globe"},
		{Name: "Databases", Description: "Data modeling, SQL and storage engines", IconName: "database"},
		{Name: "Algorithms", Description: "Data structures and problem solving", IconName: "cpu"},
		{Name: "DevOps", Description: "Containers, CI/CD and infrastructure", IconName: "server"},
		{Name: "Frontend", Description: "User interfaces in the browser", IconName: "layout"},
	}
	for i := range categories {
		exists, err := s.categoryRepo.ExistsByName(ctx, categories[i].Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.categoryRepo.Create(ctx, &categories[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) seedInstructors(ctx context.Context) error {
	instructors := []models.Instructor{
		{
			Name:         "Elena Markova",
			Title:        "Principal Backend Engineer",
			Bio:          "Ten years of building high-load services in Go. Teaches the way production code is actually written.",
			CourseCount:  3,
			StudentCount: 12400,
			ReviewScore:  5,
		},
		{
			Name:         "James Okafor",
			Title:        "Staff Engineer, Platform",
			Bio:          "Works on container platforms and developer tooling. Previously a database internals engineer.",
			CourseCount:  2,
			StudentCount: 8300,
			ReviewScore:  5,
		},
		{
			Name:         "Sofia Lindqvist",
			Title:        "Senior Frontend Engineer",
			Bio:          "Builds design systems and accessible interfaces for large products.",
			CourseCount:  2,
			StudentCount: 6100,
			ReviewScore:  4,
		},
	}
	for i := range instructors {
		exists, err := s.instructorRepo.ExistsByName(ctx, instructors[i].Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.instructorRepo.Create(ctx, &instructors[i]); err != nil {
			return err
		}
	}
	return nil
}

// categoryKeywords maps a category name to title keywords used to attach
// seeded courses to categories.
var categoryKeywords = map[string][]string{
	"Go":              {"go", "golang", "concurrency"},
	"Web Development": {"web", "http", "rest", "api"},
	"Databases":       {"sql", "database", "postgres", "mysql"},
	"Algorithms":      {"algorithms", "data structures", "interview"},
	"DevOps":          {"docker", "kubernetes", "ci/cd", "deploy"},
	"Frontend":        {"react", "css", "javascript", "typescript"},
}

func relevantCategories(title string, categories []models.Category) []int {
	lower := strings.ToLower(title)
	var ids []int
	for _, c := range categories {
		for _, kw := range categoryKeywords[c.Name] {
			if strings.Contains(lower, kw) {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	return ids
}

func (s *seeder) seedCourses(ctx context.Context) error {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	courses := []models.Course{
		{
			Title:        "Go for Backend Engineers",
			Description:  "From the basics of the language to writing production HTTP services with real error handling, logging and tests.",
			Level:        models.CourseLevelBeginner,
			Duration:     "24 hours",
			Price:        49,
			InstructorID: 1,
		},
		{
			Title:        "Advanced Go Concurrency",
			Description:  "Goroutines, channels, the memory model and the patterns that keep concurrent code correct under load.",
			Level:        models.CourseLevelAdvanced,
			Duration:     "16 hours",
			Price:        69,
			InstructorID: 1,
		},
		{
			Title:        "Designing REST APIs",
			Description:  "Resource modeling, versioning, pagination and error contracts for HTTP APIs that survive their consumers.",
			Level:        models.CourseLevelIntermediate,
			Duration:     "12 hours",
			Price:        39,
			InstructorID: 1,
		},
		{
			Title:        "SQL and Database Design",
			Description:  "Schema design, indexing and query tuning on MySQL and PostgreSQL, with exercises on a realistic dataset.",
			Level:        models.CourseLevelIntermediate,
			Duration:     "18 hours",
			Price:        49,
			InstructorID: 2,
		},
		{
			Title:        "Docker and Kubernetes in Practice",
			Description:  "Containerize, deploy and operate services. Covers images, networking, manifests and rollout strategies.",
			Level:        models.CourseLevelIntermediate,
			Duration:     "20 hours",
			Price:        59,
			InstructorID: 2,
		},
		{
			Title:        "Algorithms and Data Structures Interview Prep",
			Description:  "The classic problem families with worked solutions and complexity analysis.",
			Level:        models.CourseLevelIntermediate,
			Duration:     "30 hours",
			Price:        0,
			InstructorID: 2,
		},
		{
			Title:        "Modern React and TypeScript",
			Description:  "Components, hooks, state management and typing strategies for maintainable frontend codebases.",
			Level:        models.CourseLevelBeginner,
			Duration:     "22 hours",
			Price:        49,
			InstructorID: 3,
		},
		{
			Title:        "CSS Architecture at Scale",
			Description:  "Layout systems, design tokens and the conventions that keep styles maintainable in large products.",
			Level:        models.CourseLevelBeginner,
			Duration:     "10 hours",
			Price:        29,
			InstructorID: 3,
		},
	}

	for i := range courses {
		exists, err := s.courseRepo.ExistsByTitle(ctx, courses[i].Title)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.courseRepo.Create(ctx, &courses[i]); err != nil {
			return err
		}
		for _, categoryID := range relevantCategories(courses[i].Title, categories) {
			if err := s.categoryRepo.AddCourseCategory(ctx, courses[i].ID, categoryID); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedCourseContent fills the first seeded course with modules and lessons so
// the lesson player has something to render out of the box.
func (s *seeder) seedCourseContent(ctx context.Context) error {
	courses, err := s.courseRepo.GetAll(ctx, models.CourseFilter{}, nil)
	if err != nil {
		return err
	}
	var course *models.Course
	for i := range courses {
		if courses[i].Title == "Go for Backend Engineers" {
			course = &courses[i]
			break
		}
	}
	if course == nil {
		return fmt.Errorf("seed course not found")
	}

	exists, err := s.moduleRepo.ExistsByCourseID(ctx, course.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	type lessonSeed struct {
		title     string
		ltype     models.LessonType
		content   string
		videoURL  string
		duration  string
		isPreview bool
	}
	modules := []struct {
		title       string
		description string
		lessons     []lessonSeed
	}{
		{
			title:       "Getting Started",
			description: "Toolchain, workspace layout and a first program.",
			lessons: []lessonSeed{
				{title: "Why Go", ltype: models.LessonTypeVideo, videoURL: "/media/go-backend/why-go.mp4", duration: "00:08:30", isPreview: true},
				{title: "Installing the Toolchain", ltype: models.LessonTypeText, content: "Install Go from go.dev/dl, set up your editor and verify with `go version`."},
				{title: "Your First Program", ltype: models.LessonTypeExercise, content: "Write a program that reads a name from stdin and greets it."},
			},
		},
		{
			title:       "The Language",
			description: "Types, functions, methods and interfaces.",
			lessons: []lessonSeed{
				{title: "Structs and Methods", ltype: models.LessonTypeVideo, videoURL: "/media/go-backend/structs.mp4", duration: "00:14:10"},
				{title: "Interfaces in Practice", ltype: models.LessonTypeVideo, videoURL: "/media/go-backend/interfaces.mp4", duration: "00:17:45"},
				{title: "Error Handling", ltype: models.LessonTypeText, content: "Errors are values. Wrap with %w, inspect with errors.Is and errors.As."},
				{title: "Language Checkpoint", ltype: models.LessonTypeQuiz, content: "{\"questions\":10}"},
			},
		},
		{
			title:       "Building an HTTP Service",
			description: "Routing, JSON, middleware and graceful shutdown.",
			lessons: []lessonSeed{
				{title: "Handlers and Routing", ltype: models.LessonTypeVideo, videoURL: "/media/go-backend/routing.mp4", duration: "00:21:00"},
				{title: "Project Layout Reference", ltype: models.LessonTypeResource, content: "https://go.dev/doc/modules/layout"},
				{title: "Build the Service", ltype: models.LessonTypeExercise, content: "Implement a small CRUD service for a todo list with tests."},
			},
		},
	}

	for mi, m := range modules {
		module := &models.Module{
			CourseID:    course.ID,
			Title:       m.title,
			Description: m.description,
			OrderIndex:  mi + 1,
		}
		if err := s.moduleRepo.Create(ctx, module); err != nil {
			return err
		}
		for li, l := range m.lessons {
			lesson := &models.Lesson{
				ModuleID:   module.ID,
				Title:      l.title,
				Type:       l.ltype,
				OrderIndex: li + 1,
				IsPreview:  l.isPreview,
			}
			if l.content != "" {
				content := l.content
				lesson.Content = &content
			}
			if l.videoURL != "" {
				videoURL := l.videoURL
				lesson.VideoURL = &videoURL
			}
			if l.duration != "" {
				duration := l.duration
				lesson.Duration = &duration
			}
			if err := s.lessonRepo.Create(ctx, lesson); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *seeder) seedLearningPaths(ctx context.Context) error {
	paths := []struct {
		path         models.LearningPath
		courseTitles []string
	}{
		{
			path: models.LearningPath{
				Title:       "Backend Engineer",
				Description: "Go, APIs and databases: everything needed to ship a production backend.",
				Duration:    "3 months",
				OrderIndex:  1,
			},
			courseTitles: []string{"Go for Backend Engineers", "Designing REST APIs", "SQL and Database Design", "Advanced Go Concurrency"},
		},
		{
			path: models.LearningPath{
				Title:       "Frontend Engineer",
				Description: "From markup to typed component architectures.",
				Duration:    "2 months",
				OrderIndex:  2,
			},
			courseTitles: []string{"CSS Architecture at Scale", "Modern React and TypeScript"},
		},
		{
			path: models.LearningPath{
				Title:       "Platform and DevOps",
				Description: "Run what you build: containers, orchestration and operations.",
				Duration:    "2 months",
				OrderIndex:  3,
			},
			courseTitles: []string{"Docker and Kubernetes in Practice", "SQL and Database Design"},
		},
	}

	courses, err := s.courseRepo.GetAll(ctx, models.CourseFilter{}, nil)
	if err != nil {
		return err
	}
	idByTitle := make(map[string]int, len(courses))
	for _, c := range courses {
		idByTitle[c.Title] = c.ID
	}

	for _, p := range paths {
		exists, err := s.pathRepo.ExistsByTitle(ctx, p.path.Title)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		path := p.path
		if err := s.pathRepo.Create(ctx, &path); err != nil {
			return err
		}
		for i, title := range p.courseTitles {
			courseID, ok := idByTitle[title]
			if !ok {
				return fmt.Errorf("course %q not found for path %q", title, path.Title)
			}
			if err := s.pathRepo.AddCourse(ctx, path.ID, courseID, i+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *seeder) seedUsers(ctx context.Context) error {
	users := []struct {
		username string
		email    string
		password string
		fullName string
		role     int
	}{
		{"demo", "demo@codecampus.dev", "demo1234", "Demo Student", models.RoleUser},
		{"admin", "admin@codecampus.dev", "admin1234", "Platform Admin", models.RoleAdmin},
	}
	for _, u := range users {
		exists, err := s.userRepo.ExistsByEmail(ctx, u.email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hash),
			FullName:     u.fullName,
			Role:         u.role,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) seedBadges(ctx context.Context) error {
	badges := []models.Badge{
		{Name: "First Steps", Description: "Completed your first course", Type: "course", Points: 50},
		{Name: "Course Collector", Description: "Completed five courses", Type: "course", Points: 200},
		{Name: "Quiz Ace", Description: "Scored 100% on a quiz", Type: "quiz", Points: 100},
		{Name: "Regular", Description: "Studied seven days in a row", Type: "streak", Points: 100},
	}
	for i := range badges {
		_, err := s.badgeRepo.GetByName(ctx, badges[i].Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return err
		}
		if err := s.badgeRepo.Create(ctx, &badges[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) seedAchievements(ctx context.Context) error {
	achievements := []struct {
		achievement models.Achievement
		badgeName   string
	}{
		{
			achievement: models.Achievement{
				Name:          "Course Finisher",
				Description:   "Complete your first course",
				Type:          models.AchievementTypeCourseCompletion,
				RequiredCount: 1,
			},
			badgeName: "First Steps",
		},
		{
			achievement: models.Achievement{
				Name:          "Serial Learner",
				Description:   "Complete five courses",
				Type:          models.AchievementTypeCourseCompletion,
				RequiredCount: 5,
			},
			badgeName: "Course Collector",
		},
		{
			achievement: models.Achievement{
				Name:          "Perfect Score",
				Description:   "Answer every question of a quiz correctly",
				Type:          models.AchievementTypePerfectQuiz,
				RequiredCount: 1,
			},
			badgeName: "Quiz Ace",
		},
		{
			achievement: models.Achievement{
				Name:          "Week of Focus",
				Description:   "Study seven days in a row",
				Type:          models.AchievementTypeLoginStreak,
				RequiredCount: 7,
			},
			badgeName: "Regular",
		},
	}
	for _, a := range achievements {
		exists, err := s.achievementRepo.ExistsByName(ctx, a.achievement.Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		achievement := a.achievement
		if a.badgeName != "" {
			badge, err := s.badgeRepo.GetByName(ctx, a.badgeName)
			if err != nil && !errors.Is(err, models.ErrNotFound) {
				return err
			}
			if badge != nil {
				badgeID := badge.ID
				achievement.BadgeID = &badgeID
			}
		}
		if err := s.achievementRepo.Create(ctx, &achievement); err != nil {
			return err
		}
	}
	return nil
}

func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

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
