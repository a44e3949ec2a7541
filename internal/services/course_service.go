package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codecampus/backend/internal/models"
)

// defaultRecommendedLimit caps the "recommended" bucket when the caller
// supplies no limit
const defaultRecommendedLimit = 8

// CourseRepository is the interface that wraps methods for Course table data access
type CourseRepository interface {
	// GetByID retrieves a course by ID.
	//
	// Returns models.ErrNotFound if no such course exists.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetAll retrieves courses matching the filter, newest first.
	//
	// "restrictIDs" narrows the result to the given course ids; nil means no
	// restriction. Callers must short-circuit an empty category match before
	// calling this method.
	GetAll(ctx context.Context, filter models.CourseFilter, restrictIDs []int) ([]models.Course, error)
	// GetNotEnrolled retrieves the newest courses the user has no enrollment for
	GetNotEnrolled(ctx context.Context, userID, limit int) ([]models.Course, error)
	// GetEnrolled retrieves courses the user is enrolled in
	GetEnrolled(ctx context.Context, userID int) ([]models.Course, error)
	// Create inserts a new course
	Create(ctx context.Context, course *models.Course) error
	// Update updates the non-zero fields of a course
	Update(ctx context.Context, course *models.Course) error
	// Delete deletes a course by ID
	Delete(ctx context.Context, id int) error
	// IncrementEnrollmentCount bumps the denormalized enrollment counter
	IncrementEnrollmentCount(ctx context.Context, id int) error
}

// InstructorRepository is the interface that wraps methods for Instructor table data access
type InstructorRepository interface {
	// GetByID retrieves an instructor by ID
	GetByID(ctx context.Context, id int) (*models.Instructor, error)
}

// ReviewRepository is the interface that wraps methods for Review table data access
type ReviewRepository interface {
	// GetByCourseID retrieves a course's reviews, newest first
	GetByCourseID(ctx context.Context, courseID int) ([]models.Review, error)
	// Create inserts a new review
	Create(ctx context.Context, review *models.Review) error
}

type courseService struct {
	courseRepo     CourseRepository
	categoryRepo   CategoryRepository
	instructorRepo InstructorRepository
	moduleRepo     ModuleRepository
	lessonRepo     LessonRepository
	enrollmentRepo EnrollmentRepository
	progressRepo   ProgressRepository
	reviewRepo     ReviewRepository
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo CourseRepository,
	categoryRepo CategoryRepository,
	instructorRepo InstructorRepository,
	moduleRepo ModuleRepository,
	lessonRepo LessonRepository,
	enrollmentRepo EnrollmentRepository,
	progressRepo ProgressRepository,
	reviewRepo ReviewRepository,
) *courseService {
	return &courseService{
		courseRepo:     courseRepo,
		categoryRepo:   categoryRepo,
		instructorRepo: instructorRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		reviewRepo:     reviewRepo,
	}
}

// GetCourses retrieves the course catalog with conjunctive optional filters.
// userID 0 means an anonymous caller (no enrollment flags).
func (s *courseService) GetCourses(ctx context.Context, userID int, filter models.CourseFilter) ([]models.CourseListItem, error) {
	var restrictIDs []int
	if filter.CategoryID != nil {
		ids, err := s.categoryRepo.GetCourseIDs(ctx, *filter.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to get category courses: %w", err)
		}
		// An empty category match never falls through to the unfiltered set
		if len(ids) == 0 {
			return []models.CourseListItem{}, nil
		}
		restrictIDs = ids
	}

	courses, err := s.courseRepo.GetAll(ctx, filter, restrictIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}

	return s.buildListItems(ctx, userID, courses)
}

// GetCourse assembles the full course page: categories, ordered modules with
// lessons and per-user completion flags, instructor, reviews and aggregates
func (s *courseService) GetCourse(ctx context.Context, courseID, userID int) (*models.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	var (
		categories   map[int][]models.Category
		modules      []models.Module
		lessons      []models.Lesson
		instructor   *models.Instructor
		reviews      []models.Review
		isEnrolled   bool
		completedIDs map[int]bool
	)

	// Independent sub-queries fan out; the response is composed only after
	// all of them finished.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.GetByCourseIDs(gctx, []int{courseID})
		return err
	})
	g.Go(func() error {
		var err error
		modules, err = s.moduleRepo.GetByCourseID(gctx, courseID)
		return err
	})
	g.Go(func() error {
		var err error
		lessons, err = s.lessonRepo.GetByCourseID(gctx, courseID)
		return err
	})
	g.Go(func() error {
		var err error
		instructor, err = s.instructorRepo.GetByID(gctx, course.InstructorID)
		if errors.Is(err, models.ErrNotFound) {
			instructor, err = nil, nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.reviewRepo.GetByCourseID(gctx, courseID)
		return err
	})
	if userID > 0 {
		g.Go(func() error {
			var err error
			isEnrolled, err = s.enrollmentRepo.Exists(gctx, userID, courseID)
			return err
		})
		g.Go(func() error {
			var err error
			completedIDs, err = s.progressRepo.GetCompletedLessonIDs(gctx, userID, courseID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assemble course: %w", err)
	}

	lessonsByModule := make(map[int][]models.LessonWithCompletion)
	var (
		firstLessonID    *int
		completedLessons int
		videoSeconds     int
		exercisesCount   int
		resourcesCount   int
	)
	for _, lesson := range lessons {
		completed := completedIDs[lesson.ID]
		if completed {
			completedLessons++
		}
		if firstLessonID == nil {
			id := lesson.ID
			firstLessonID = &id
		}
		switch lesson.Type {
		case models.LessonTypeVideo:
			if lesson.Duration != nil {
				videoSeconds += parseDurationSeconds(*lesson.Duration)
			}
		case models.LessonTypeExercise:
			exercisesCount++
		case models.LessonTypeResource:
			resourcesCount++
		}
		lessonsByModule[lesson.ModuleID] = append(lessonsByModule[lesson.ModuleID], models.LessonWithCompletion{
			Lesson:    lesson,
			Completed: completed,
		})
	}

	moduleItems := make([]models.ModuleWithLessons, 0, len(modules))
	for _, module := range modules {
		moduleLessons := lessonsByModule[module.ID]
		if moduleLessons == nil {
			moduleLessons = []models.LessonWithCompletion{}
		}
		moduleItems = append(moduleItems, models.ModuleWithLessons{
			Module:  module,
			Lessons: moduleLessons,
		})
	}

	courseCategories := categories[courseID]
	if courseCategories == nil {
		courseCategories = []models.Category{}
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	return &models.CourseDetailResponse{
		Course:           *course,
		Categories:       courseCategories,
		Modules:          moduleItems,
		Instructor:       instructor,
		Reviews:          reviews,
		IsEnrolled:       isEnrolled,
		Progress:         courseProgress(completedLessons, len(lessons)),
		LessonsCount:     len(lessons),
		CompletedLessons: completedLessons,
		FirstLessonID:    firstLessonID,
		VideoDuration:    roundHours(videoSeconds),
		ExercisesCount:   exercisesCount,
		ResourcesCount:   resourcesCount,
	}, nil
}

// GetRecommended produces the personalized feed: enrolled courses with
// 0 < progress < 100 ascending by progress, plus the newest not-enrolled
// courses capped at "limit" (default 8)
func (s *courseService) GetRecommended(ctx context.Context, userID, limit int) (*models.RecommendedResponse, error) {
	if limit <= 0 {
		limit = defaultRecommendedLimit
	}

	enrolled, err := s.courseRepo.GetEnrolled(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrolled courses: %w", err)
	}

	enrolledIDs := make([]int, 0, len(enrolled))
	for _, course := range enrolled {
		enrolledIDs = append(enrolledIDs, course.ID)
	}

	var (
		lessonCounts    map[int]int
		completedCounts map[int]int
		categories      map[int][]models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lessonCounts, err = s.lessonRepo.CountGroupedByCourse(gctx, enrolledIDs)
		return err
	})
	g.Go(func() error {
		var err error
		completedCounts, err = s.progressRepo.CountCompletedGrouped(gctx, userID, enrolledIDs)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.GetByCourseIDs(gctx, enrolledIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to enrich enrolled courses: %w", err)
	}

	inProgress := []models.CourseListItem{}
	for _, course := range enrolled {
		pct := courseProgress(completedCounts[course.ID], lessonCounts[course.ID])
		if pct <= 0 || pct >= 100 {
			continue
		}
		courseCategories := categories[course.ID]
		if courseCategories == nil {
			courseCategories = []models.Category{}
		}
		inProgress = append(inProgress, models.CourseListItem{
			Course:       course,
			Categories:   courseCategories,
			IsEnrolled:   true,
			LessonsCount: lessonCounts[course.ID],
			Progress:     pct,
		})
	}
	// Least progress first; courses just started surface before nearly-done ones
	sort.SliceStable(inProgress, func(i, j int) bool {
		return inProgress[i].Progress < inProgress[j].Progress
	})

	notEnrolled, err := s.courseRepo.GetNotEnrolled(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get not enrolled courses: %w", err)
	}
	recommended, err := s.buildListItems(ctx, 0, notEnrolled)
	if err != nil {
		return nil, err
	}

	return &models.RecommendedResponse{
		InProgress:  inProgress,
		Recommended: recommended,
	}, nil
}

// CreateReview records an enrolled user's review on a course
func (s *courseService) CreateReview(ctx context.Context, userID, courseID int, req *models.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", models.ErrValidation)
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: not enrolled in course", models.ErrForbidden)
	}

	review := &models.Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// buildListItems enriches raw course rows with categories, lesson counts and,
// for authenticated callers, enrollment flags. Sub-queries fan out in parallel.
func (s *courseService) buildListItems(ctx context.Context, userID int, courses []models.Course) ([]models.CourseListItem, error) {
	if len(courses) == 0 {
		return []models.CourseListItem{}, nil
	}

	courseIDs := make([]int, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}

	var (
		categories   map[int][]models.Category
		lessonCounts map[int]int
		enrolledIDs  []int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.GetByCourseIDs(gctx, courseIDs)
		return err
	})
	g.Go(func() error {
		var err error
		lessonCounts, err = s.lessonRepo.CountGroupedByCourse(gctx, courseIDs)
		return err
	})
	if userID > 0 {
		g.Go(func() error {
			var err error
			enrolledIDs, err = s.enrollmentRepo.GetCourseIDsByUser(gctx, userID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to enrich courses: %w", err)
	}

	enrolled := make(map[int]bool, len(enrolledIDs))
	for _, id := range enrolledIDs {
		enrolled[id] = true
	}

	items := make([]models.CourseListItem, 0, len(courses))
	for _, course := range courses {
		courseCategories := categories[course.ID]
		if courseCategories == nil {
			courseCategories = []models.Category{}
		}
		items = append(items, models.CourseListItem{
			Course:       course,
			Categories:   courseCategories,
			IsEnrolled:   enrolled[course.ID],
			LessonsCount: lessonCounts[course.ID],
		})
	}
	return items, nil
}

// courseProgress returns the completion percentage rounded to the nearest
// integer, 0 for a course with no lessons
func courseProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// parseDurationSeconds parses an "HH:MM:SS" (or "MM:SS") duration string.
// Non-parseable segments count as 0.
func parseDurationSeconds(duration string) int {
	parts := strings.Split(duration, ":")
	seconds := 0
	weight := 1
	for i := len(parts) - 1; i >= 0 && weight <= 3600; i-- {
		value, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || value < 0 {
			value = 0
		}
		seconds += value * weight
		weight *= 60
	}
	return seconds
}

// roundHours converts seconds to hours rounded to one decimal
func roundHours(seconds int) float64 {
	return math.Round(float64(seconds)/3600*10) / 10
}
