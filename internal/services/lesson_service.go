package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/models"
)

// ModuleRepository is the interface that wraps methods for Module table data access
type ModuleRepository interface {
	// GetByID retrieves a module by ID.
	//
	// Returns models.ErrNotFound if no such module exists.
	GetByID(ctx context.Context, id int) (*models.Module, error)
	// GetByCourseID retrieves a course's modules ordered by position
	GetByCourseID(ctx context.Context, courseID int) ([]models.Module, error)
	// Create inserts a new module
	Create(ctx context.Context, module *models.Module) error
}

// LessonRepository is the interface that wraps methods for Lesson table data access
type LessonRepository interface {
	// GetByID retrieves a lesson by ID.
	//
	// Returns models.ErrNotFound if no such lesson exists.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// GetByCourseID retrieves a course's lessons in canonical course-wide
	// order (modules by position, lessons by position within their module)
	GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error)
	// CountGroupedByCourse counts lessons per course id
	CountGroupedByCourse(ctx context.Context, courseIDs []int) (map[int]int, error)
	// Create inserts a new lesson
	Create(ctx context.Context, lesson *models.Lesson) error
}

// ProgressRepository is the interface that wraps methods for Progress table data access
type ProgressRepository interface {
	// Get retrieves the progress row for a (user, lesson) pair.
	//
	// Returns models.ErrNotFound if the lesson was never completed.
	Get(ctx context.Context, userID, lessonID int) (*models.Progress, error)
	// Create inserts a new progress row
	Create(ctx context.Context, progress *models.Progress) error
	// CountCompletedByCourse counts the user's completed lessons in a course
	CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error)
	// CountCompletedGrouped counts the user's completed lessons per course id
	CountCompletedGrouped(ctx context.Context, userID int, courseIDs []int) (map[int]int, error)
	// GetCompletedLessonIDs retrieves the set of the user's completed lesson
	// ids in a course
	GetCompletedLessonIDs(ctx context.Context, userID, courseID int) (map[int]bool, error)
}

// CourseCompletionTracker advances course-completion achievements. Implemented
// by the achievement service; failures here never fail the caller's request.
type CourseCompletionTracker interface {
	RecordCourseCompletion(ctx context.Context, userID int) error
}

// MarkCompleteResult is what a successful mark-complete returns: the progress
// row (existing one on repeat calls) and the course completion percentage
type MarkCompleteResult struct {
	Progress  *models.Progress `json:"progressRecord"`
	CourseID  int              `json:"courseId"`
	CoursePct int              `json:"progress"`
}

type lessonService struct {
	lessonRepo     LessonRepository
	moduleRepo     ModuleRepository
	enrollmentRepo EnrollmentRepository
	progressRepo   ProgressRepository
	tracker        CourseCompletionTracker
	logger         *zap.Logger
}

// NewLessonService creates a new lesson service
func NewLessonService(
	lessonRepo LessonRepository,
	moduleRepo ModuleRepository,
	enrollmentRepo EnrollmentRepository,
	progressRepo ProgressRepository,
	tracker CourseCompletionTracker,
	logger *zap.Logger,
) *lessonService {
	return &lessonService{
		lessonRepo:     lessonRepo,
		moduleRepo:     moduleRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		tracker:        tracker,
		logger:         logger,
	}
}

// GetLesson retrieves a lesson with navigation context. Non-preview lessons
// require enrollment in the owning course.
func (s *lessonService) GetLesson(ctx context.Context, lessonID, userID int) (*models.LessonDetailResponse, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	module, err := s.moduleRepo.GetByID(ctx, lesson.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	if !lesson.IsPreview {
		enrolled, err := s.enrollmentRepo.Exists(ctx, userID, module.CourseID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return nil, fmt.Errorf("%w: not enrolled in course", models.ErrForbidden)
		}
	}

	// Prev/next follow the canonical course-wide lesson order
	courseLessons, err := s.lessonRepo.GetByCourseID(ctx, module.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course lessons: %w", err)
	}
	var prevLessonID, nextLessonID *int
	for i, courseLesson := range courseLessons {
		if courseLesson.ID != lesson.ID {
			continue
		}
		if i > 0 {
			id := courseLessons[i-1].ID
			prevLessonID = &id
		}
		if i < len(courseLessons)-1 {
			id := courseLessons[i+1].ID
			nextLessonID = &id
		}
		break
	}

	completed := false
	if _, err := s.progressRepo.Get(ctx, userID, lessonID); err == nil {
		completed = true
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return &models.LessonDetailResponse{
		Lesson:       *lesson,
		CourseID:     module.CourseID,
		PrevLessonID: prevLessonID,
		NextLessonID: nextLessonID,
		Completed:    completed,
	}, nil
}

// MarkComplete idempotently records that the user finished the lesson and,
// when the owning course reaches 100%, advances course-completion
// achievements as a best-effort side effect
func (s *lessonService) MarkComplete(ctx context.Context, userID, lessonID int) (*MarkCompleteResult, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	module, err := s.moduleRepo.GetByID(ctx, lesson.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	// Repeat calls return the existing row unchanged
	progress, err := s.progressRepo.Get(ctx, userID, lessonID)
	switch {
	case err == nil:
		pct, _ := s.coursePctBestEffort(ctx, userID, module.CourseID)
		return &MarkCompleteResult{Progress: progress, CourseID: module.CourseID, CoursePct: pct}, nil
	case !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	progress = &models.Progress{
		UserID:      userID,
		LessonID:    lessonID,
		CourseID:    module.CourseID,
		Status:      models.ProgressStatusCompleted,
		CompletedAt: time.Now(),
	}
	if err := s.progressRepo.Create(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to create progress: %w", err)
	}

	pct, ok := s.coursePctBestEffort(ctx, userID, module.CourseID)

	// Achievement re-evaluation must never fail the mark-complete request
	if ok && pct == 100 {
		if err := s.tracker.RecordCourseCompletion(ctx, userID); err != nil {
			s.logger.Warn("failed to record course completion",
				zap.Int("userId", userID),
				zap.Int("courseId", module.CourseID),
				zap.Error(err),
			)
		}
	}

	return &MarkCompleteResult{Progress: progress, CourseID: module.CourseID, CoursePct: pct}, nil
}

// coursePctBestEffort recomputes the course percentage after the progress row
// is already stored. Recompute failures are logged and swallowed so they never
// fail a mark-complete that succeeded; the response then carries 0%.
func (s *lessonService) coursePctBestEffort(ctx context.Context, userID, courseID int) (int, bool) {
	pct, err := s.coursePct(ctx, userID, courseID)
	if err != nil {
		s.logger.Warn("failed to recompute course progress",
			zap.Int("userId", userID),
			zap.Int("courseId", courseID),
			zap.Error(err),
		)
		return 0, false
	}
	return pct, true
}

func (s *lessonService) coursePct(ctx context.Context, userID, courseID int) (int, error) {
	counts, err := s.lessonRepo.CountGroupedByCourse(ctx, []int{courseID})
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	completed, err := s.progressRepo.CountCompletedByCourse(ctx, userID, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}
	return courseProgress(completed, counts[courseID]), nil
}
