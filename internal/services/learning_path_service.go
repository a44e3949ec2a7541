package services

import (
	"context"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

// LearningPathRepository is the interface that wraps methods for LearningPath table data access
type LearningPathRepository interface {
	// GetAll retrieves all learning paths ordered by position
	GetAll(ctx context.Context) ([]models.LearningPath, error)
	// GetCourseIDs retrieves the path's course ids in path order
	GetCourseIDs(ctx context.Context, pathID int) ([]int, error)
}

type learningPathService struct {
	pathRepo       LearningPathRepository
	categoryRepo   CategoryRepository
	lessonRepo     LessonRepository
	progressRepo   ProgressRepository
	enrollmentRepo EnrollmentRepository
}

// NewLearningPathService creates a new learning path service
func NewLearningPathService(
	pathRepo LearningPathRepository,
	categoryRepo CategoryRepository,
	lessonRepo LessonRepository,
	progressRepo ProgressRepository,
	enrollmentRepo EnrollmentRepository,
) *learningPathService {
	return &learningPathService{
		pathRepo:       pathRepo,
		categoryRepo:   categoryRepo,
		lessonRepo:     lessonRepo,
		progressRepo:   progressRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// GetLearningPaths retrieves all paths with aggregate course data. Per-user
// enrollment and progress are only computed for authenticated callers
// (userID > 0).
func (s *learningPathService) GetLearningPaths(ctx context.Context, userID int) ([]models.LearningPathItem, error) {
	paths, err := s.pathRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get learning paths: %w", err)
	}

	enrolled := make(map[int]bool)
	if userID > 0 {
		enrolledIDs, err := s.enrollmentRepo.GetCourseIDsByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get enrollments: %w", err)
		}
		for _, id := range enrolledIDs {
			enrolled[id] = true
		}
	}

	items := make([]models.LearningPathItem, 0, len(paths))
	for _, path := range paths {
		courseIDs, err := s.pathRepo.GetCourseIDs(ctx, path.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get path courses: %w", err)
		}

		item := models.LearningPathItem{
			LearningPath: path,
			CourseCount:  len(courseIDs),
			Categories:   []models.Category{},
		}
		if len(courseIDs) > 0 {
			id := courseIDs[0]
			item.FirstCourseID = &id

			grouped, err := s.categoryRepo.GetByCourseIDs(ctx, courseIDs)
			if err != nil {
				return nil, fmt.Errorf("failed to get path categories: %w", err)
			}
			item.Categories = dedupeCategories(courseIDs, grouped)
		}

		if userID > 0 && len(courseIDs) > 0 {
			for _, id := range courseIDs {
				if enrolled[id] {
					item.Enrolled = true
					break
				}
			}

			lessonCounts, err := s.lessonRepo.CountGroupedByCourse(ctx, courseIDs)
			if err != nil {
				return nil, fmt.Errorf("failed to count path lessons: %w", err)
			}
			completedCounts, err := s.progressRepo.CountCompletedGrouped(ctx, userID, courseIDs)
			if err != nil {
				return nil, fmt.Errorf("failed to count completed path lessons: %w", err)
			}

			// Path progress is the average completion percentage across courses
			total := 0
			for _, id := range courseIDs {
				total += courseProgress(completedCounts[id], lessonCounts[id])
			}
			item.Progress = total / len(courseIDs)
		}

		items = append(items, item)
	}
	return items, nil
}

// dedupeCategories flattens grouped categories preserving course order and
// dropping repeats
func dedupeCategories(courseIDs []int, grouped map[int][]models.Category) []models.Category {
	seen := make(map[int]bool)
	categories := []models.Category{}
	for _, courseID := range courseIDs {
		for _, category := range grouped[courseID] {
			if seen[category.ID] {
				continue
			}
			seen[category.ID] = true
			categories = append(categories, category)
		}
	}
	return categories
}
