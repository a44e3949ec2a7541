package services

import (
	"context"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

// CategoryRepository is the interface that wraps methods for Category table data access
type CategoryRepository interface {
	// GetAll retrieves all categories ordered by id
	GetAll(ctx context.Context) ([]models.Category, error)
	// GetCourseIDs retrieves the ids of courses assigned to the category
	GetCourseIDs(ctx context.Context, categoryID int) ([]int, error)
	// GetByCourseIDs retrieves categories grouped by course id
	GetByCourseIDs(ctx context.Context, courseIDs []int) (map[int][]models.Category, error)
	// AddCourseCategory assigns a category to a course; duplicates are ignored
	AddCourseCategory(ctx context.Context, courseID, categoryID int) error
	// RemoveCourseCategories removes all category assignments of a course
	RemoveCourseCategories(ctx context.Context, courseID int) error
}

type categoryService struct {
	categoryRepo CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// GetCategories retrieves all categories
func (s *categoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}
