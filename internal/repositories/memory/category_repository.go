package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/codecampus/backend/internal/models"
)

type categoryRepository struct {
	store *Store
}

// NewCategoryRepository creates a category repository backed by the store
func NewCategoryRepository(store *Store) *categoryRepository {
	return &categoryRepository{store: store}
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var categories []models.Category
	for _, category := range r.store.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (r *categoryRepository) GetCourseIDs(ctx context.Context, categoryID int) ([]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var courseIDs []int
	for courseID, categoryIDs := range r.store.courseCategories {
		if slices.Contains(categoryIDs, categoryID) {
			courseIDs = append(courseIDs, courseID)
		}
	}
	sort.Ints(courseIDs)
	return courseIDs, nil
}

func (r *categoryRepository) GetByCourseIDs(ctx context.Context, courseIDs []int) (map[int][]models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make(map[int][]models.Category)
	for _, courseID := range courseIDs {
		for _, categoryID := range r.store.courseCategories[courseID] {
			if category, ok := r.store.categories[categoryID]; ok {
				result[courseID] = append(result[courseID], category)
			}
		}
	}
	return result, nil
}

func (r *categoryRepository) AddCourseCategory(ctx context.Context, courseID, categoryID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if slices.Contains(r.store.courseCategories[courseID], categoryID) {
		return nil
	}
	r.store.courseCategories[courseID] = append(r.store.courseCategories[courseID], categoryID)
	return nil
}

func (r *categoryRepository) RemoveCourseCategories(ctx context.Context, courseID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.courseCategories, courseID)
	return nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category.ID = r.store.nextID("categories")
	r.store.categories[category.ID] = *category
	return nil
}

func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, category := range r.store.categories {
		if category.Name == name {
			return true, nil
		}
	}
	return false, nil
}
