package memory

import (
	"context"
	"sort"

	"github.com/codecampus/backend/internal/models"
)

type moduleRepository struct {
	store *Store
}

// NewModuleRepository creates a module repository backed by the store
func NewModuleRepository(store *Store) *moduleRepository {
	return &moduleRepository{store: store}
}

func (r *moduleRepository) GetByID(ctx context.Context, id int) (*models.Module, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	module, ok := r.store.modules[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &module, nil
}

func (r *moduleRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Module, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var modules []models.Module
	for _, module := range r.store.modules {
		if module.CourseID == courseID {
			modules = append(modules, module)
		}
	}
	sort.Slice(modules, func(i, j int) bool {
		if modules[i].OrderIndex != modules[j].OrderIndex {
			return modules[i].OrderIndex < modules[j].OrderIndex
		}
		return modules[i].ID < modules[j].ID
	})
	return modules, nil
}

func (r *moduleRepository) Create(ctx context.Context, module *models.Module) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	module.ID = r.store.nextID("modules")
	r.store.modules[module.ID] = *module
	return nil
}

func (r *moduleRepository) ExistsByCourseID(ctx context.Context, courseID int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, module := range r.store.modules {
		if module.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}
