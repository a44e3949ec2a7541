package memory

import (
	"context"

	"github.com/codecampus/backend/internal/models"
)

type instructorRepository struct {
	store *Store
}

// NewInstructorRepository creates an instructor repository backed by the store
func NewInstructorRepository(store *Store) *instructorRepository {
	return &instructorRepository{store: store}
}

func (r *instructorRepository) GetByID(ctx context.Context, id int) (*models.Instructor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	instructor, ok := r.store.instructors[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &instructor, nil
}

func (r *instructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	instructor.ID = r.store.nextID("instructors")
	r.store.instructors[instructor.ID] = *instructor
	return nil
}

func (r *instructorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, instructor := range r.store.instructors {
		if instructor.Name == name {
			return true, nil
		}
	}
	return false, nil
}
