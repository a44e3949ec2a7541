package memory

import (
	"context"
	"sort"
	"time"

	"github.com/codecampus/backend/internal/models"
)

type enrollmentRepository struct {
	store *Store
}

// NewEnrollmentRepository creates an enrollment repository backed by the store
func NewEnrollmentRepository(store *Store) *enrollmentRepository {
	return &enrollmentRepository{store: store}
}

func (r *enrollmentRepository) Get(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, enrollment := range r.store.enrollments {
		if enrollment.UserID == userID && enrollment.CourseID == courseID {
			e := enrollment
			return &e, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, enrollment := range r.store.enrollments {
		if enrollment.UserID == userID && enrollment.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *enrollmentRepository) GetCourseIDsByUser(ctx context.Context, userID int) ([]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var courseIDs []int
	for _, enrollment := range r.store.enrollments {
		if enrollment.UserID == userID {
			courseIDs = append(courseIDs, enrollment.CourseID)
		}
	}
	sort.Ints(courseIDs)
	return courseIDs, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	enrollment.ID = r.store.nextID("enrollments")
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}
	r.store.enrollments[enrollment.ID] = *enrollment
	return nil
}
