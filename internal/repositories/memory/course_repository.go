package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/codecampus/backend/internal/models"
)

type courseRepository struct {
	store *Store
}

// NewCourseRepository creates a course repository backed by the store
func NewCourseRepository(store *Store) *courseRepository {
	return &courseRepository{store: store}
}

// sortCoursesNewestFirst orders like the SQL layer: created_at desc, id desc
func sortCoursesNewestFirst(courses []models.Course) {
	sort.Slice(courses, func(i, j int) bool {
		if !courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].CreatedAt.After(courses[j].CreatedAt)
		}
		return courses[i].ID > courses[j].ID
	})
}

func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	course, ok := r.store.courses[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &course, nil
}

func (r *courseRepository) GetAll(ctx context.Context, filter models.CourseFilter, restrictIDs []int) ([]models.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var courses []models.Course
	for _, course := range r.store.courses {
		if len(restrictIDs) > 0 && !slices.Contains(restrictIDs, course.ID) {
			continue
		}
		if filter.Level != "" && filter.Level != models.CourseLevelAll && course.Level != filter.Level {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(course.Title), strings.ToLower(filter.Search)) {
			continue
		}
		courses = append(courses, course)
	}
	sortCoursesNewestFirst(courses)

	if filter.Offset != nil {
		if *filter.Offset >= len(courses) {
			courses = nil
		} else {
			courses = courses[*filter.Offset:]
		}
	}
	if filter.Limit != nil && *filter.Limit < len(courses) {
		courses = courses[:*filter.Limit]
	}
	return courses, nil
}

func (r *courseRepository) GetNotEnrolled(ctx context.Context, userID, limit int) ([]models.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	enrolled := r.store.enrolledCourseIDs(userID)
	var courses []models.Course
	for _, course := range r.store.courses {
		if !enrolled[course.ID] {
			courses = append(courses, course)
		}
	}
	sortCoursesNewestFirst(courses)
	if limit < len(courses) {
		courses = courses[:limit]
	}
	return courses, nil
}

func (r *courseRepository) GetEnrolled(ctx context.Context, userID int) ([]models.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	enrolled := r.store.enrolledCourseIDs(userID)
	var courses []models.Course
	for _, course := range r.store.courses {
		if enrolled[course.ID] {
			courses = append(courses, course)
		}
	}
	sortCoursesNewestFirst(courses)
	return courses, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	course.ID = r.store.nextID("courses")
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}
	r.store.courses[course.ID] = *course
	return nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.courses[course.ID]
	if !ok {
		return models.ErrNotFound
	}

	updated := false
	if course.Title != "" {
		existing.Title = course.Title
		updated = true
	}
	if course.Description != "" {
		existing.Description = course.Description
		updated = true
	}
	if course.ImageURL != "" {
		existing.ImageURL = course.ImageURL
		updated = true
	}
	if course.Level != "" {
		existing.Level = course.Level
		updated = true
	}
	if course.Duration != "" {
		existing.Duration = course.Duration
		updated = true
	}
	if course.Price >= 0 {
		existing.Price = course.Price
		updated = true
	}
	if !updated {
		return fmt.Errorf("no fields to update")
	}

	r.store.courses[course.ID] = existing
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.courses[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.store.courses, id)
	delete(r.store.courseCategories, id)
	return nil
}

func (r *courseRepository) IncrementEnrollmentCount(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	course, ok := r.store.courses[id]
	if !ok {
		return nil
	}
	course.EnrollmentCount++
	r.store.courses[id] = course
	return nil
}

func (r *courseRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, course := range r.store.courses {
		if course.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// enrolledCourseIDs returns the set of course ids the user is enrolled in.
// Callers must hold at least the read lock.
func (s *Store) enrolledCourseIDs(userID int) map[int]bool {
	ids := make(map[int]bool)
	for _, enrollment := range s.enrollments {
		if enrollment.UserID == userID {
			ids[enrollment.CourseID] = true
		}
	}
	return ids
}
