package memory

import (
	"context"
	"sort"

	"github.com/codecampus/backend/internal/models"
)

type lessonRepository struct {
	store *Store
}

// NewLessonRepository creates a lesson repository backed by the store
func NewLessonRepository(store *Store) *lessonRepository {
	return &lessonRepository{store: store}
}

func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lesson, ok := r.store.lessons[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &lesson, nil
}

// GetByCourseID returns the course's lessons in canonical course-wide order:
// modules by order then id, lessons within a module by order then id.
func (r *lessonRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.lessonsByCourse(courseID), nil
}

func (r *lessonRepository) CountGroupedByCourse(ctx context.Context, courseIDs []int) (map[int]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[int]int)
	for _, courseID := range courseIDs {
		if n := len(r.store.lessonsByCourse(courseID)); n > 0 {
			counts[courseID] = n
		}
	}
	return counts, nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lesson.ID = r.store.nextID("lessons")
	r.store.lessons[lesson.ID] = *lesson
	return nil
}

// lessonsByCourse collects lessons in canonical order.
// Callers must hold at least the read lock.
func (s *Store) lessonsByCourse(courseID int) []models.Lesson {
	var modules []models.Module
	for _, module := range s.modules {
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

	var lessons []models.Lesson
	for _, module := range modules {
		var moduleLessons []models.Lesson
		for _, lesson := range s.lessons {
			if lesson.ModuleID == module.ID {
				moduleLessons = append(moduleLessons, lesson)
			}
		}
		sort.Slice(moduleLessons, func(i, j int) bool {
			if moduleLessons[i].OrderIndex != moduleLessons[j].OrderIndex {
				return moduleLessons[i].OrderIndex < moduleLessons[j].OrderIndex
			}
			return moduleLessons[i].ID < moduleLessons[j].ID
		})
		lessons = append(lessons, moduleLessons...)
	}
	return lessons
}
