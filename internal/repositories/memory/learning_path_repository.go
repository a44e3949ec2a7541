package memory

import (
	"context"
	"sort"

	"github.com/codecampus/backend/internal/models"
)

type learningPathRepository struct {
	store *Store
}

// NewLearningPathRepository creates a learning path repository backed by the store
func NewLearningPathRepository(store *Store) *learningPathRepository {
	return &learningPathRepository{store: store}
}

func (r *learningPathRepository) GetAll(ctx context.Context) ([]models.LearningPath, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var paths []models.LearningPath
	for _, path := range r.store.learningPaths {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool {
		if paths[i].OrderIndex != paths[j].OrderIndex {
			return paths[i].OrderIndex < paths[j].OrderIndex
		}
		return paths[i].ID < paths[j].ID
	})
	return paths, nil
}

func (r *learningPathRepository) GetCourseIDs(ctx context.Context, pathID int) ([]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var entries []pathCourse
	for _, entry := range r.store.pathCourses {
		if entry.PathID == pathID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OrderIndex != entries[j].OrderIndex {
			return entries[i].OrderIndex < entries[j].OrderIndex
		}
		return entries[i].CourseID < entries[j].CourseID
	})

	var courseIDs []int
	for _, entry := range entries {
		courseIDs = append(courseIDs, entry.CourseID)
	}
	return courseIDs, nil
}

func (r *learningPathRepository) Create(ctx context.Context, path *models.LearningPath) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	path.ID = r.store.nextID("learning_paths")
	r.store.learningPaths[path.ID] = *path
	return nil
}

func (r *learningPathRepository) AddCourse(ctx context.Context, pathID, courseID, orderIndex int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, entry := range r.store.pathCourses {
		if entry.PathID == pathID && entry.CourseID == courseID {
			return nil
		}
	}
	r.store.pathCourses = append(r.store.pathCourses, pathCourse{
		PathID:     pathID,
		CourseID:   courseID,
		OrderIndex: orderIndex,
	})
	return nil
}

func (r *learningPathRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, path := range r.store.learningPaths {
		if path.Title == title {
			return true, nil
		}
	}
	return false, nil
}
