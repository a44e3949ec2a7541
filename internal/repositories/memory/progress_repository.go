package memory

import (
	"context"
	"time"

	"github.com/codecampus/backend/internal/models"
)

type progressRepository struct {
	store *Store
}

// NewProgressRepository creates a progress repository backed by the store
func NewProgressRepository(store *Store) *progressRepository {
	return &progressRepository{store: store}
}

func (r *progressRepository) Get(ctx context.Context, userID, lessonID int) (*models.Progress, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, progress := range r.store.progress {
		if progress.UserID == userID && progress.LessonID == lessonID {
			p := progress
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *progressRepository) Create(ctx context.Context, progress *models.Progress) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	progress.ID = r.store.nextID("progress")
	if progress.CompletedAt.IsZero() {
		progress.CompletedAt = time.Now()
	}
	r.store.progress[progress.ID] = *progress
	return nil
}

func (r *progressRepository) CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, progress := range r.store.progress {
		if progress.UserID == userID && progress.CourseID == courseID && progress.Status == models.ProgressStatusCompleted {
			count++
		}
	}
	return count, nil
}

func (r *progressRepository) CountCompletedGrouped(ctx context.Context, userID int, courseIDs []int) (map[int]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[int]bool, len(courseIDs))
	for _, courseID := range courseIDs {
		wanted[courseID] = true
	}

	counts := make(map[int]int)
	for _, progress := range r.store.progress {
		if progress.UserID == userID && wanted[progress.CourseID] && progress.Status == models.ProgressStatusCompleted {
			counts[progress.CourseID]++
		}
	}
	return counts, nil
}

func (r *progressRepository) GetCompletedLessonIDs(ctx context.Context, userID, courseID int) (map[int]bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	completed := make(map[int]bool)
	for _, progress := range r.store.progress {
		if progress.UserID == userID && progress.CourseID == courseID && progress.Status == models.ProgressStatusCompleted {
			completed[progress.LessonID] = true
		}
	}
	return completed, nil
}
