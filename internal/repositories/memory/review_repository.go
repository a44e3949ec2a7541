package memory

import (
	"context"
	"sort"
	"time"

	"github.com/codecampus/backend/internal/models"
)

type reviewRepository struct {
	store *Store
}

// NewReviewRepository creates a review repository backed by the store
func NewReviewRepository(store *Store) *reviewRepository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var reviews []models.Review
	for _, review := range r.store.reviews {
		if review.CourseID == courseID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID > reviews[j].ID
	})
	return reviews, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	review.ID = r.store.nextID("reviews")
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.store.reviews[review.ID] = *review
	return nil
}
