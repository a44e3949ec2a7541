package memory

import (
	"context"
	"time"

	"github.com/codecampus/backend/internal/models"
)

type subscriptionRepository struct {
	store *Store
}

// NewSubscriptionRepository creates a subscription repository backed by the store
func NewSubscriptionRepository(store *Store) *subscriptionRepository {
	return &subscriptionRepository{store: store}
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	subscription.ID = r.store.nextID("subscriptions")
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = time.Now()
	}
	r.store.subscriptions[subscription.ID] = *subscription
	return nil
}

func (r *subscriptionRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, subscription := range r.store.subscriptions {
		if subscription.Email == email {
			return true, nil
		}
	}
	return false, nil
}
