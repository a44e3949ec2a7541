package memory

import (
	"context"
	"time"

	"github.com/codecampus/backend/internal/models"
)

type userRepository struct {
	store *Store
}

// NewUserRepository creates a user repository backed by the store
func NewUserRepository(store *Store) *userRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user.ID = r.store.nextID("users")
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == login || user.Username == login {
			u := user
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}
