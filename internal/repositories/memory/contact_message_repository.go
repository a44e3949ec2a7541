package memory

import (
	"context"
	"time"

	"github.com/codecampus/backend/internal/models"
)

type contactMessageRepository struct {
	store *Store
}

// NewContactMessageRepository creates a contact message repository backed by the store
func NewContactMessageRepository(store *Store) *contactMessageRepository {
	return &contactMessageRepository{store: store}
}

func (r *contactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	message.ID = r.store.nextID("contact_messages")
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.store.contactMessages[message.ID] = *message
	return nil
}
