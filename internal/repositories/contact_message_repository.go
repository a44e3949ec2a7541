package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

type contactMessageRepository struct {
	db *sql.DB
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(db *sql.DB) *contactMessageRepository {
	return &contactMessageRepository{
		db: db,
	}
}

// Create inserts a new contact message
func (r *contactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		message.Name,
		message.Email,
		message.Subject,
		message.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	message.ID = int(id)
	return nil
}
