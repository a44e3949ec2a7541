package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

type subscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new newsletter subscription repository
func NewSubscriptionRepository(db *sql.DB) *subscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create inserts a new newsletter subscription
func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (email)
		VALUES (?)
	`

	result, err := r.db.ExecContext(ctx, query, subscription.Email)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	subscription.ID = int(id)
	return nil
}

// ExistsByEmail checks if the email is already subscribed
func (r *subscriptionRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM subscriptions WHERE email = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subscription existence: %w", err)
	}
	return exists, nil
}
