package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecampus/backend/internal/models"
)

// setupSubscriptionTestRepository creates a subscription repository with a mock database
func setupSubscriptionTestRepository(t *testing.T) (*subscriptionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSubscriptionRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestSubscriptionRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO subscriptions`).
		WithArgs("reader@example.com").
		WillReturnResult(sqlmock.NewResult(3, 1))

	subscription := &models.Subscription{Email: "reader@example.com"}
	err := repo.Create(context.Background(), subscription)

	require.NoError(t, err)
	assert.Equal(t, 3, subscription.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_ExistsByEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		exists   bool
		expected bool
	}{
		{name: "subscribed", email: "reader@example.com", exists: true, expected: true},
		{name: "not subscribed", email: "new@example.com", exists: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSubscriptionTestRepository(t)
			defer cleanup()

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(tt.email).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			exists, err := repo.ExistsByEmail(context.Background(), tt.email)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestContactMessageRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContactMessageRepository(db)

	mock.ExpectExec(`INSERT INTO contact_messages`).
		WithArgs("Taylor Reed", "taylor@example.com", "Course request", "Any plans for a Kubernetes course?").
		WillReturnResult(sqlmock.NewResult(1, 1))

	message := &models.ContactMessage{
		Name:    "Taylor Reed",
		Email:   "taylor@example.com",
		Subject: "Course request",
		Message: "Any plans for a Kubernetes course?",
	}
	err = repo.Create(context.Background(), message)

	require.NoError(t, err)
	assert.Equal(t, 1, message.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
