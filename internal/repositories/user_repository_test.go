package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecampus/backend/internal/models"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		user          *models.User
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			user: &models.User{
				Username:     "gopher",
				Email:        "gopher@example.com",
				PasswordHash: "hashedpassword",
				FullName:     "Go Gopher",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("gopher", "gopher@example.com", "hashedpassword", "Go Gopher", models.RoleUser).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedID: 1,
		},
		{
			name: "duplicate email",
			user: &models.User{
				Username:     "gopher",
				Email:        "duplicate@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("gopher", "duplicate@example.com", "hashedpassword", "", models.RoleUser).
					WillReturnError(errors.New("Error 1062: Duplicate entry 'duplicate@example.com' for key 'email'"))
			},
			expectedError: true,
		},
		{
			name: "error getting last insert id",
			user: &models.User{
				Username:     "gopher",
				Email:        "gopher@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("gopher", "gopher@example.com", "hashedpassword", "", models.RoleUser).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("last insert id error")))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.user.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	createdAt := time.Now()

	tests := []struct {
		name          string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:   "success",
			userID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "full_name", "role", "created_at"}).
					AddRow(7, "gopher", "gopher@example.com", "hash", "Go Gopher", models.RoleUser, createdAt)
				mock.ExpectQuery(`SELECT id, username, email, password_hash, full_name, role, created_at`).
					WithArgs(7).
					WillReturnRows(rows)
			},
		},
		{
			name:   "not found",
			userID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, email, password_hash, full_name, role, created_at`).
					WithArgs(99).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByID(context.Background(), tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.userID, user.ID)
				assert.Equal(t, "gopher", user.Username)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmailOrUsername(t *testing.T) {
	t.Run("matches either column", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "full_name", "role", "created_at"}).
			AddRow(7, "gopher", "gopher@example.com", "hash", "", models.RoleUser, time.Now())
		mock.ExpectQuery(`WHERE email = \? OR username = \?`).
			WithArgs("gopher", "gopher").
			WillReturnRows(rows)

		user, err := repo.GetByEmailOrUsername(context.Background(), "gopher")

		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`WHERE email = \? OR username = \?`).
			WithArgs("nobody", "nobody").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByEmailOrUsername(context.Background(), "nobody")

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("gopher@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "gopher@example.com")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("gopher").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByUsername(context.Background(), "gopher")

	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
