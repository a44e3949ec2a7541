package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

type badgeRepository struct {
	db *sql.DB
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *sql.DB) *badgeRepository {
	return &badgeRepository{
		db: db,
	}
}

// GetAllWithUser retrieves all badges annotated with the user's earn state
func (r *badgeRepository) GetAllWithUser(ctx context.Context, userID int) ([]models.UserBadgeItem, error) {
	query := `
		SELECT b.id, b.name, b.description, b.type, b.points, ub.earned_at
		FROM badges b
		LEFT JOIN user_badges ub ON ub.badge_id = b.id AND ub.user_id = ?
		ORDER BY b.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query badges: %w", err)
	}
	defer rows.Close()

	var items []models.UserBadgeItem
	for rows.Next() {
		var item models.UserBadgeItem
		var earnedAt sql.NullTime
		err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Type, &item.Points, &earnedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		if earnedAt.Valid {
			item.Earned = true
			item.EarnedAt = &earnedAt.Time
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// GetUserBadge retrieves the user's badge row for a (user, badge) pair
func (r *badgeRepository) GetUserBadge(ctx context.Context, userID, badgeID int) (*models.UserBadge, error) {
	query := `
		SELECT id, user_id, badge_id, earned_at
		FROM user_badges
		WHERE user_id = ? AND badge_id = ?
		LIMIT 1
	`

	var userBadge models.UserBadge
	err := r.db.QueryRowContext(ctx, query, userID, badgeID).Scan(
		&userBadge.ID,
		&userBadge.UserID,
		&userBadge.BadgeID,
		&userBadge.EarnedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user badge: %w", err)
	}

	return &userBadge, nil
}

// CreateUserBadge inserts a user badge row. The unique (user_id, badge_id)
// key guarantees at most one award per user.
func (r *badgeRepository) CreateUserBadge(ctx context.Context, userBadge *models.UserBadge) error {
	query := `
		INSERT INTO user_badges (user_id, badge_id, earned_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		userBadge.UserID,
		userBadge.BadgeID,
		userBadge.EarnedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user badge: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	userBadge.ID = int(id)
	return nil
}

// Create inserts a new badge
func (r *badgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	query := `
		INSERT INTO badges (name, description, type, points)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		badge.Name,
		badge.Description,
		badge.Type,
		badge.Points,
	)
	if err != nil {
		return fmt.Errorf("failed to create badge: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	badge.ID = int(id)
	return nil
}

// GetByName retrieves a badge by name
func (r *badgeRepository) GetByName(ctx context.Context, name string) (*models.Badge, error) {
	query := `
		SELECT id, name, description, type, points
		FROM badges
		WHERE name = ?
		LIMIT 1
	`

	var badge models.Badge
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&badge.ID,
		&badge.Name,
		&badge.Description,
		&badge.Type,
		&badge.Points,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get badge by name: %w", err)
	}

	return &badge, nil
}
