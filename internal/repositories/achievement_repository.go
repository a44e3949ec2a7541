package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

type achievementRepository struct {
	db *sql.DB
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *sql.DB) *achievementRepository {
	return &achievementRepository{
		db: db,
	}
}

// GetByID retrieves an achievement by ID
func (r *achievementRepository) GetByID(ctx context.Context, id int) (*models.Achievement, error) {
	query := `
		SELECT id, name, description, type, required_count, badge_id
		FROM achievements
		WHERE id = ?
		LIMIT 1
	`

	var achievement models.Achievement
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&achievement.ID,
		&achievement.Name,
		&achievement.Description,
		&achievement.Type,
		&achievement.RequiredCount,
		&achievement.BadgeID,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement by id: %w", err)
	}

	return &achievement, nil
}

// GetByType retrieves all achievements of the given type
func (r *achievementRepository) GetByType(ctx context.Context, achievementType models.AchievementType) ([]models.Achievement, error) {
	query := `
		SELECT id, name, description, type, required_count, badge_id
		FROM achievements
		WHERE type = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, achievementType)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var achievement models.Achievement
		err := rows.Scan(
			&achievement.ID,
			&achievement.Name,
			&achievement.Description,
			&achievement.Type,
			&achievement.RequiredCount,
			&achievement.BadgeID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, achievement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return achievements, nil
}

// GetAllWithUser retrieves all achievements annotated with the user's progress
func (r *achievementRepository) GetAllWithUser(ctx context.Context, userID int) ([]models.UserAchievementItem, error) {
	query := `
		SELECT a.id, a.name, a.description, a.type, a.required_count, a.badge_id,
			COALESCE(ua.progress, 0), COALESCE(ua.completed, FALSE), ua.completed_at
		FROM achievements a
		LEFT JOIN user_achievements ua ON ua.achievement_id = a.id AND ua.user_id = ?
		ORDER BY a.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var items []models.UserAchievementItem
	for rows.Next() {
		var item models.UserAchievementItem
		var completedAt sql.NullTime
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Type,
			&item.RequiredCount,
			&item.BadgeID,
			&item.Progress,
			&item.Completed,
			&completedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		if completedAt.Valid {
			item.CompletedAt = &completedAt.Time
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// GetUserAchievement retrieves the progress row for a (user, achievement) pair
func (r *achievementRepository) GetUserAchievement(ctx context.Context, userID, achievementID int) (*models.UserAchievement, error) {
	query := `
		SELECT id, user_id, achievement_id, progress, completed, completed_at
		FROM user_achievements
		WHERE user_id = ? AND achievement_id = ?
		LIMIT 1
	`

	var ua models.UserAchievement
	var completedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID, achievementID).Scan(
		&ua.ID,
		&ua.UserID,
		&ua.AchievementID,
		&ua.Progress,
		&ua.Completed,
		&completedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user achievement: %w", err)
	}

	if completedAt.Valid {
		ua.CompletedAt = &completedAt.Time
	}
	return &ua, nil
}

// CreateUserAchievement inserts a new user achievement row
func (r *achievementRepository) CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id, progress, completed, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		ua.UserID,
		ua.AchievementID,
		ua.Progress,
		ua.Completed,
		ua.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user achievement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	ua.ID = int(id)
	return nil
}

// UpdateUserAchievement updates progress, completed and completed_at of a row
func (r *achievementRepository) UpdateUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	query := `
		UPDATE user_achievements
		SET progress = ?, completed = ?, completed_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		ua.Progress,
		ua.Completed,
		ua.CompletedAt,
		ua.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user achievement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Create inserts a new achievement
func (r *achievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	query := `
		INSERT INTO achievements (name, description, type, required_count, badge_id)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		achievement.Name,
		achievement.Description,
		achievement.Type,
		achievement.RequiredCount,
		achievement.BadgeID,
	)
	if err != nil {
		return fmt.Errorf("failed to create achievement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	achievement.ID = int(id)
	return nil
}

// ExistsByName checks if an achievement with the given name exists
func (r *achievementRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM achievements WHERE name = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check achievement existence: %w", err)
	}
	return exists, nil
}
