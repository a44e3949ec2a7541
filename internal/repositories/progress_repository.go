package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/codecampus/backend/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// Get retrieves the progress row for a (user, lesson) pair
func (r *progressRepository) Get(ctx context.Context, userID, lessonID int) (*models.Progress, error) {
	query := `
		SELECT id, user_id, lesson_id, course_id, status, completed_at
		FROM progress
		WHERE user_id = ? AND lesson_id = ?
		LIMIT 1
	`

	var progress models.Progress
	err := r.db.QueryRowContext(ctx, query, userID, lessonID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.LessonID,
		&progress.CourseID,
		&progress.Status,
		&progress.CompletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return &progress, nil
}

// Create inserts a new progress row. Progress rows are immutable once
// created; the unique (user_id, lesson_id) key resolves duplicate-completion
// races to a single row.
func (r *progressRepository) Create(ctx context.Context, progress *models.Progress) error {
	query := `
		INSERT INTO progress (user_id, lesson_id, course_id, status, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		progress.UserID,
		progress.LessonID,
		progress.CourseID,
		progress.Status,
		progress.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create progress: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	progress.ID = int(id)
	return nil
}

// CountCompletedByCourse counts the user's completed lessons in a course
func (r *progressRepository) CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM progress
		WHERE user_id = ? AND course_id = ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}
	return count, nil
}

// CountCompletedGrouped counts the user's completed lessons per course
func (r *progressRepository) CountCompletedGrouped(ctx context.Context, userID int, courseIDs []int) (map[int]int, error) {
	if len(courseIDs) == 0 {
		return map[int]int{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(courseIDs)), ",")
	query := fmt.Sprintf(`
		SELECT course_id, COUNT(*)
		FROM progress
		WHERE user_id = ? AND course_id IN (%s)
		GROUP BY course_id
	`, placeholders)

	args := make([]any, 0, len(courseIDs)+1)
	args = append(args, userID)
	for _, id := range courseIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed lessons: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var courseID, count int
		if err := rows.Scan(&courseID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan progress count: %w", err)
		}
		counts[courseID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// GetCompletedLessonIDs retrieves the set of lesson ids the user completed
// in a course
func (r *progressRepository) GetCompletedLessonIDs(ctx context.Context, userID, courseID int) (map[int]bool, error) {
	query := `
		SELECT lesson_id
		FROM progress
		WHERE user_id = ? AND course_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed lesson ids: %w", err)
	}
	defer rows.Close()

	completed := make(map[int]bool)
	for rows.Next() {
		var lessonID int
		if err := rows.Scan(&lessonID); err != nil {
			return nil, fmt.Errorf("failed to scan lesson id: %w", err)
		}
		completed[lessonID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return completed, nil
}
