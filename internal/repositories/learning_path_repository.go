package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

type learningPathRepository struct {
	db *sql.DB
}

// NewLearningPathRepository creates a new learning path repository
func NewLearningPathRepository(db *sql.DB) *learningPathRepository {
	return &learningPathRepository{
		db: db,
	}
}

// GetAll retrieves all learning paths in display order
func (r *learningPathRepository) GetAll(ctx context.Context) ([]models.LearningPath, error) {
	query := `
		SELECT id, title, description, image_url, duration, order_index
		FROM learning_paths
		ORDER BY order_index, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query learning paths: %w", err)
	}
	defer rows.Close()

	var paths []models.LearningPath
	for rows.Next() {
		var path models.LearningPath
		err := rows.Scan(&path.ID, &path.Title, &path.Description, &path.ImageURL, &path.Duration, &path.OrderIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to scan learning path: %w", err)
		}
		paths = append(paths, path)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return paths, nil
}

// GetCourseIDs retrieves the ordered course ids of a learning path
func (r *learningPathRepository) GetCourseIDs(ctx context.Context, pathID int) ([]int, error) {
	query := `
		SELECT course_id
		FROM path_courses
		WHERE path_id = ?
		ORDER BY order_index, id
	`

	rows, err := r.db.QueryContext(ctx, query, pathID)
	if err != nil {
		return nil, fmt.Errorf("failed to query path course ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan course id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}

// Create inserts a new learning path
func (r *learningPathRepository) Create(ctx context.Context, path *models.LearningPath) error {
	query := `
		INSERT INTO learning_paths (title, description, image_url, duration, order_index)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		path.Title,
		path.Description,
		path.ImageURL,
		path.Duration,
		path.OrderIndex,
	)
	if err != nil {
		return fmt.Errorf("failed to create learning path: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	path.ID = int(id)
	return nil
}

// AddCourse links a course to a learning path if not already linked
func (r *learningPathRepository) AddCourse(ctx context.Context, pathID, courseID, orderIndex int) error {
	query := `
		INSERT IGNORE INTO path_courses (path_id, course_id, order_index)
		VALUES (?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, pathID, courseID, orderIndex); err != nil {
		return fmt.Errorf("failed to add path course: %w", err)
	}
	return nil
}

// ExistsByTitle checks if a learning path with the given title exists
func (r *learningPathRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM learning_paths WHERE title = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check learning path existence: %w", err)
	}
	return exists, nil
}
