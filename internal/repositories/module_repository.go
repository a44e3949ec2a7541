package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

type moduleRepository struct {
	db *sql.DB
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *sql.DB) *moduleRepository {
	return &moduleRepository{
		db: db,
	}
}

// GetByID retrieves a module by ID
func (r *moduleRepository) GetByID(ctx context.Context, id int) (*models.Module, error) {
	query := `
		SELECT id, course_id, title, description, order_index
		FROM modules
		WHERE id = ?
		LIMIT 1
	`

	var module models.Module
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&module.ID,
		&module.CourseID,
		&module.Title,
		&module.Description,
		&module.OrderIndex,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module by id: %w", err)
	}

	return &module, nil
}

// GetByCourseID retrieves the ordered modules of a course
func (r *moduleRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Module, error) {
	query := `
		SELECT id, course_id, title, description, order_index
		FROM modules
		WHERE course_id = ?
		ORDER BY order_index, id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var module models.Module
		err := rows.Scan(&module.ID, &module.CourseID, &module.Title, &module.Description, &module.OrderIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, module)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return modules, nil
}

// Create inserts a new module
func (r *moduleRepository) Create(ctx context.Context, module *models.Module) error {
	query := `
		INSERT INTO modules (course_id, title, description, order_index)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		module.CourseID,
		module.Title,
		module.Description,
		module.OrderIndex,
	)
	if err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	module.ID = int(id)
	return nil
}

// ExistsByCourseID checks if a course already has modules
func (r *moduleRepository) ExistsByCourseID(ctx context.Context, courseID int) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM modules WHERE course_id = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check module existence: %w", err)
	}
	return exists, nil
}
