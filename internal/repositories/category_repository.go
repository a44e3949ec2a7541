package repositories

import (
	"context"
	"fmt"
	"strings"

	"database/sql"

	"github.com/codecampus/backend/internal/models"
)

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *categoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// GetAll retrieves all categories ordered by name
func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT id, name, description, icon_name
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.IconName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

// GetCourseIDs retrieves the ids of courses belonging to a category
func (r *categoryRepository) GetCourseIDs(ctx context.Context, categoryID int) ([]int, error) {
	query := `
		SELECT course_id
		FROM course_categories
		WHERE category_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course ids: %w", err)
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

// GetByCourseIDs retrieves categories grouped by course id
func (r *categoryRepository) GetByCourseIDs(ctx context.Context, courseIDs []int) (map[int][]models.Category, error) {
	if len(courseIDs) == 0 {
		return map[int][]models.Category{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(courseIDs)), ",")
	query := fmt.Sprintf(`
		SELECT cc.course_id, c.id, c.name, c.description, c.icon_name
		FROM course_categories cc
		JOIN categories c ON c.id = cc.category_id
		WHERE cc.course_id IN (%s)
		ORDER BY c.name
	`, placeholders)

	args := make([]any, len(courseIDs))
	for i, id := range courseIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query course categories: %w", err)
	}
	defer rows.Close()

	result := make(map[int][]models.Category)
	for rows.Next() {
		var courseID int
		var category models.Category
		err := rows.Scan(&courseID, &category.ID, &category.Name, &category.Description, &category.IconName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course category: %w", err)
		}
		result[courseID] = append(result[courseID], category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// AddCourseCategory links a course to a category if not already linked
func (r *categoryRepository) AddCourseCategory(ctx context.Context, courseID, categoryID int) error {
	query := `
		INSERT IGNORE INTO course_categories (course_id, category_id)
		VALUES (?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, courseID, categoryID); err != nil {
		return fmt.Errorf("failed to add course category: %w", err)
	}
	return nil
}

// RemoveCourseCategories unlinks all categories from a course
func (r *categoryRepository) RemoveCourseCategories(ctx context.Context, courseID int) error {
	query := "DELETE FROM course_categories WHERE course_id = ?"

	if _, err := r.db.ExecContext(ctx, query, courseID); err != nil {
		return fmt.Errorf("failed to remove course categories: %w", err)
	}
	return nil
}

// Create inserts a new category
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, description, icon_name)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, category.Name, category.Description, category.IconName)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	category.ID = int(id)
	return nil
}

// ExistsByName checks if a category with the given name exists
func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM categories WHERE name = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}
