package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

type instructorRepository struct {
	db *sql.DB
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(db *sql.DB) *instructorRepository {
	return &instructorRepository{
		db: db,
	}
}

// GetByID retrieves an instructor by ID
func (r *instructorRepository) GetByID(ctx context.Context, id int) (*models.Instructor, error) {
	query := `
		SELECT id, name, title, bio, course_count, student_count, review_score
		FROM instructors
		WHERE id = ?
		LIMIT 1
	`

	var instructor models.Instructor
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&instructor.ID,
		&instructor.Name,
		&instructor.Title,
		&instructor.Bio,
		&instructor.CourseCount,
		&instructor.StudentCount,
		&instructor.ReviewScore,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get instructor by id: %w", err)
	}

	return &instructor, nil
}

// Create inserts a new instructor
func (r *instructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (name, title, bio, course_count, student_count, review_score)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		instructor.Name,
		instructor.Title,
		instructor.Bio,
		instructor.CourseCount,
		instructor.StudentCount,
		instructor.ReviewScore,
	)
	if err != nil {
		return fmt.Errorf("failed to create instructor: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	instructor.ID = int(id)
	return nil
}

// ExistsByName checks if an instructor with the given name exists
func (r *instructorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM instructors WHERE name = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check instructor existence: %w", err)
	}
	return exists, nil
}
