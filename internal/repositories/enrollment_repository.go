package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{
		db: db,
	}
}

// Get retrieves the enrollment for a (user, course) pair
func (r *enrollmentRepository) Get(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, status, enrolled_at
		FROM enrollments
		WHERE user_id = ? AND course_id = ?
		LIMIT 1
	`

	var enrollment models.Enrollment
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Status,
		&enrollment.EnrolledAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return &enrollment, nil
}

// Exists checks if the user is enrolled in the course
func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = ? AND course_id = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment existence: %w", err)
	}
	return exists, nil
}

// GetCourseIDsByUser retrieves the ids of courses the user is enrolled in
func (r *enrollmentRepository) GetCourseIDsByUser(ctx context.Context, userID int) ([]int, error) {
	query := `
		SELECT course_id
		FROM enrollments
		WHERE user_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled course ids: %w", err)
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

// Create inserts a new enrollment. The unique (user_id, course_id) key makes
// a concurrent duplicate insert fail, which callers resolve by re-reading.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (user_id, course_id, status)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	enrollment.ID = int(id)
	return nil
}
