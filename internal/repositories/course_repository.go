package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/codecampus/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

const courseColumns = "id, title, description, image_url, level, duration, price, enrollment_count, instructor_id, created_at"

func scanCourse(row interface{ Scan(...any) error }, course *models.Course) error {
	return row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.ImageURL,
		&course.Level,
		&course.Duration,
		&course.Price,
		&course.EnrollmentCount,
		&course.InstructorID,
		&course.CreatedAt,
	)
}

// GetByID retrieves a course by ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE id = ?
		LIMIT 1
	`, courseColumns)

	var course models.Course
	err := scanCourse(r.db.QueryRowContext(ctx, query, id), &course)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// GetAll retrieves courses matching the filter, newest first.
//
// "restrictIDs" narrows the result to the given course ids (category filter);
// a nil slice means no restriction. Callers must short-circuit an empty
// category match before reaching this method.
func (r *courseRepository) GetAll(ctx context.Context, filter models.CourseFilter, restrictIDs []int) ([]models.Course, error) {
	var whereClauses []string
	var args []any

	if len(restrictIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(restrictIDs)), ",")
		whereClauses = append(whereClauses, fmt.Sprintf("id IN (%s)", placeholders))
		for _, id := range restrictIDs {
			args = append(args, id)
		}
	}

	if filter.Level != "" && filter.Level != models.CourseLevelAll {
		whereClauses = append(whereClauses, "level = ?")
		args = append(args, filter.Level)
	}

	if filter.Search != "" {
		whereClauses = append(whereClauses, "title LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// MySQL has no standalone OFFSET, so an offset without a limit needs the
	// documented "huge limit" form.
	limitClause := ""
	switch {
	case filter.Limit != nil && filter.Offset != nil:
		limitClause = "LIMIT ? OFFSET ?"
		args = append(args, *filter.Limit, *filter.Offset)
	case filter.Limit != nil:
		limitClause = "LIMIT ?"
		args = append(args, *filter.Limit)
	case filter.Offset != nil:
		limitClause = "LIMIT 18446744073709551615 OFFSET ?"
		args = append(args, *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		%s
		ORDER BY created_at DESC, id DESC
		%s
	`, courseColumns, whereClause, limitClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := scanCourse(rows, &course); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetNotEnrolled retrieves the newest courses the user has no enrollment for
func (r *courseRepository) GetNotEnrolled(ctx context.Context, userID, limit int) ([]models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses c
		WHERE NOT EXISTS (
			SELECT 1 FROM enrollments e
			WHERE e.course_id = c.id AND e.user_id = ?
		)
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ?
	`, courseColumns)

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query not enrolled courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := scanCourse(rows, &course); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetEnrolled retrieves courses the user is enrolled in
func (r *courseRepository) GetEnrolled(ctx context.Context, userID int) ([]models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses c
		WHERE EXISTS (
			SELECT 1 FROM enrollments e
			WHERE e.course_id = c.id AND e.user_id = ?
		)
		ORDER BY c.created_at DESC, c.id DESC
	`, courseColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := scanCourse(rows, &course); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// Create inserts a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, description, image_url, level, duration, price, enrollment_count, instructor_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		course.ImageURL,
		course.Level,
		course.Duration,
		course.Price,
		course.EnrollmentCount,
		course.InstructorID,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update updates a course (partial update)
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	var setParts []string
	var args []any

	if course.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, course.Title)
	}
	if course.Description != "" {
		setParts = append(setParts, "description = ?")
		args = append(args, course.Description)
	}
	if course.ImageURL != "" {
		setParts = append(setParts, "image_url = ?")
		args = append(args, course.ImageURL)
	}
	if course.Level != "" {
		setParts = append(setParts, "level = ?")
		args = append(args, course.Level)
	}
	if course.Duration != "" {
		setParts = append(setParts, "duration = ?")
		args = append(args, course.Duration)
	}
	if course.Price >= 0 {
		setParts = append(setParts, "price = ?")
		args = append(args, course.Price)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE courses
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, course.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
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

// Delete deletes a course by ID
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM courses WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
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

// IncrementEnrollmentCount bumps the denormalized enrollment counter
func (r *courseRepository) IncrementEnrollmentCount(ctx context.Context, id int) error {
	query := "UPDATE courses SET enrollment_count = enrollment_count + 1 WHERE id = ?"

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment enrollment count: %w", err)
	}
	return nil
}

// ExistsByTitle checks if a course with the given title exists
func (r *courseRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM courses WHERE title = ?)"
	var exists bool
	err := r.db.QueryRowContext(ctx, query, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return exists, nil
}
