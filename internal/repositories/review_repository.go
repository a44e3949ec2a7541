package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codecampus/backend/internal/models"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{
		db: db,
	}
}

// GetByCourseID retrieves reviews for a course, newest first
func (r *reviewRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Review, error) {
	query := `
		SELECT id, user_id, course_id, rating, comment, created_at
		FROM reviews
		WHERE course_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(&review.ID, &review.UserID, &review.CourseID, &review.Rating, &review.Comment, &review.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}

// Create inserts a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (user_id, course_id, rating, comment)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		review.UserID,
		review.CourseID,
		review.Rating,
		review.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	review.ID = int(id)
	return nil
}
