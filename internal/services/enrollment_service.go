package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/models"
)

// EnrollmentRepository is the interface that wraps methods for Enrollment table data access
type EnrollmentRepository interface {
	// Get retrieves the enrollment for a (user, course) pair.
	//
	// Returns models.ErrNotFound if the user is not enrolled.
	Get(ctx context.Context, userID, courseID int) (*models.Enrollment, error)
	// Exists checks if the user is enrolled in the course
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// GetCourseIDsByUser retrieves the ids of courses the user is enrolled in
	GetCourseIDsByUser(ctx context.Context, userID int) ([]int, error)
	// Create inserts a new enrollment
	Create(ctx context.Context, enrollment *models.Enrollment) error
}

type enrollmentService struct {
	enrollmentRepo EnrollmentRepository
	courseRepo     CourseRepository
	logger         *zap.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(enrollmentRepo EnrollmentRepository, courseRepo CourseRepository, logger *zap.Logger) *enrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

// Enroll joins the user to a course. Enrolling twice returns the original
// enrollment without creating a duplicate row.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	existing, err := s.enrollmentRepo.Get(ctx, userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	enrollment := &models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     models.EnrollmentStatusActive,
		EnrolledAt: time.Now(),
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	// The counter is denormalized display data; a failed bump must not fail
	// the enrollment
	if err := s.courseRepo.IncrementEnrollmentCount(ctx, courseID); err != nil {
		s.logger.Warn("failed to increment enrollment count",
			zap.Int("courseId", courseID),
			zap.Error(err),
		)
	}

	return enrollment, nil
}
