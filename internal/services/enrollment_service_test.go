package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/models"
)

func TestEnrollmentService_Enroll(t *testing.T) {
	course := &models.Course{ID: 5, Title: "Go for Backend Engineers"}

	t.Run("creates enrollment and bumps counter", func(t *testing.T) {
		courseRepo := &mockCourseRepository{course: course}
		enrollmentRepo := &mockEnrollmentRepository{}
		svc := NewEnrollmentService(enrollmentRepo, courseRepo, zap.NewNop())

		enrollment, err := svc.Enroll(context.Background(), 7, 5)

		require.NoError(t, err)
		assert.Equal(t, 7, enrollment.UserID)
		assert.Equal(t, 5, enrollment.CourseID)
		assert.Equal(t, models.EnrollmentStatusActive, enrollment.Status)
		assert.False(t, enrollment.EnrolledAt.IsZero())
		assert.Len(t, enrollmentRepo.created, 1)
		assert.Equal(t, []int{5}, courseRepo.incremented)
	})

	t.Run("repeat enroll returns existing row", func(t *testing.T) {
		existing := &models.Enrollment{ID: 3, UserID: 7, CourseID: 5, EnrolledAt: time.Now().Add(-time.Hour)}
		courseRepo := &mockCourseRepository{course: course}
		enrollmentRepo := &mockEnrollmentRepository{enrollment: existing}
		svc := NewEnrollmentService(enrollmentRepo, courseRepo, zap.NewNop())

		enrollment, err := svc.Enroll(context.Background(), 7, 5)

		require.NoError(t, err)
		assert.Same(t, existing, enrollment)
		assert.Empty(t, enrollmentRepo.created)
		assert.Empty(t, courseRepo.incremented, "counter must not be bumped twice")
	})

	t.Run("unknown course", func(t *testing.T) {
		svc := NewEnrollmentService(&mockEnrollmentRepository{}, &mockCourseRepository{}, zap.NewNop())

		_, err := svc.Enroll(context.Background(), 7, 99)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("counter failure does not fail the enrollment", func(t *testing.T) {
		courseRepo := &mockCourseRepository{course: course, incrementErr: assert.AnError}
		svc := NewEnrollmentService(&mockEnrollmentRepository{}, courseRepo, zap.NewNop())

		enrollment, err := svc.Enroll(context.Background(), 7, 5)

		require.NoError(t, err)
		assert.NotNil(t, enrollment)
	})
}
