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

func TestLessonService_GetLesson(t *testing.T) {
	courseLessons := []models.Lesson{
		{ID: 10, ModuleID: 1, Title: "Intro", OrderIndex: 1},
		{ID: 11, ModuleID: 1, Title: "Setup", OrderIndex: 2},
		{ID: 12, ModuleID: 2, Title: "Basics", OrderIndex: 1},
	}

	tests := []struct {
		name           string
		lessonID       int
		lesson         *models.Lesson
		module         *models.Module
		enrolled       bool
		progress       *models.Progress
		expectedError  error
		expectedPrevID *int
		expectedNextID *int
		expectCompl    bool
	}{
		{
			name:           "first lesson has no prev",
			lessonID:       10,
			lesson:         &courseLessons[0],
			module:         &models.Module{ID: 1, CourseID: 5},
			enrolled:       true,
			expectedPrevID: nil,
			expectedNextID: intPtr(11),
		},
		{
			name:           "middle lesson has both neighbors",
			lessonID:       11,
			lesson:         &courseLessons[1],
			module:         &models.Module{ID: 1, CourseID: 5},
			enrolled:       true,
			expectedPrevID: intPtr(10),
			expectedNextID: intPtr(12),
		},
		{
			name:           "last lesson has no next",
			lessonID:       12,
			lesson:         &courseLessons[2],
			module:         &models.Module{ID: 2, CourseID: 5},
			enrolled:       true,
			progress:       &models.Progress{ID: 1, UserID: 7, LessonID: 12},
			expectedPrevID: intPtr(11),
			expectedNextID: nil,
			expectCompl:    true,
		},
		{
			name:          "not enrolled is forbidden",
			lessonID:      11,
			lesson:        &courseLessons[1],
			module:        &models.Module{ID: 1, CourseID: 5},
			enrolled:      false,
			expectedError: models.ErrForbidden,
		},
		{
			name:          "unknown lesson",
			lessonID:      99,
			lesson:        nil,
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(
				&mockLessonRepository{lesson: tt.lesson, lessons: courseLessons},
				&mockModuleRepository{module: tt.module},
				&mockEnrollmentRepository{exists: tt.enrolled},
				&mockProgressRepository{progress: tt.progress},
				&mockCompletionTracker{},
				zap.NewNop(),
			)

			resp, err := svc.GetLesson(context.Background(), tt.lessonID, 7)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 5, resp.CourseID)
			assert.Equal(t, tt.expectedPrevID, resp.PrevLessonID)
			assert.Equal(t, tt.expectedNextID, resp.NextLessonID)
			assert.Equal(t, tt.expectCompl, resp.Completed)
		})
	}
}

func TestLessonService_GetLesson_PreviewSkipsEnrollment(t *testing.T) {
	lesson := &models.Lesson{ID: 10, ModuleID: 1, Title: "Intro", IsPreview: true}
	svc := NewLessonService(
		&mockLessonRepository{lesson: lesson, lessons: []models.Lesson{*lesson}},
		&mockModuleRepository{module: &models.Module{ID: 1, CourseID: 5}},
		&mockEnrollmentRepository{exists: false},
		&mockProgressRepository{},
		&mockCompletionTracker{},
		zap.NewNop(),
	)

	resp, err := svc.GetLesson(context.Background(), 10, 7)

	require.NoError(t, err)
	assert.Equal(t, 5, resp.CourseID)
}

func TestLessonService_MarkComplete(t *testing.T) {
	lesson := &models.Lesson{ID: 10, ModuleID: 1}
	module := &models.Module{ID: 1, CourseID: 5}

	t.Run("creates progress row", func(t *testing.T) {
		progressRepo := &mockProgressRepository{completedCount: 2}
		tracker := &mockCompletionTracker{}
		svc := NewLessonService(
			&mockLessonRepository{lesson: lesson, counts: map[int]int{5: 3}},
			&mockModuleRepository{module: module},
			&mockEnrollmentRepository{exists: true},
			progressRepo,
			tracker,
			zap.NewNop(),
		)

		result, err := svc.MarkComplete(context.Background(), 7, 10)

		require.NoError(t, err)
		require.Len(t, progressRepo.created, 1)
		assert.Equal(t, 7, progressRepo.created[0].UserID)
		assert.Equal(t, 10, progressRepo.created[0].LessonID)
		assert.Equal(t, 5, progressRepo.created[0].CourseID)
		assert.Equal(t, models.ProgressStatusCompleted, progressRepo.created[0].Status)
		assert.Equal(t, 5, result.CourseID)
		assert.Equal(t, 67, result.CoursePct)
		assert.Empty(t, tracker.calls, "no course completion below 100%")
	})

	t.Run("repeat call returns existing row without insert", func(t *testing.T) {
		existing := &models.Progress{ID: 3, UserID: 7, LessonID: 10, CourseID: 5, CompletedAt: time.Now()}
		progressRepo := &mockProgressRepository{progress: existing, completedCount: 2}
		tracker := &mockCompletionTracker{}
		svc := NewLessonService(
			&mockLessonRepository{lesson: lesson, counts: map[int]int{5: 3}},
			&mockModuleRepository{module: module},
			&mockEnrollmentRepository{exists: true},
			progressRepo,
			tracker,
			zap.NewNop(),
		)

		result, err := svc.MarkComplete(context.Background(), 7, 10)

		require.NoError(t, err)
		assert.Same(t, existing, result.Progress)
		assert.Empty(t, progressRepo.created)
		assert.Empty(t, tracker.calls)
	})

	t.Run("course completion advances achievements", func(t *testing.T) {
		progressRepo := &mockProgressRepository{completedCount: 3}
		tracker := &mockCompletionTracker{}
		svc := NewLessonService(
			&mockLessonRepository{lesson: lesson, counts: map[int]int{5: 3}},
			&mockModuleRepository{module: module},
			&mockEnrollmentRepository{exists: true},
			progressRepo,
			tracker,
			zap.NewNop(),
		)

		result, err := svc.MarkComplete(context.Background(), 7, 10)

		require.NoError(t, err)
		assert.Equal(t, 100, result.CoursePct)
		assert.Equal(t, []int{7}, tracker.calls)
	})

	t.Run("tracker failure does not fail the request", func(t *testing.T) {
		progressRepo := &mockProgressRepository{completedCount: 3}
		tracker := &mockCompletionTracker{err: assert.AnError}
		svc := NewLessonService(
			&mockLessonRepository{lesson: lesson, counts: map[int]int{5: 3}},
			&mockModuleRepository{module: module},
			&mockEnrollmentRepository{exists: true},
			progressRepo,
			tracker,
			zap.NewNop(),
		)

		result, err := svc.MarkComplete(context.Background(), 7, 10)

		require.NoError(t, err)
		assert.Equal(t, 100, result.CoursePct)
	})

	t.Run("progress recompute failure does not fail the request", func(t *testing.T) {
		progressRepo := &mockProgressRepository{completedCount: 2}
		tracker := &mockCompletionTracker{}
		svc := NewLessonService(
			&mockLessonRepository{lesson: lesson, countErr: assert.AnError},
			&mockModuleRepository{module: module},
			&mockEnrollmentRepository{exists: true},
			progressRepo,
			tracker,
			zap.NewNop(),
		)

		result, err := svc.MarkComplete(context.Background(), 7, 10)

		require.NoError(t, err)
		require.Len(t, progressRepo.created, 1, "progress row stored despite recompute failure")
		assert.Equal(t, 10, progressRepo.created[0].LessonID)
		assert.Equal(t, 0, result.CoursePct)
		assert.Empty(t, tracker.calls, "no completion tracking on a failed recompute")
	})

	t.Run("recompute failure on repeat call returns existing row", func(t *testing.T) {
		existing := &models.Progress{ID: 3, UserID: 7, LessonID: 10, CourseID: 5, CompletedAt: time.Now()}
		progressRepo := &mockProgressRepository{progress: existing}
		svc := NewLessonService(
			&mockLessonRepository{lesson: lesson, countErr: assert.AnError},
			&mockModuleRepository{module: module},
			&mockEnrollmentRepository{exists: true},
			progressRepo,
			&mockCompletionTracker{},
			zap.NewNop(),
		)

		result, err := svc.MarkComplete(context.Background(), 7, 10)

		require.NoError(t, err)
		assert.Same(t, existing, result.Progress)
		assert.Empty(t, progressRepo.created)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		svc := NewLessonService(
			&mockLessonRepository{},
			&mockModuleRepository{module: module},
			&mockEnrollmentRepository{exists: true},
			&mockProgressRepository{},
			&mockCompletionTracker{},
			zap.NewNop(),
		)

		_, err := svc.MarkComplete(context.Background(), 7, 99)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func intPtr(v int) *int {
	return &v
}
