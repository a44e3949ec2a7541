package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecampus/backend/internal/models"
)

func setupLessonTestRepository(t *testing.T) (*lessonRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func lessonRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "module_id", "title", "description", "type",
		"content", "video_url", "duration", "order_index", "is_preview",
	})
}

func TestLessonRepository_GetByID(t *testing.T) {
	t.Run("success with nullable columns", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		rows := lessonRows().
			AddRow(10, 1, "Why Go", "", models.LessonTypeVideo, nil, "/media/why-go.mp4", "00:08:30", 1, true)
		mock.ExpectQuery(`FROM lessons`).
			WithArgs(10).
			WillReturnRows(rows)

		lesson, err := repo.GetByID(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, "Why Go", lesson.Title)
		assert.Nil(t, lesson.Content)
		require.NotNil(t, lesson.VideoURL)
		assert.Equal(t, "/media/why-go.mp4", *lesson.VideoURL)
		assert.True(t, lesson.IsPreview)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`FROM lessons`).
			WithArgs(99).
			WillReturnRows(lessonRows())

		_, err := repo.GetByID(context.Background(), 99)

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLessonRepository_GetByCourseID(t *testing.T) {
	repo, mock, cleanup := setupLessonTestRepository(t)
	defer cleanup()

	rows := lessonRows().
		AddRow(10, 1, "Why Go", "", models.LessonTypeVideo, nil, nil, nil, 1, false).
		AddRow(11, 1, "Setup", "", models.LessonTypeText, "body", nil, nil, 2, false).
		AddRow(12, 2, "Structs", "", models.LessonTypeText, nil, nil, nil, 1, false)
	mock.ExpectQuery(`ORDER BY m.order_index, m.id, l.order_index, l.id`).
		WithArgs(5).
		WillReturnRows(rows)

	lessons, err := repo.GetByCourseID(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, 10, lessons[0].ID)
	assert.Equal(t, 12, lessons[2].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_CountGroupedByCourse(t *testing.T) {
	t.Run("counts per course", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"course_id", "count"}).
			AddRow(5, 3).
			AddRow(6, 1)
		mock.ExpectQuery(`GROUP BY m.course_id`).
			WithArgs(5, 6).
			WillReturnRows(rows)

		counts, err := repo.CountGroupedByCourse(context.Background(), []int{5, 6})

		require.NoError(t, err)
		assert.Equal(t, map[int]int{5: 3, 6: 1}, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty id list skips the query", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		counts, err := repo.CountGroupedByCourse(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLessonRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupLessonTestRepository(t)
	defer cleanup()

	content := "lesson body"
	mock.ExpectExec(`INSERT INTO lessons`).
		WithArgs(1, "Setup", "", models.LessonTypeText, content, nil, nil, 2, false).
		WillReturnResult(sqlmock.NewResult(11, 1))

	lesson := &models.Lesson{
		ModuleID:   1,
		Title:      "Setup",
		Type:       models.LessonTypeText,
		Content:    &content,
		OrderIndex: 2,
	}
	err := repo.Create(context.Background(), lesson)

	require.NoError(t, err)
	assert.Equal(t, 11, lesson.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
