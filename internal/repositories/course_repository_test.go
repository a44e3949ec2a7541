package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecampus/backend/internal/models"
)

func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func courseRows(ids ...int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "image_url", "level",
		"duration", "price", "enrollment_count", "instructor_id", "created_at",
	})
	for _, id := range ids {
		rows.AddRow(id, "Go for Backend Engineers", "Build services", "/uploads/go.png",
			models.CourseLevelIntermediate, "12h", 49, 120, 1, time.Now())
	}
	return rows
}

func TestCourseRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM courses`).
			WithArgs(5).
			WillReturnRows(courseRows(5))

		course, err := repo.GetByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, 5, course.ID)
		assert.Equal(t, "Go for Backend Engineers", course.Title)
		assert.Equal(t, models.CourseLevelIntermediate, course.Level)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM courses`).
			WithArgs(99).
			WillReturnRows(courseRows())

		_, err := repo.GetByID(context.Background(), 99)

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_GetAll(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`ORDER BY created_at DESC, id DESC`).
			WillReturnRows(courseRows(2, 1))

		courses, err := repo.GetAll(context.Background(), models.CourseFilter{}, nil)

		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.Equal(t, 2, courses[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("combined filter builds args in order", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		limit := 10
		offset := 20
		mock.ExpectQuery(`WHERE id IN \(\?,\?\) AND level = \? AND title LIKE \?`).
			WithArgs(3, 4, models.CourseLevelBeginner, "%go%", limit, offset).
			WillReturnRows(courseRows(3))

		filter := models.CourseFilter{
			Level:  models.CourseLevelBeginner,
			Search: "go",
			Limit:  &limit,
			Offset: &offset,
		}
		courses, err := repo.GetAll(context.Background(), filter, []int{3, 4})

		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("level all is not a filter", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM courses`).
			WillReturnRows(courseRows(1))

		courses, err := repo.GetAll(context.Background(), models.CourseFilter{Level: models.CourseLevelAll}, nil)

		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_GetNotEnrolled(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`WHERE NOT EXISTS`).
		WithArgs(7, 8).
		WillReturnRows(courseRows(6, 5))

	courses, err := repo.GetNotEnrolled(context.Background(), 7, 8)

	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_GetEnrolled(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`WHERE EXISTS`).
		WithArgs(7).
		WillReturnRows(courseRows(5))

	courses, err := repo.GetEnrolled(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 5, courses[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO courses`).
		WithArgs("New Course", "Desc", "/uploads/c.png", models.CourseLevelBeginner, "4h", 0, 0, 1).
		WillReturnResult(sqlmock.NewResult(9, 1))

	course := &models.Course{
		Title:        "New Course",
		Description:  "Desc",
		ImageURL:     "/uploads/c.png",
		Level:        models.CourseLevelBeginner,
		Duration:     "4h",
		InstructorID: 1,
	}
	err := repo.Create(context.Background(), course)

	require.NoError(t, err)
	assert.Equal(t, 9, course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE courses`).
			WithArgs("Renamed", 49, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), &models.Course{ID: 5, Title: "Renamed", Price: 49})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE courses`).
			WithArgs("Renamed", 0, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &models.Course{ID: 99, Title: "Renamed"})

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM courses`).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 5)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM courses`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 99)

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_IncrementEnrollmentCount(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`enrollment_count = enrollment_count \+ 1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementEnrollmentCount(context.Background(), 5)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_ExistsByTitle(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("Go for Backend Engineers").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByTitle(context.Background(), "Go for Backend Engineers")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
