package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/models"
)

type mockFileStorage struct {
	savedURL string
	saveErr  error
	saved    []string
	deleted  []string
	delErr   error
}

func (m *mockFileStorage) Save(file io.Reader, originalFilename string) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	io.Copy(io.Discard, file)
	m.saved = append(m.saved, originalFilename)
	return m.savedURL, nil
}

func (m *mockFileStorage) Delete(urlPath string) error {
	m.deleted = append(m.deleted, urlPath)
	return m.delErr
}

func newAdminService(
	courseRepo *mockCourseRepository,
	categoryRepo *mockCategoryRepository,
	moduleRepo *mockModuleRepository,
	lessonRepo *mockLessonRepository,
	storage *mockFileStorage,
) *adminCourseService {
	return NewAdminCourseService(
		courseRepo,
		categoryRepo,
		&mockInstructorRepository{instructor: &models.Instructor{ID: 1, Name: "Elena Markova"}},
		moduleRepo,
		lessonRepo,
		storage,
		zap.NewNop(),
	)
}

func TestAdminCourseService_CreateCourse(t *testing.T) {
	validReq := func() *models.CreateCourseRequest {
		return &models.CreateCourseRequest{
			Title:        "  Go for Backend Engineers  ",
			Description:  "A practical course",
			Level:        models.CourseLevelBeginner,
			Duration:     "24 hours",
			Price:        49,
			InstructorID: 1,
			CategoryIDs:  []int{3, 4},
		}
	}

	t.Run("creates course with categories", func(t *testing.T) {
		courseRepo := &mockCourseRepository{}
		categoryRepo := &mockCategoryRepository{}
		svc := newAdminService(courseRepo, categoryRepo, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

		course, err := svc.CreateCourse(context.Background(), validReq(), nil, "", nil, "")

		require.NoError(t, err)
		assert.Equal(t, "Go for Backend Engineers", course.Title)
		assert.Empty(t, course.ImageURL)
		require.Len(t, courseRepo.created, 1)
		assert.Equal(t, [][2]int{{1, 3}, {1, 4}}, categoryRepo.addedAssignments)
	})

	t.Run("stores uploaded image", func(t *testing.T) {
		storage := &mockFileStorage{savedURL: "/uploads/abc.png"}
		svc := newAdminService(&mockCourseRepository{}, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, storage)

		course, err := svc.CreateCourse(context.Background(), validReq(),
			strings.NewReader("png bytes"), "cover.png", nil, "")

		require.NoError(t, err)
		assert.Equal(t, "/uploads/abc.png", course.ImageURL)
		assert.Equal(t, []string{"cover.png"}, storage.saved)
	})

	t.Run("expands content file into modules and lessons", func(t *testing.T) {
		moduleRepo := &mockModuleRepository{}
		lessonRepo := &mockLessonRepository{}
		svc := newAdminService(&mockCourseRepository{}, &mockCategoryRepository{}, moduleRepo, lessonRepo, &mockFileStorage{})

		content := "# Getting Started\n## Why Go\nFast compiles.\n## Setup\n# The Language\n## Structs"
		_, err := svc.CreateCourse(context.Background(), validReq(),
			nil, "", strings.NewReader(content), "course.md")

		require.NoError(t, err)
		require.Len(t, moduleRepo.created, 2)
		assert.Equal(t, "Getting Started", moduleRepo.created[0].Title)
		assert.Equal(t, 1, moduleRepo.created[0].OrderIndex)
		assert.Equal(t, 2, moduleRepo.created[1].OrderIndex)
		require.Len(t, lessonRepo.created, 3)
		assert.Equal(t, "Why Go", lessonRepo.created[0].Title)
		assert.Equal(t, models.LessonTypeText, lessonRepo.created[0].Type)
		require.NotNil(t, lessonRepo.created[0].Content)
		assert.Equal(t, "Fast compiles.", *lessonRepo.created[0].Content)
		assert.Nil(t, lessonRepo.created[1].Content)
	})

	t.Run("invalid lesson type in content", func(t *testing.T) {
		svc := newAdminService(&mockCourseRepository{}, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

		content := `{"modules":[{"title":"M1","lessons":[{"title":"L1","type":"hologram"}]}]}`
		_, err := svc.CreateCourse(context.Background(), validReq(),
			nil, "", strings.NewReader(content), "course.json")

		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*models.CreateCourseRequest)
		}{
			{"empty title", func(r *models.CreateCourseRequest) { r.Title = "   " }},
			{"bad level", func(r *models.CreateCourseRequest) { r.Level = "expert" }},
			{"negative price", func(r *models.CreateCourseRequest) { r.Price = -1 }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				courseRepo := &mockCourseRepository{}
				svc := newAdminService(courseRepo, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

				req := validReq()
				tt.mutate(req)
				_, err := svc.CreateCourse(context.Background(), req, nil, "", nil, "")

				assert.ErrorIs(t, err, models.ErrValidation)
				assert.Empty(t, courseRepo.created)
			})
		}
	})

	t.Run("unknown instructor", func(t *testing.T) {
		svc := NewAdminCourseService(
			&mockCourseRepository{},
			&mockCategoryRepository{},
			&mockInstructorRepository{},
			&mockModuleRepository{},
			&mockLessonRepository{},
			&mockFileStorage{},
			zap.NewNop(),
		)

		_, err := svc.CreateCourse(context.Background(), validReq(), nil, "", nil, "")

		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestAdminCourseService_UpdateCourse(t *testing.T) {
	existing := &models.Course{ID: 5, Title: "Old Title", Price: 49, ImageURL: "/uploads/old.png"}

	t.Run("partial update keeps price", func(t *testing.T) {
		courseRepo := &mockCourseRepository{course: existing}
		svc := newAdminService(courseRepo, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

		_, err := svc.UpdateCourse(context.Background(), 5,
			&models.UpdateCourseRequest{Title: "New Title"}, nil, "")

		require.NoError(t, err)
		require.Len(t, courseRepo.updated, 1)
		assert.Equal(t, "New Title", courseRepo.updated[0].Title)
		assert.Equal(t, 49, courseRepo.updated[0].Price, "price is preserved when omitted")
	})

	t.Run("explicit price applies", func(t *testing.T) {
		courseRepo := &mockCourseRepository{course: existing}
		svc := newAdminService(courseRepo, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

		price := 0
		_, err := svc.UpdateCourse(context.Background(), 5,
			&models.UpdateCourseRequest{Price: &price}, nil, "")

		require.NoError(t, err)
		require.Len(t, courseRepo.updated, 1)
		assert.Zero(t, courseRepo.updated[0].Price)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		svc := newAdminService(&mockCourseRepository{course: existing}, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

		price := -1
		_, err := svc.UpdateCourse(context.Background(), 5,
			&models.UpdateCourseRequest{Price: &price}, nil, "")

		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("replacement image deletes old one", func(t *testing.T) {
		storage := &mockFileStorage{savedURL: "/uploads/new.png"}
		courseRepo := &mockCourseRepository{course: existing}
		svc := newAdminService(courseRepo, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, storage)

		_, err := svc.UpdateCourse(context.Background(), 5,
			&models.UpdateCourseRequest{}, strings.NewReader("png bytes"), "cover.png")

		require.NoError(t, err)
		assert.Equal(t, []string{"/uploads/old.png"}, storage.deleted)
		require.Len(t, courseRepo.updated, 1)
		assert.Equal(t, "/uploads/new.png", courseRepo.updated[0].ImageURL)
	})

	t.Run("category ids replace assignment", func(t *testing.T) {
		categoryRepo := &mockCategoryRepository{}
		svc := newAdminService(&mockCourseRepository{course: existing}, categoryRepo, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

		_, err := svc.UpdateCourse(context.Background(), 5,
			&models.UpdateCourseRequest{CategoryIDs: []int{2}}, nil, "")

		require.NoError(t, err)
		assert.Equal(t, []int{5}, categoryRepo.removedCourses)
		assert.Equal(t, [][2]int{{5, 2}}, categoryRepo.addedAssignments)
	})

	t.Run("nil category ids leave assignment alone", func(t *testing.T) {
		categoryRepo := &mockCategoryRepository{}
		svc := newAdminService(&mockCourseRepository{course: existing}, categoryRepo, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

		_, err := svc.UpdateCourse(context.Background(), 5, &models.UpdateCourseRequest{}, nil, "")

		require.NoError(t, err)
		assert.Empty(t, categoryRepo.removedCourses)
		assert.Empty(t, categoryRepo.addedAssignments)
	})

	t.Run("unknown course", func(t *testing.T) {
		svc := newAdminService(&mockCourseRepository{}, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

		_, err := svc.UpdateCourse(context.Background(), 99, &models.UpdateCourseRequest{}, nil, "")

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestAdminCourseService_DeleteCourse(t *testing.T) {
	t.Run("deletes course and image", func(t *testing.T) {
		courseRepo := &mockCourseRepository{course: &models.Course{ID: 5, ImageURL: "/uploads/old.png"}}
		storage := &mockFileStorage{}
		svc := newAdminService(courseRepo, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, storage)

		err := svc.DeleteCourse(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, []int{5}, courseRepo.deleted)
		assert.Equal(t, []string{"/uploads/old.png"}, storage.deleted)
	})

	t.Run("image delete failure is swallowed", func(t *testing.T) {
		courseRepo := &mockCourseRepository{course: &models.Course{ID: 5, ImageURL: "/uploads/old.png"}}
		storage := &mockFileStorage{delErr: assert.AnError}
		svc := newAdminService(courseRepo, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, storage)

		err := svc.DeleteCourse(context.Background(), 5)

		assert.NoError(t, err)
	})

	t.Run("unknown course", func(t *testing.T) {
		svc := newAdminService(&mockCourseRepository{}, &mockCategoryRepository{}, &mockModuleRepository{}, &mockLessonRepository{}, &mockFileStorage{})

		err := svc.DeleteCourse(context.Background(), 99)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
