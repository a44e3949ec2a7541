package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/models"
)

// maxContentFileSize bounds an uploaded structured-content file
const maxContentFileSize = 2 << 20

// FileStorage is the interface that wraps methods for uploaded file persistence
type FileStorage interface {
	// Save stores the file under a generated name and returns its public URL path
	Save(file io.Reader, originalFilename string) (string, error)
	// Delete removes a stored file by its public URL path
	Delete(urlPath string) error
}

type adminCourseService struct {
	courseRepo     CourseRepository
	categoryRepo   CategoryRepository
	instructorRepo InstructorRepository
	moduleRepo     ModuleRepository
	lessonRepo     LessonRepository
	fileStorage    FileStorage
	logger         *zap.Logger
}

// NewAdminCourseService creates a new admin course service
func NewAdminCourseService(
	courseRepo CourseRepository,
	categoryRepo CategoryRepository,
	instructorRepo InstructorRepository,
	moduleRepo ModuleRepository,
	lessonRepo LessonRepository,
	fileStorage FileStorage,
	logger *zap.Logger,
) *adminCourseService {
	return &adminCourseService{
		courseRepo:     courseRepo,
		categoryRepo:   categoryRepo,
		instructorRepo: instructorRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

// GetCourses retrieves the full catalog with categories for the admin console
func (s *adminCourseService) GetCourses(ctx context.Context) ([]models.CourseListItem, error) {
	courses, err := s.courseRepo.GetAll(ctx, models.CourseFilter{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	if len(courses) == 0 {
		return []models.CourseListItem{}, nil
	}

	courseIDs := make([]int, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}
	categories, err := s.categoryRepo.GetByCourseIDs(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	lessonCounts, err := s.lessonRepo.CountGroupedByCourse(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}

	items := make([]models.CourseListItem, 0, len(courses))
	for _, course := range courses {
		courseCategories := categories[course.ID]
		if courseCategories == nil {
			courseCategories = []models.Category{}
		}
		items = append(items, models.CourseListItem{
			Course:       course,
			Categories:   courseCategories,
			LessonsCount: lessonCounts[course.ID],
		})
	}
	return items, nil
}

// CreateCourse creates a course from the admin form. "imageFile" and
// "contentFile" are optional multipart parts; the content file (JSON or
// heading-delimited text) is expanded into modules and lessons.
func (s *adminCourseService) CreateCourse(
	ctx context.Context,
	req *models.CreateCourseRequest,
	imageFile io.Reader, imageFilename string,
	contentFile io.Reader, contentFilename string,
) (*models.Course, error) {
	if err := s.validateCourseRequest(ctx, req); err != nil {
		return nil, err
	}

	var imageURL string
	if imageFile != nil {
		url, err := s.fileStorage.Save(imageFile, imageFilename)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		imageURL = url
	}

	course := &models.Course{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		ImageURL:     imageURL,
		Level:        req.Level,
		Duration:     strings.TrimSpace(req.Duration),
		Price:        req.Price,
		InstructorID: req.InstructorID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	for _, categoryID := range req.CategoryIDs {
		if err := s.categoryRepo.AddCourseCategory(ctx, course.ID, categoryID); err != nil {
			return nil, fmt.Errorf("failed to assign category: %w", err)
		}
	}

	if contentFile != nil {
		if err := s.importContent(ctx, course.ID, contentFile, contentFilename); err != nil {
			return nil, err
		}
	}

	return course, nil
}

// UpdateCourse applies a partial update to a course. A new image replaces the
// stored one; a non-nil CategoryIDs slice replaces the category assignment.
func (s *adminCourseService) UpdateCourse(
	ctx context.Context,
	courseID int,
	req *models.UpdateCourseRequest,
	imageFile io.Reader, imageFilename string,
) (*models.Course, error) {
	existing, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if req.Level != "" && !req.Level.Valid() {
		return nil, fmt.Errorf("%w: invalid course level %q", models.ErrValidation, req.Level)
	}

	course := &models.Course{
		ID:          courseID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Level:       req.Level,
		Duration:    strings.TrimSpace(req.Duration),
		Price:       existing.Price,
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", models.ErrValidation)
		}
		course.Price = *req.Price
	}

	if imageFile != nil {
		url, err := s.fileStorage.Save(imageFile, imageFilename)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		course.ImageURL = url
		if existing.ImageURL != "" {
			if err := s.fileStorage.Delete(existing.ImageURL); err != nil {
				s.logger.Warn("failed to delete replaced image",
					zap.String("imageUrl", existing.ImageURL),
					zap.Error(err),
				)
			}
		}
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	if req.CategoryIDs != nil {
		if err := s.categoryRepo.RemoveCourseCategories(ctx, courseID); err != nil {
			return nil, fmt.Errorf("failed to clear categories: %w", err)
		}
		for _, categoryID := range req.CategoryIDs {
			if err := s.categoryRepo.AddCourseCategory(ctx, courseID, categoryID); err != nil {
				return nil, fmt.Errorf("failed to assign category: %w", err)
			}
		}
	}

	updated, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated course: %w", err)
	}
	return updated, nil
}

// DeleteCourse deletes a course and its stored image
func (s *adminCourseService) DeleteCourse(ctx context.Context, courseID int) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if course.ImageURL != "" {
		if err := s.fileStorage.Delete(course.ImageURL); err != nil {
			s.logger.Warn("failed to delete course image",
				zap.String("imageUrl", course.ImageURL),
				zap.Error(err),
			)
		}
	}
	return nil
}

// importContent expands a parsed content file into module and lesson rows
func (s *adminCourseService) importContent(ctx context.Context, courseID int, contentFile io.Reader, contentFilename string) error {
	data, err := io.ReadAll(io.LimitReader(contentFile, maxContentFileSize))
	if err != nil {
		return fmt.Errorf("failed to read content file: %w", err)
	}

	content, err := parseCourseContent(data, contentFilename)
	if err != nil {
		return err
	}

	for moduleIndex, moduleData := range content.Modules {
		module := &models.Module{
			CourseID:    courseID,
			Title:       moduleData.Title,
			Description: moduleData.Description,
			OrderIndex:  moduleIndex + 1,
		}
		if err := s.moduleRepo.Create(ctx, module); err != nil {
			return fmt.Errorf("failed to create module: %w", err)
		}

		for lessonIndex, lessonData := range moduleData.Lessons {
			lessonType := models.LessonType(lessonData.Type)
			if lessonType == "" {
				lessonType = models.LessonTypeText
			}
			if !lessonType.Valid() {
				return fmt.Errorf("%w: invalid lesson type %q", models.ErrValidation, lessonData.Type)
			}

			lesson := &models.Lesson{
				ModuleID:    module.ID,
				Title:       lessonData.Title,
				Description: lessonData.Description,
				Type:        lessonType,
				OrderIndex:  lessonIndex + 1,
			}
			if lessonData.Content != "" {
				content := lessonData.Content
				lesson.Content = &content
			}
			if lessonData.VideoURL != "" {
				url := lessonData.VideoURL
				lesson.VideoURL = &url
			}
			if lessonData.Duration != "" {
				duration := lessonData.Duration
				lesson.Duration = &duration
			}
			if err := s.lessonRepo.Create(ctx, lesson); err != nil {
				return fmt.Errorf("failed to create lesson: %w", err)
			}
		}
	}
	return nil
}

func (s *adminCourseService) validateCourseRequest(ctx context.Context, req *models.CreateCourseRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", models.ErrValidation)
	}
	if !req.Level.Valid() {
		return fmt.Errorf("%w: invalid course level %q", models.ErrValidation, req.Level)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", models.ErrValidation)
	}
	if _, err := s.instructorRepo.GetByID(ctx, req.InstructorID); err != nil {
		return fmt.Errorf("%w: unknown instructor %d", models.ErrValidation, req.InstructorID)
	}
	return nil
}
