package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/models"
)

// maxUploadMemory is the in-memory buffer for multipart parsing; larger
// parts spill to temp files
const maxUploadMemory = 10 << 20

// AdminCourseService is the interface that wraps methods for admin course management
type AdminCourseService interface {
	// GetCourses retrieves the full catalog for the admin console
	GetCourses(ctx context.Context) ([]models.CourseListItem, error)
	// CreateCourse creates a course from the admin form with optional image
	// and structured content files
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest,
		imageFile io.Reader, imageFilename string,
		contentFile io.Reader, contentFilename string) (*models.Course, error)
	// UpdateCourse applies a partial update with an optional replacement image
	UpdateCourse(ctx context.Context, courseID int, req *models.UpdateCourseRequest,
		imageFile io.Reader, imageFilename string) (*models.Course, error)
	// DeleteCourse deletes a course and its stored image
	DeleteCourse(ctx context.Context, courseID int) error
}

// AdminCourseHandler handles HTTP requests for admin course management
type AdminCourseHandler struct {
	BaseHandler
	service AdminCourseService
}

// NewAdminCourseHandler creates a new admin course handler
func NewAdminCourseHandler(svc AdminCourseService, logger *zap.Logger) *AdminCourseHandler {
	return &AdminCourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all admin course handler routes
func (h *AdminCourseHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/admin/courses", func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/", h.GetCourses)
		r.Post("/", h.CreateCourse)
		r.Put("/{id}", h.UpdateCourse)
		r.Delete("/{id}", h.DeleteCourse)
	})
}

// GetCourses handles GET /admin/courses
// @Summary List courses (admin)
// @Description Get the full catalog with categories for the admin console
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.CourseListItem "Courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses [get]
func (h *AdminCourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.GetCourses(r.Context())
	if err != nil {
		h.Logger.Error("failed to get admin courses", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// CreateCourse handles POST /admin/courses
// @Summary Create a course (admin)
// @Description Create a course from multipart form data with an optional image and an optional structured content file (JSON or heading-delimited text)
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "Course title"
// @Param description formData string false "Course description"
// @Param level formData string true "Course level"
// @Param duration formData string false "Human-readable duration"
// @Param price formData int false "Price"
// @Param instructorId formData int true "Instructor id"
// @Param categoryIds formData string false "Comma-separated category ids"
// @Param image formData file false "Course image"
// @Param content formData file false "Structured content file"
// @Success 201 {object} models.Course "Created course"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses [post]
func (h *AdminCourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	price, err := parseFormInt(r, "price", 0)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid price")
		return
	}
	instructorID, err := parseFormInt(r, "instructorId", 0)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid instructorId")
		return
	}
	categoryIDs, err := parseIDList(r.FormValue("categoryIds"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid categoryIds")
		return
	}

	req := &models.CreateCourseRequest{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Level:        models.CourseLevel(r.FormValue("level")),
		Duration:     r.FormValue("duration"),
		Price:        price,
		InstructorID: instructorID,
		CategoryIDs:  categoryIDs,
	}

	imageFile, imageFilename, err := formFile(r, "image")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid image file")
		return
	}
	if imageFile != nil {
		defer imageFile.Close()
	}
	contentFile, contentFilename, err := formFile(r, "content")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid content file")
		return
	}
	if contentFile != nil {
		defer contentFile.Close()
	}

	course, err := h.service.CreateCourse(r.Context(), req,
		readerOrNil(imageFile), imageFilename,
		readerOrNil(contentFile), contentFilename)
	if err != nil {
		h.Logger.Error("failed to create course", zap.String("title", req.Title), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, course)
}

// UpdateCourse handles PUT /admin/courses/{id}
// @Summary Update a course (admin)
// @Description Partially update a course from multipart form data with an optional replacement image
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course id"
// @Success 200 {object} models.Course "Updated course"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{id} [put]
func (h *AdminCourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := &models.UpdateCourseRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Level:       models.CourseLevel(r.FormValue("level")),
		Duration:    r.FormValue("duration"),
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid price")
			return
		}
		req.Price = &price
	}
	if raw := r.FormValue("categoryIds"); raw != "" {
		categoryIDs, err := parseIDList(raw)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid categoryIds")
			return
		}
		req.CategoryIDs = categoryIDs
	}

	imageFile, imageFilename, err := formFile(r, "image")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid image file")
		return
	}
	if imageFile != nil {
		defer imageFile.Close()
	}

	course, err := h.service.UpdateCourse(r.Context(), courseID, req, readerOrNil(imageFile), imageFilename)
	if err != nil {
		h.Logger.Error("failed to update course", zap.Int("courseId", courseID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// DeleteCourse handles DELETE /admin/courses/{id}
// @Summary Delete a course (admin)
// @Description Delete a course and its stored image
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course id"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{id} [delete]
func (h *AdminCourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	if err := h.service.DeleteCourse(r.Context(), courseID); err != nil {
		h.Logger.Error("failed to delete course", zap.Int("courseId", courseID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// formFile retrieves an optional multipart file part. A missing part is not
// an error.
func formFile(r *http.Request, name string) (multipart.File, string, error) {
	file, header, err := r.FormFile(name)
	if err == http.ErrMissingFile {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return file, header.Filename, nil
}

// readerOrNil converts a possibly-nil multipart file to a plain io.Reader.
// A typed nil inside a non-nil interface would defeat the service's nil
// checks.
func readerOrNil(file multipart.File) io.Reader {
	if file == nil {
		return nil
	}
	return file
}

func parseFormInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// parseIDList parses a comma-separated list of positive integer ids
func parseIDList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			return nil, strconv.ErrSyntax
		}
		ids = append(ids, id)
	}
	return ids, nil
}
