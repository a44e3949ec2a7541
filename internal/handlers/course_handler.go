package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/auth"
	"github.com/codecampus/backend/internal/models"
)

// CourseService is the interface that wraps methods for catalog operations
type CourseService interface {
	// GetCourses retrieves the catalog with conjunctive optional filters.
	// userID 0 means an anonymous caller.
	GetCourses(ctx context.Context, userID int, filter models.CourseFilter) ([]models.CourseListItem, error)
	// GetCourse assembles the full course page
	GetCourse(ctx context.Context, courseID, userID int) (*models.CourseDetailResponse, error)
	// GetRecommended produces the personalized feed
	GetRecommended(ctx context.Context, userID, limit int) (*models.RecommendedResponse, error)
	// CreateReview records an enrolled user's review on a course
	CreateReview(ctx context.Context, userID, courseID int, req *models.CreateReviewRequest) (*models.Review, error)
}

// CourseHandler handles HTTP requests for catalog operations
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMiddleware, optionalAuthMiddleware func(http.Handler) http.Handler) {
	r.Route("/courses", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(optionalAuthMiddleware)
			r.Get("/", h.GetCourses)
			r.Get("/{id}", h.GetCourse)
		})
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/recommended", h.GetRecommended)
			r.Post("/{id}/reviews", h.CreateReview)
		})
	})
}

// GetCourses handles GET /courses
// @Summary List courses
// @Description Get courses filtered by category, level, title search and pagination window
// @Tags courses
// @Produce json
// @Param categoryId query int false "Category id"
// @Param level query string false "Course level (beginner, intermediate, advanced, all)"
// @Param search query string false "Title substring"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.CourseListItem "Courses"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())

	var filter models.CourseFilter
	query := r.URL.Query()
	if raw := query.Get("categoryId"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil || categoryID <= 0 {
			h.RespondError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		filter.CategoryID = &categoryID
	}
	filter.Level = models.CourseLevel(query.Get("level"))
	filter.Search = query.Get("search")
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.RespondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = &limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			h.RespondError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = &offset
	}

	courses, err := h.service.GetCourses(r.Context(), userID, filter)
	if err != nil {
		h.Logger.Error("failed to get courses", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{id}
// @Summary Get course details
// @Description Get a course with categories, modules, lessons, instructor, reviews and aggregates
// @Tags courses
// @Produce json
// @Param id path int true "Course id"
// @Success 200 {object} models.CourseDetailResponse "Course details"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())

	courseID, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	course, err := h.service.GetCourse(r.Context(), courseID, userID)
	if err != nil {
		h.Logger.Error("failed to get course", zap.Int("courseId", courseID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// GetRecommended handles GET /courses/recommended
// @Summary Get recommended courses
// @Description Get the in-progress and recommended course buckets for the caller
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Recommended bucket size (default: 8)"
// @Success 200 {object} models.RecommendedResponse "Personalized feed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/recommended [get]
func (h *CourseHandler) GetRecommended(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.RespondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	feed, err := h.service.GetRecommended(r.Context(), userID, limit)
	if err != nil {
		h.Logger.Error("failed to get recommended courses", zap.Int("userId", userID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, feed)
}

// CreateReview handles POST /courses/{id}/reviews
// @Summary Review a course
// @Description Create a review on a course the caller is enrolled in
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course id"
// @Param request body models.CreateReviewRequest true "Review data"
// @Success 201 {object} models.Review "Created review"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/reviews [post]
func (h *CourseHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseID, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID, courseID, &req)
	if err != nil {
		h.Logger.Error("failed to create review",
			zap.Int("userId", userID),
			zap.Int("courseId", courseID),
			zap.Error(err),
		)
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, review)
}

// parseIDParam parses a positive integer chi URL parameter
func parseIDParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
