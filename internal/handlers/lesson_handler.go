package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/auth"
	"github.com/codecampus/backend/internal/models"
	"github.com/codecampus/backend/internal/services"
)

// LessonService is the interface that wraps methods for lesson operations
type LessonService interface {
	// GetLesson retrieves a lesson with navigation context. Non-preview
	// lessons require enrollment in the owning course.
	GetLesson(ctx context.Context, lessonID, userID int) (*models.LessonDetailResponse, error)
	// MarkComplete idempotently records that the user finished the lesson
	MarkComplete(ctx context.Context, userID, lessonID int) (*services.MarkCompleteResult, error)
}

// LessonHandler handles HTTP requests for lesson operations
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/lessons", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/{id}", h.GetLesson)
		r.Post("/{id}/complete", h.MarkComplete)
	})
}

// GetLesson handles GET /lessons/{id}
// @Summary Get lesson details
// @Description Get a lesson with prev/next navigation and completion flag
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson id"
// @Success 200 {object} models.LessonDetailResponse "Lesson details"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled in owning course"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonID, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), lessonID, userID)
	if err != nil {
		h.Logger.Error("failed to get lesson",
			zap.Int("lessonId", lessonID),
			zap.Int("userId", userID),
			zap.Error(err),
		)
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// MarkComplete handles POST /lessons/{id}/complete
// @Summary Mark a lesson complete
// @Description Record lesson completion; repeat calls are no-ops
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson id"
// @Success 200 {object} map[string]any "Completion result with course progress"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/complete [post]
func (h *LessonHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonID, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	result, err := h.service.MarkComplete(r.Context(), userID, lessonID)
	if err != nil {
		h.Logger.Error("failed to mark lesson complete",
			zap.Int("lessonId", lessonID),
			zap.Int("userId", userID),
			zap.Error(err),
		)
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"progress": result.CoursePct,
		"courseId": result.CourseID,
		"record":   result.Progress,
	})
}
