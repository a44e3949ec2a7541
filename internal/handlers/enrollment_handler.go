package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/auth"
	"github.com/codecampus/backend/internal/models"
)

// EnrollmentService is the interface that wraps methods for enrollment operations
type EnrollmentService interface {
	// Enroll joins the user to a course; enrolling twice returns the
	// original enrollment
	Enroll(ctx context.Context, userID, courseID int) (*models.Enrollment, error)
}

// EnrollmentHandler handles HTTP requests for enrollment operations
type EnrollmentHandler struct {
	BaseHandler
	service EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(svc EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all enrollment handler routes
func (h *EnrollmentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/enrollments", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Enroll)
	})
}

// Enroll handles POST /enrollments
// @Summary Enroll in a course
// @Description Join a course; duplicate enrollments return the original row
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.EnrollRequest true "Course to enroll in"
// @Success 201 {object} models.Enrollment "Enrollment"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CourseID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "courseId is required")
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), userID, req.CourseID)
	if err != nil {
		h.Logger.Error("failed to enroll",
			zap.Int("userId", userID),
			zap.Int("courseId", req.CourseID),
			zap.Error(err),
		)
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, enrollment)
}
