package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/auth"
	"github.com/codecampus/backend/internal/models"
)

// LearningPathService is the interface that wraps methods for learning path operations
type LearningPathService interface {
	// GetLearningPaths retrieves all paths; per-user data only for userID > 0
	GetLearningPaths(ctx context.Context, userID int) ([]models.LearningPathItem, error)
}

// LearningPathHandler handles HTTP requests for learning path operations
type LearningPathHandler struct {
	BaseHandler
	service LearningPathService
}

// NewLearningPathHandler creates a new learning path handler
func NewLearningPathHandler(svc LearningPathService, logger *zap.Logger) *LearningPathHandler {
	return &LearningPathHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all learning path handler routes
func (h *LearningPathHandler) RegisterRoutes(r chi.Router, optionalAuthMiddleware func(http.Handler) http.Handler) {
	r.Route("/learning-paths", func(r chi.Router) {
		r.Use(optionalAuthMiddleware)
		r.Get("/", h.GetLearningPaths)
	})
}

// GetLearningPaths handles GET /learning-paths
// @Summary List learning paths
// @Description Get learning paths with course counts, categories and, for authenticated callers, enrollment and progress
// @Tags learning-paths
// @Produce json
// @Success 200 {array} models.LearningPathItem "Learning paths"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /learning-paths [get]
func (h *LearningPathHandler) GetLearningPaths(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserID(r.Context())

	paths, err := h.service.GetLearningPaths(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get learning paths", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, paths)
}
