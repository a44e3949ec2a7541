package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/models"
)

// CategoryService is the interface that wraps methods for category operations
type CategoryService interface {
	// GetCategories retrieves all categories
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	BaseHandler
	service CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(svc CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all category handler routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.GetCategories)
}

// GetCategories handles GET /categories
// @Summary List categories
// @Description Get all course categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category "Categories"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		h.Logger.Error("failed to get categories", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, categories)
}
