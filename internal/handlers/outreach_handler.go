package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/models"
)

// OutreachService is the interface that wraps methods for newsletter and contact form operations
type OutreachService interface {
	// Subscribe signs an email up for the newsletter
	Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscription, error)
	// SendContactMessage stores a contact form submission
	SendContactMessage(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, error)
}

// OutreachHandler handles HTTP requests for the newsletter and contact form
type OutreachHandler struct {
	BaseHandler
	service OutreachService
}

// NewOutreachHandler creates a new outreach handler
func NewOutreachHandler(svc OutreachService, logger *zap.Logger) *OutreachHandler {
	return &OutreachHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all outreach handler routes
func (h *OutreachHandler) RegisterRoutes(r chi.Router) {
	r.Post("/subscribe", h.Subscribe)
	r.Post("/contact", h.SendContactMessage)
}

// Subscribe handles POST /subscribe
// @Summary Subscribe to the newsletter
// @Description Sign an email up for the newsletter
// @Tags outreach
// @Accept json
// @Produce json
// @Param request body models.SubscribeRequest true "Email to subscribe"
// @Success 201 {object} models.Subscription "Created subscription"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subscribe [post]
func (h *OutreachHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subscription, err := h.service.Subscribe(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to subscribe", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, subscription)
}

// SendContactMessage handles POST /contact
// @Summary Send a contact message
// @Description Store a contact form submission
// @Tags outreach
// @Accept json
// @Produce json
// @Param request body models.ContactRequest true "Contact form data"
// @Success 201 {object} models.ContactMessage "Stored message"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contact [post]
func (h *OutreachHandler) SendContactMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.service.SendContactMessage(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to store contact message", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, message)
}
