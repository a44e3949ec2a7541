package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/codecampus/backend/internal/auth"
	"github.com/codecampus/backend/internal/models"
)

// AchievementService is the interface that wraps methods for badge and achievement operations
type AchievementService interface {
	// GetUserBadges retrieves all badges with the user's earn metadata
	GetUserBadges(ctx context.Context, userID int) ([]models.UserBadgeItem, error)
	// GetUserAchievements retrieves all achievements with the user's progress
	GetUserAchievements(ctx context.Context, userID int) ([]models.UserAchievementItem, error)
}

// UserAchievementHandler handles HTTP requests for the caller's badges and achievements
type UserAchievementHandler struct {
	BaseHandler
	service AchievementService
}

// NewUserAchievementHandler creates a new user achievement handler
func NewUserAchievementHandler(svc AchievementService, logger *zap.Logger) *UserAchievementHandler {
	return &UserAchievementHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all user achievement handler routes
func (h *UserAchievementHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/user", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/badges", h.GetUserBadges)
		r.Get("/achievements", h.GetUserAchievements)
	})
}

// GetUserBadges handles GET /user/badges
// @Summary List badges
// @Description Get all badges with the caller's earn metadata
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserBadgeItem "Badges"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user/badges [get]
func (h *UserAchievementHandler) GetUserBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	badges, err := h.service.GetUserBadges(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get user badges", zap.Int("userId", userID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, badges)
}

// GetUserAchievements handles GET /user/achievements
// @Summary List achievements
// @Description Get all achievements with the caller's progress
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserAchievementItem "Achievements"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user/achievements [get]
func (h *UserAchievementHandler) GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	achievements, err := h.service.GetUserAchievements(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get user achievements", zap.Int("userId", userID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, achievements)
}
