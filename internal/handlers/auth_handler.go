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

// AuthService is the interface that wraps methods for account operations
type AuthService interface {
	// Register creates a new user account and returns it with a token pair
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	// Login authenticates a user by username or email
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	// GetProfile retrieves the authenticated user's account
	GetProfile(ctx context.Context, userID int) (*models.User, error)
}

// AuthHandler handles HTTP requests for account operations
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
	r.Route("/user/profile", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetProfile)
	})
}

// Register handles POST /auth/register
// @Summary Register a new account
// @Description Create a user account and return it with access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.AuthResponse "Created account with tokens"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to register user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, response)
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Authenticate by username or email and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse "Account with tokens"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to log in", zap.String("login", req.Login), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, response)
}

// GetProfile handles GET /user/profile
// @Summary Get own profile
// @Description Get the authenticated user's account
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.User "Account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get profile", zap.Int("userId", userID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}
