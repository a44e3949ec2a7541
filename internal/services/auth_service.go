package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/codecampus/backend/internal/auth"
	"github.com/codecampus/backend/internal/models"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Create inserts a new user.
	//
	// The generated id is written back into "user".
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by ID.
	//
	// Returns models.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// GetByEmailOrUsername retrieves a user whose email or username equals "login".
	//
	// Returns models.ErrNotFound if no such user exists.
	GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error)
	// ExistsByEmail checks if a user with such email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsByUsername checks if a user with such username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type authService struct {
	userRepo       UserRepository
	tokenGenerator *auth.TokenGenerator
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator *auth.TokenGenerator) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Register creates a new user account and returns it with a token pair
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	normalizedEmail, normalizedUsername, err := s.checkRegisterCredentials(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     normalizedUsername,
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.buildAuthResponse(user)
}

// Login authenticates a user by username or email
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: login and password are required", models.ErrValidation)
	}

	user, err := s.userRepo.GetByEmailOrUsername(ctx, req.Login)
	if err != nil {
		// Do not reveal whether the account exists
		return nil, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

// GetProfile retrieves the authenticated user's account
func (s *authService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) buildAuthResponse(user *models.User) (*models.AuthResponse, error) {
	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// checkRegisterCredentials validates and normalizes registration input.
//
// The three checks are independent of each other, so they run in parallel.
func (s *authService) checkRegisterCredentials(ctx context.Context, email, username, password string) (string, string, error) {
	validationErrors := make(chan error, 3)
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	normalizedUsername := strings.TrimSpace(username)

	go func() {
		if len(password) < 8 {
			validationErrors <- fmt.Errorf("%w: password must be at least 8 characters long", models.ErrValidation)
			return
		}
		validationErrors <- nil
	}()

	go func() {
		if !emailRegex.MatchString(normalizedEmail) {
			validationErrors <- fmt.Errorf("%w: invalid email format", models.ErrValidation)
			return
		}
		emailExists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check email: %w", err)
			return
		}
		if emailExists {
			validationErrors <- fmt.Errorf("%w: email already exists", models.ErrValidation)
			return
		}
		validationErrors <- nil
	}()

	go func() {
		if normalizedUsername == "" {
			validationErrors <- fmt.Errorf("%w: username cannot be empty", models.ErrValidation)
			return
		}
		usernameExists, err := s.userRepo.ExistsByUsername(ctx, normalizedUsername)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check username: %w", err)
			return
		}
		if usernameExists {
			validationErrors <- fmt.Errorf("%w: username already exists", models.ErrValidation)
			return
		}
		validationErrors <- nil
	}()

	for i := 0; i < 3; i++ {
		if err := <-validationErrors; err != nil {
			return "", "", err
		}
	}

	return normalizedEmail, normalizedUsername, nil
}
