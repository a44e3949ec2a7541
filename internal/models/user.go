package models

import "time"

// User roles. Admin deliberately leaves room for intermediate roles
// (moderator, instructor) without renumbering.
const (
	RoleUser  = 1
	RoleAdmin = 3
)

// User represents a platform account
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         int       `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest represents a request to create a new account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// LoginRequest represents a login request by username or email
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful register/login
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
