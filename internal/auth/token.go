// Package auth provides JWT token generation, validation and HTTP middleware
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenGenerator issues and validates signed HS256 token pairs
type TokenGenerator struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, accessExpiry, refreshExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:             []byte(secret),
		accessTokenExpiry:  accessExpiry,
		refreshTokenExpiry: refreshExpiry,
	}
}

// GenerateTokens issues an access/refresh pair. Only the access token
// carries identity claims; the refresh token is just a signed expiry.
func (tg *TokenGenerator) GenerateTokens(userID int, role int) (string, string, error) {
	now := time.Now()

	accessToken, err := tg.sign(jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     now.Add(tg.accessTokenExpiry).Unix(),
		"iat":     now.Unix(),
		"type":    tokenTypeAccess,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := tg.sign(jwt.MapClaims{
		"exp":  now.Add(tg.refreshTokenExpiry).Unix(),
		"iat":  now.Unix(),
		"type": tokenTypeRefresh,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (tg *TokenGenerator) sign(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tg.secret)
}

// parse validates the signature, expiry and token type and returns the claims
func (tg *TokenGenerator) parse(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) { return tg.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return nil, fmt.Errorf("token is not a %s token", wantType)
	}

	return claims, nil
}

// ValidateAccessToken validates an access token and returns the userID and role
func (tg *TokenGenerator) ValidateAccessToken(tokenString string) (int, int, error) {
	claims, err := tg.parse(tokenString, tokenTypeAccess)
	if err != nil {
		return 0, 0, err
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, 0, fmt.Errorf("user_id not found in token")
	}
	role, ok := claims["role"].(float64)
	if !ok {
		return 0, 0, fmt.Errorf("role not found in token")
	}

	return int(userID), int(role), nil
}

// ValidateRefreshToken validates a refresh token
func (tg *TokenGenerator) ValidateRefreshToken(tokenString string) error {
	_, err := tg.parse(tokenString, tokenTypeRefresh)
	return err
}
