package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(accessExpiry time.Duration) *TokenGenerator {
	return NewTokenGenerator("test-secret", accessExpiry, 7*24*time.Hour)
}

func TestTokenGenerator_RoundTrip(t *testing.T) {
	tg := newTestGenerator(1 * time.Hour)

	accessToken, refreshToken, err := tg.GenerateTokens(42, 3)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	userID, role, err := tg.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.Equal(t, 3, role)

	assert.NoError(t, tg.ValidateRefreshToken(refreshToken))
}

func TestTokenGenerator_ValidateAccessToken(t *testing.T) {
	tg := newTestGenerator(1 * time.Hour)

	t.Run("rejects garbage", func(t *testing.T) {
		_, _, err := tg.ValidateAccessToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := newTestGenerator(-1 * time.Minute)
		accessToken, _, err := expired.GenerateTokens(42, 1)
		require.NoError(t, err)

		_, _, err = tg.ValidateAccessToken(accessToken)
		assert.Error(t, err)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewTokenGenerator("other-secret", 1*time.Hour, 7*24*time.Hour)
		accessToken, _, err := other.GenerateTokens(42, 1)
		require.NoError(t, err)

		_, _, err = tg.ValidateAccessToken(accessToken)
		assert.Error(t, err)
	})

	t.Run("rejects a refresh token", func(t *testing.T) {
		_, refreshToken, err := tg.GenerateTokens(42, 1)
		require.NoError(t, err)

		_, _, err = tg.ValidateAccessToken(refreshToken)
		assert.Error(t, err)
	})
}

func TestTokenGenerator_ValidateRefreshToken(t *testing.T) {
	tg := newTestGenerator(1 * time.Hour)

	accessToken, _, err := tg.GenerateTokens(42, 1)
	require.NoError(t, err)

	assert.Error(t, tg.ValidateRefreshToken(accessToken))
	assert.Error(t, tg.ValidateRefreshToken("not-a-token"))
}
