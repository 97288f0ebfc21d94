// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func jwtTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront"
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough-0123456789"
	cfg.JWT.AccessTokenExpiry = time.Hour
	return cfg
}

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	token, err := manager.GenerateToken(1, "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "Storefront", claims.Issuer)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	token, err := manager.GenerateToken(1, "admin@example.com")
	require.NoError(t, err)

	otherCfg := jwtTestConfig()
	otherCfg.JWT.Secret = "a-completely-different-secret-key-9876543210"
	other := NewJWTManager(otherCfg)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	cfg := jwtTestConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateToken(1, "admin@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer "))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}
