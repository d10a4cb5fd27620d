package auth

import (
	"testing"
	"time"

	"authgate/config"
	"authgate/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokenPair(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	user := &entity.User{
		ID:    uuid.New(),
		Email: "driver@example.com",
		Role:  entity.RoleDriver,
	}

	accessToken, refreshToken, err := jwtService.GenerateTokenPair(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	require.NotNil(t, accessClaims)
	assert.Equal(t, user.ID, accessClaims.UserID)
	assert.Equal(t, entity.RoleDriver, accessClaims.Role)
	assert.Equal(t, user.Email, accessClaims.Subject)

	refreshClaims, err := jwtService.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	require.NotNil(t, refreshClaims)
	assert.Equal(t, user.ID, refreshClaims.UserID)
}

func TestJWTService_TokensAreNotInterchangeable(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	require.NoError(t, err)

	user := &entity.User{ID: uuid.New(), Email: "admin@example.com", Role: entity.RoleAdmin}
	accessToken, refreshToken, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	// Each token is signed with its own secret, so crossing them must fail.
	_, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	_, err = jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: -time.Minute}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	user := &entity.User{ID: uuid.New(), Email: "customer@example.com", Role: entity.RoleCustomer}
	accessToken, _, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(accessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}
