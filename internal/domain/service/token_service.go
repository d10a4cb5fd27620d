package service

import (
	"authgate/internal/domain/entity"

	"github.com/google/uuid"
)

// AccessClaims carries the identity asserted by a validated access token.
type AccessClaims struct {
	UserID  uuid.UUID
	Role    entity.Role
	Subject string // the user name the token was issued for
}

// RefreshClaims carries the identity asserted by a validated refresh token.
type RefreshClaims struct {
	UserID uuid.UUID
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokenPair creates a new access token and refresh token for a user.
	GenerateTokenPair(user *entity.User) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*AccessClaims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*RefreshClaims, error)
}
