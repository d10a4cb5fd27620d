// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"authgate/config"
	"authgate/internal/domain/entity"
	"authgate/internal/domain/service"
	"authgate/internal/errors"
)

const (
	defaultAccessTTL  = time.Minute * 15
	defaultRefreshTTL = time.Hour * 24 * 7
)

// accessTokenClaims carries the identity the resource layer authorizes on.
type accessTokenClaims struct {
	UserID uuid.UUID `json:"uuid"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// refreshTokenClaims is intentionally minimal; a refresh token only proves
// the holder may mint a new pair.
type refreshTokenClaims struct {
	UserID uuid.UUID `json:"uuid"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// TTLs fall back to 15 minutes / 7 days when the config leaves them unset.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	svc := &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     defaultAccessTTL,
		refreshTTL:    defaultRefreshTTL,
	}
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL != 0 {
			svc.accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL != 0 {
			svc.refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return svc, nil
}

// GenerateTokenPair creates a new access token and refresh token for a given user.
func (s *jwtService) GenerateTokenPair(user *entity.User) (accessToken string, refreshToken string, err error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims{
		UserID: user.ID,
		Role:   user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	})
	accessToken, err = access.SignedString([]byte(s.accessSecret))
	if err != nil {
		return "", "", errors.Wrap(err, "sign access token")
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshTokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	})
	refreshToken, err = refresh.SignedString([]byte(s.refreshSecret))
	if err != nil {
		return "", "", errors.Wrap(err, "sign refresh token")
	}

	return accessToken, refreshToken, nil
}

// ValidateAccessToken verifies signature and expiry, then re-maps the claims
// into the domain-facing struct.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.AccessClaims, error) {
	claims := &accessTokenClaims{}
	if err := s.parse(tokenString, s.accessSecret, claims); err != nil {
		return nil, err
	}

	return &service.AccessClaims{
		UserID:  claims.UserID,
		Role:    entity.Role(claims.Role),
		Subject: claims.Subject,
	}, nil
}

// ValidateRefreshToken verifies a refresh token against its dedicated secret.
func (s *jwtService) ValidateRefreshToken(tokenString string) (*service.RefreshClaims, error) {
	claims := &refreshTokenClaims{}
	if err := s.parse(tokenString, s.refreshSecret, claims); err != nil {
		return nil, err
	}

	return &service.RefreshClaims{UserID: claims.UserID}, nil
}

func (s *jwtService) parse(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return errors.Wrap(err, "parse token")
	}
	if !token.Valid {
		return errors.New("token is not valid")
	}

	return nil
}
