package middleware

import (
	"crypto/subtle"
	"strings"

	"authgate/config"
	"authgate/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// MasterKeyMiddleware guards administrative endpoints behind a shared
// bearer secret. User provisioning has no user to authenticate as.
type MasterKeyMiddleware struct {
	masterKey string
}

// NewMasterKeyMiddleware is the constructor for MasterKeyMiddleware.
func NewMasterKeyMiddleware(cfg *config.Config) *MasterKeyMiddleware {
	masterKey := ""
	if cfg.Auth != nil {
		masterKey = cfg.Auth.MasterKey
	}

	return &MasterKeyMiddleware{masterKey: masterKey}
}

// Verify checks the bearer token against the configured master key using a
// constant-time comparison.
func (m *MasterKeyMiddleware) Verify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.masterKey == "" {
			return response.Forbidden(c, "FORBIDDEN", "User provisioning is disabled")
		}

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		presented := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || presented == authHeader {
			return response.Unauthorized(c, "MISSING_TOKEN", "Master key bearer token required")
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(m.masterKey)) != 1 {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid master key")
		}

		return next(c)
	}
}
