package handler

import (
	"net/http"

	"authgate/internal/delivery/http/response"
	"authgate/internal/infra/health"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the cached health snapshot.
type HealthHandler struct {
	checker *health.Checker
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Check reports the cached service health.
func (h *HealthHandler) Check(c echo.Context) error {
	status := h.checker.Current()

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}

	return response.Success(c, code, status, "Service health")
}
