// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"authgate/internal/delivery/http/middleware"
	"authgate/internal/delivery/http/response"
	"authgate/internal/domain/entity"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateUserRequest is the provisioning payload.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	UserName string `json:"userName" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required"`
}

// UserResponse is the public shape of a user record. The password hash never
// leaves the service.
type UserResponse struct {
	UUID      uuid.UUID `json:"uuid"`
	Email     string    `json:"email"`
	UserName  string    `json:"userName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUser handles the user provisioning request.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user creation input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Email:    req.Email,
		UserName: req.UserName,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/users/"+output.UserID.String())

	return response.Success(c, http.StatusCreated, map[string]string{"uuid": output.UserID.String()}, "User created successfully")
}

// GetMe returns the authenticated user's own record.
func (h *UserHandler) GetMe(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return h.renderUser(c, userID)
}

// GetUser returns a user record by ID. Admin only, enforced by the router.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user ID")
	}

	return h.renderUser(c, userID)
}

func (h *UserHandler) renderUser(c echo.Context, userID uuid.UUID) error {
	user, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserResponse{
		UUID:      user.ID,
		Email:     user.Email,
		UserName:  user.UserName,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}, "User retrieved successfully")
}
