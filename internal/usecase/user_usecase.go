// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to provision a new user.
type CreateUserInput struct {
	Email    string
	UserName string
	Password string
	Role     entity.Role
}

// --- Output DTOs ---

// CreateUserOutput returns the newly created user's identifier.
type CreateUserOutput struct {
	UserID uuid.UUID
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	CreateUser(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
