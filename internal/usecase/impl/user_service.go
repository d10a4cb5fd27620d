// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser provisions a new account with a hashed password.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*usecase.CreateUserOutput, error) {
	srv.log(ctx).Info("Starting user creation", slog.String("email", input.Email), slog.Any("role", input.Role))

	if !input.Role.Valid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown role")
	}

	hashedPassword, err := srv.hasher.HashPassword(ctx, input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during user creation", slog.String("email", input.Email), slog.Any("error", err))

		return nil, mapHasherError(err, "failed to hash password during user creation")
	}

	newUser := &entity.User{
		Email:        input.Email,
		UserName:     input.UserName,
		PasswordHash: hashedPassword,
		Role:         input.Role,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		srv.log(ctx).Warn("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("User created", slog.Any("userID", newUser.ID))

	return &usecase.CreateUserOutput{UserID: newUser.ID}, nil
}

// GetUser loads a single user by ID.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// mapHasherError translates hashing pool failures into the application error
// taxonomy. A closed pool is a retryable availability problem; everything
// else is an internal hashing failure.
func mapHasherError(err error, message string) error {
	if errors.Is(err, service.ErrHasherClosed) {
		return errors.Wrap(domainerrors.ErrHashingUnavailable, message)
	}

	return errors.Wrap(domainerrors.ErrHashingFailed.WithDetails(err.Error()), message)
}
