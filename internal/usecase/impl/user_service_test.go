package impl

import (
	"context"
	"testing"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	mockRepo "authgate/internal/mocks/repository"
	mockSvc "authgate/internal/mocks/service"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service  usecase.UserUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	svc := NewUserService(UserServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Logger:   newDiscardLogger(),
	})

	return userServiceFixtures{
		service:  svc,
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func TestUserService_CreateUser_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.CreateUserInput{
		Email:    "driver@example.com",
		UserName: "driver",
		Password: "Password123!",
		Role:     entity.RoleDriver,
	}

	fx.hasher.On("HashPassword", ctx, input.Password).Return("hashed_password", nil)

	generatedID := uuid.New()
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			assert.Equal(t, "hashed_password", user.PasswordHash)
			assert.Equal(t, entity.RoleDriver, user.Role)
			user.ID = generatedID
		}).
		Return(nil)

	output, err := fx.service.CreateUser(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, generatedID, output.UserID)
}

func TestUserService_CreateUser_UnknownRole(t *testing.T) {
	fx := createTestUserService(t)

	output, err := fx.service.CreateUser(context.Background(), &usecase.CreateUserInput{
		Email:    "x@example.com",
		UserName: "x",
		Password: "Password123!",
		Role:     entity.Role("superuser"),
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_CreateUser_HasherClosed(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.On("HashPassword", ctx, mock.Anything).
		Return("", errors.Wrap(service.ErrHasherClosed, "submit"))

	output, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{
		Email:    "x@example.com",
		UserName: "x",
		Password: "Password123!",
		Role:     entity.RoleCustomer,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrHashingUnavailable)
}

func TestUserService_CreateUser_HasherReplyLost(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.On("HashPassword", ctx, mock.Anything).
		Return("", service.ErrHasherReplyLost)

	output, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{
		Email:    "x@example.com",
		UserName: "x",
		Password: "Password123!",
		Role:     entity.RoleCustomer,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrHashingFailed)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.On("HashPassword", ctx, mock.Anything).Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"))

	output, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{
		Email:    "dup@example.com",
		UserName: "dup",
		Password: "Password123!",
		Role:     entity.RoleCustomer,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_GetUser(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	userID := uuid.New()
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "found@example.com"}, nil)

	user, err := fx.service.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "found@example.com", user.Email)

	missingID := uuid.New()
	fx.userRepo.On("FindByID", ctx, missingID).Return(nil, repository.ErrUserNotFound)

	_, err = fx.service.GetUser(ctx, missingID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
