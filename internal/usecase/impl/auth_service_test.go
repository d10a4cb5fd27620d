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
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	svc := NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return authServiceFixtures{
		service:      svc,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "driver@example.com",
		PasswordHash: "stored_digest",
		Role:         entity.RoleDriver,
	}
	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("VerifyPassword", ctx, "Password123!", "stored_digest").Return(true, nil)
	fx.tokenService.On("GenerateTokenPair", user).Return("access", "refresh", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "driver@example.com", PasswordHash: "stored_digest"}
	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("VerifyPassword", ctx, "wrong", "stored_digest").Return(false, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "wrong"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

// A verification error must surface as a hashing failure, never as bad
// credentials.
func TestAuthService_Login_VerifyErrorIsNotCredentialFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "driver@example.com", PasswordHash: "not-a-digest"}
	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("VerifyPassword", ctx, "Password123!", "not-a-digest").
		Return(false, errors.New("bcrypt verify failed"))

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrHashingFailed)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_HasherClosed(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "driver@example.com", PasswordHash: "stored_digest"}
	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("VerifyPassword", ctx, "Password123!", "stored_digest").
		Return(false, errors.Wrap(service.ErrHasherClosed, "submit"))

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrHashingUnavailable)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "driver@example.com", Role: entity.RoleDriver}
	fx.tokenService.On("ValidateRefreshToken", "refresh_token").
		Return(&service.RefreshClaims{UserID: user.ID}, nil)
	fx.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	fx.tokenService.On("GenerateTokenPair", user).Return("new_access", "unused_refresh", nil)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh_token"})

	require.NoError(t, err)
	assert.Equal(t, "new_access", output.AccessToken)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.tokenService.On("ValidateRefreshToken", "garbage").
		Return(nil, errors.New("parse token: token is malformed"))

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "garbage"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_RefreshToken_UserGone(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	userID := uuid.New()
	fx.tokenService.On("ValidateRefreshToken", "refresh_token").
		Return(&service.RefreshClaims{UserID: userID}, nil)
	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh_token"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}
