package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authgate/internal/delivery/http/validator"
	domainerrors "authgate/internal/domain/errors"
	mockUC "authgate/internal/mocks/usecase"
	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUC.NewMockAuthUsecase(t)
	h := NewAuthHandler(uc, newDiscardLogger())

	uc.On("Login", mock.Anything, &usecase.LoginInput{
		Email:    "driver@example.com",
		Password: "Password123!",
	}).Return(&usecase.LoginOutput{AccessToken: "access", RefreshToken: "refresh"}, nil)

	c, rec := postJSON(e, "/v1/auth/login", `{"email":"driver@example.com","password":"Password123!"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accessToken":"access"`)
	assert.Contains(t, rec.Body.String(), `"refreshToken":"refresh"`)
}

func TestAuthHandler_Login_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	uc := mockUC.NewMockAuthUsecase(t)
	h := NewAuthHandler(uc, newDiscardLogger())

	// Missing password never reaches the usecase.
	c, _ := postJSON(e, "/v1/auth/login", `{"email":"driver@example.com"}`)
	err := h.Login(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthHandler_Login_UsecaseErrorPropagates(t *testing.T) {
	e := newTestEcho()
	uc := mockUC.NewMockAuthUsecase(t)
	h := NewAuthHandler(uc, newDiscardLogger())

	uc.On("Login", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed"))

	c, _ := postJSON(e, "/v1/auth/login", `{"email":"driver@example.com","password":"wrong-pass"}`)
	err := h.Login(c)

	// The error handler maps this to a 401; the handler just passes it up.
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	e := newTestEcho()
	uc := mockUC.NewMockAuthUsecase(t)
	h := NewAuthHandler(uc, newDiscardLogger())

	uc.On("RefreshToken", mock.Anything, &usecase.RefreshTokenInput{RefreshToken: "refresh_token"}).
		Return(&usecase.RefreshTokenOutput{AccessToken: "new_access"}, nil)

	c, rec := postJSON(e, "/v1/auth/refresh", `{"refreshToken":"refresh_token"}`)
	require.NoError(t, h.Refresh(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accessToken":"new_access"`)
}
