package service

import (
	"testing"

	"authgate/internal/domain/entity"
	"authgate/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a testify mock for service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates the mock and registers expectation checks.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokenPair(user *entity.User) (string, string, error) {
	args := m.Called(user)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(token string) (*service.AccessClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.AccessClaims), args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(token string) (*service.RefreshClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.RefreshClaims), args.Error(1)
}
