// Package service contains test doubles for the domain service interfaces.
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock for service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates the mock and registers expectation checks.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) HashPassword(ctx context.Context, plaintext string) (string, error) {
	args := m.Called(ctx, plaintext)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) VerifyPassword(ctx context.Context, plaintext, reference string) (bool, error) {
	args := m.Called(ctx, plaintext, reference)

	return args.Bool(0), args.Error(1)
}
