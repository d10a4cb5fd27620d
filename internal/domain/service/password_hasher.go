// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"
	"errors"
)

// Sentinel errors surfaced by PasswordHasher implementations. They let the
// usecase layer classify hashing failures without importing the backing pool.
var (
	// ErrHasherClosed is returned when the hasher has been shut down and the
	// request could not be submitted.
	ErrHasherClosed = errors.New("password hasher is closed")

	// ErrHasherReplyLost is returned when a submitted request will never
	// receive its result, e.g. because the executing worker died. It is never
	// used to report a failed password match.
	ErrHasherReplyLost = errors.New("password hasher reply lost")
)

// PasswordHasher defines the interface for password hashing and verification.
// Both operations are deliberately expensive; implementations run them off the
// caller's goroutine, so calls suspend on ctx rather than burn a thread.
type PasswordHasher interface {
	// HashPassword derives a salted digest from a plaintext password.
	HashPassword(ctx context.Context, plaintext string) (string, error)

	// VerifyPassword compares a plaintext password against a previously
	// produced digest. A mismatch is (false, nil); an error means the
	// comparison itself could not be performed.
	VerifyPassword(ctx context.Context, plaintext, reference string) (bool, error)
}
