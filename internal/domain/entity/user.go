// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system, representing one account that can
// authenticate against the service.
type User struct {
	ID           uuid.UUID // The unique identifier for the account.
	Email        string    // The login identifier; unique across all accounts.
	UserName     string    // The display name chosen at registration.
	PasswordHash string    // The bcrypt digest produced by the hashing pool. Never the plaintext.
	Role         Role      // The authorization level of the account.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
