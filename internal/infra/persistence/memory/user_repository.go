// Package memory provides an in-process UserRepository used when no
// database is configured, and as a lightweight double in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"

	"github.com/google/uuid"
)

// userRepository keeps users in a mutex-guarded map keyed by ID.
type userRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]entity.User
	byEmail map[string]uuid.UUID
}

// NewUserRepository is the constructor for the in-memory userRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[uuid.UUID]entity.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	// Return a copy so callers cannot mutate the stored record.
	return &user, nil
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user := repo.byID[id]

	return &user, nil
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byEmail[user.Email]; exists {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	repo.byID[user.ID] = *user
	repo.byEmail[user.Email] = user.ID

	return nil
}
