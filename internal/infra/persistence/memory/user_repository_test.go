package memory

import (
	"context"
	"sync"
	"testing"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &entity.User{
		Email:        "driver@example.com",
		UserName:     "driver",
		PasswordHash: "digest",
		Role:         entity.RoleDriver,
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := repo.FindByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Email: "dup@example.com", UserName: "a", Role: entity.RoleCustomer}))

	err := repo.Create(ctx, &entity.User{Email: "dup@example.com", UserName: "b", Role: entity.RoleCustomer})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &entity.User{Email: "copy@example.com", UserName: "copy", Role: entity.RoleAdmin}
	require.NoError(t, repo.Create(ctx, user))

	first, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	first.UserName = "mutated"

	second, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "copy", second.UserName)
}

func TestUserRepository_ConcurrentCreates(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func(i int) {
			defer wg.Done()
			err := repo.Create(ctx, &entity.User{
				Email:    string(rune('a'+i%26)) + "@example.com",
				UserName: "user",
				Role:     entity.RoleCustomer,
			})
			// Duplicates across goroutines are expected; anything else is not.
			if err != nil {
				assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
			}
		}(i)
	}
	wg.Wait()
}
