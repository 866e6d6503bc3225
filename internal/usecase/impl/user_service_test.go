package impl

import (
	"context"
	"testing"

	"soko/internal/domain/entity"
	domainerrors "soko/internal/domain/errors"
	"soko/internal/domain/repository"
	"soko/internal/domain/service"
	mockRepo "soko/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Sync(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(UserServiceParams{UserRepo: userRepo})
	ctx := context.Background()

	identity := &service.Identity{
		ProviderID: "uid-1",
		Email:      "jane@example.com",
		Name:       "Jane",
		Avatar:     "https://example.com/jane.png",
	}

	stored := &entity.User{
		ID:    "uid-1",
		Email: "jane@example.com",
		Name:  "Jane",
		Role:  entity.RoleAdmin, // role assigned out of band survives syncs
	}

	userRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	userRepo.On("FindByID", ctx, "uid-1").Return(stored, nil)

	user, err := svc.Sync(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.ID)
	assert.Equal(t, entity.RoleAdmin, user.Role)
}

func TestUserService_Sync_RequiresIdentity(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(UserServiceParams{UserRepo: userRepo})

	_, err := svc.Sync(context.Background(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = svc.Sync(context.Background(), &service.Identity{})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestUserService_Get_NotFound(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(UserServiceParams{UserRepo: userRepo})
	ctx := context.Background()

	userRepo.On("FindByID", ctx, "missing").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
