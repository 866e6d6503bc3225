package impl

import (
	"context"

	"soko/internal/domain/entity"
	domainerrors "soko/internal/domain/errors"
	"soko/internal/domain/repository"
	"soko/internal/domain/service"
	"soko/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type userService struct {
	userRepo repository.UserRepository
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{userRepo: params.UserRepo}
}

// Sync upserts the local user record from a verified identity. The stored
// role survives the upsert, so the returned user carries the effective role
// for this request.
func (s *userService) Sync(ctx context.Context, identity *service.Identity) (*entity.User, error) {
	if identity == nil || identity.ProviderID == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	user := &entity.User{
		ID:     identity.ProviderID,
		Email:  identity.Email,
		Name:   identity.Name,
		Avatar: identity.Avatar,
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to upsert user")
	}

	stored, err := s.userRepo.FindByID(ctx, identity.ProviderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user after sync")
	}

	return stored, nil
}

// Get retrieves a user by their provider id.
func (s *userService) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
