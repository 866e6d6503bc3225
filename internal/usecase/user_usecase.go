package usecase

import (
	"context"

	"soko/internal/domain/entity"
	"soko/internal/domain/service"
)

// UserUsecase defines the interface for user profile use cases. User
// records mirror the external identity provider; authentication itself
// happens there, not here.
type UserUsecase interface {
	// Sync upserts the local user record from a verified identity and
	// returns it with its stored role.
	Sync(ctx context.Context, identity *service.Identity) (*entity.User, error)

	// Get retrieves a user by their provider id.
	Get(ctx context.Context, id string) (*entity.User, error)
}
