package repository

import (
	"context"
	"errors"

	"soko/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// User records mirror the external identity provider; the provider id is
// the primary key.
type UserRepository interface {
	// FindByID retrieves a single user by their provider id.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Upsert inserts the user or refreshes its synced profile fields
	// (name, email, avatar). Role and createdAt are preserved on update.
	Upsert(ctx context.Context, user *entity.User) error

	// FindAll retrieves every user, for platform-wide rollups.
	FindAll(ctx context.Context) ([]*entity.User, error)
}
