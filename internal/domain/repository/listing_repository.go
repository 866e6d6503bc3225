// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"soko/internal/domain/entity"
)

// ErrListingNotFound is returned when no listing matches the given id, or
// when a conditional update matched no document.
var ErrListingNotFound = errors.New("listing not found")

// Filter narrows a listing search. Zero values mean "no constraint".
type Filter struct {
	Owner    string
	Status   entity.ListingStatus
	Category string

	// Query is a case-insensitive substring match over title and description.
	Query string

	// Location is a case-insensitive substring match over the location label.
	Location string

	// Latitude/Longitude plus RadiusKm narrow results to listings with
	// coordinates within the radius.
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64

	// Page is 1-based; Limit caps the page size.
	Page  int64
	Limit int64
}

// ListingRepository defines the standard operations for listing persistence.
// The application layer depends on this interface, not the concrete
// implementation.
type ListingRepository interface {
	// Create persists a new listing and assigns its id and audit timestamps.
	Create(ctx context.Context, listing *entity.Listing) error

	// FindByID retrieves a single listing by its unique id.
	FindByID(ctx context.Context, id string) (*entity.Listing, error)

	// FindByFilter retrieves listings matching the filter, newest first.
	// An absent collection yields an empty result, not an error.
	FindByFilter(ctx context.Context, filter Filter) ([]*entity.Listing, error)

	// FindByOwner retrieves every listing owned by the given identity.
	FindByOwner(ctx context.Context, owner string) ([]*entity.Listing, error)

	// FindAll retrieves the entire collection, for platform-wide rollups.
	FindAll(ctx context.Context) ([]*entity.Listing, error)

	// Update replaces the stored listing and refreshes its updatedAt.
	Update(ctx context.Context, listing *entity.Listing) error

	// Delete removes the listing permanently.
	Delete(ctx context.Context, id string) error

	// MarkSold atomically transitions the listing from active to sold and
	// sets soldAt. It returns ErrListingNotFound when no active listing with
	// that id exists, which callers disambiguate against a plain existence
	// check.
	MarkSold(ctx context.Context, id string, soldAt time.Time) (*entity.Listing, error)

	// IncrementViews adds exactly 1 to the view counter using the store's
	// native atomic increment.
	IncrementViews(ctx context.Context, id string) error
}
