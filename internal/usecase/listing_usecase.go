// Package usecase defines the application-layer interfaces and their
// input/output shapes. Handlers depend on these interfaces; the impl
// subpackage provides the implementations.
package usecase

import (
	"context"

	"soko/internal/domain/entity"
	"soko/internal/domain/policy"
)

// CreateListingInput carries everything a seller submits when posting.
// Images are already-hosted URLs or inline data URIs; the platform never
// stores image bytes itself.
type CreateListingInput struct {
	Title       string
	Description string
	Category    string
	Condition   string
	Location    string
	Latitude    *float64
	Longitude   *float64
	Price       float64
	IsDonation  bool
	CountryCode string
	SellerPhone string
	Images      []string
}

// UpdateListingInput is the administrative patch. Nil fields are left
// untouched; the owner is never patchable.
type UpdateListingInput struct {
	Title       *string
	Description *string
	Category    *string
	Condition   *string
	Location    *string
	Price       *float64
	CountryCode *string
	SellerPhone *string
	Images      []string
	Status      *string
}

// SearchInput narrows the public listing search.
type SearchInput struct {
	Query    string
	Category string
	Location string
	Status   string
	Owner    string

	Latitude  *float64
	Longitude *float64
	RadiusKm  float64

	Page  int64
	Limit int64
}

// ListingUsecase defines the interface for listing management use cases
type ListingUsecase interface {
	// Create validates and persists a new listing owned by the actor.
	Create(ctx context.Context, actor policy.Actor, input CreateListingInput) (*entity.Listing, error)

	// Get retrieves a single listing. Read access is public.
	Get(ctx context.Context, id string) (*entity.Listing, error)

	// Search retrieves listings matching the input, newest first.
	Search(ctx context.Context, input SearchInput) ([]*entity.Listing, error)

	// MarkSold transitions the actor's listing from active to sold.
	MarkSold(ctx context.Context, actor policy.Actor, id string) (*entity.Listing, error)

	// Delete removes a listing; owners and admins may delete.
	Delete(ctx context.Context, actor policy.Actor, id string) error

	// AdminUpdate applies an administrative patch to any listing.
	AdminUpdate(ctx context.Context, actor policy.Actor, id string, input UpdateListingInput) (*entity.Listing, error)

	// IncrementView records one view of the listing.
	IncrementView(ctx context.Context, id string) error

	// ContactLink returns the messaging deep link for the listing's seller.
	ContactLink(ctx context.Context, id string) (string, error)

	// ContactQR renders the contact deep link as a PNG QR code.
	ContactQR(ctx context.Context, id string) ([]byte, error)
}
