// Package service defines interfaces for domain services implemented by the
// infrastructure layer.
package service

import (
	"context"
	"time"
)

// ListingEventType enumerates the lifecycle events published by mutations.
type ListingEventType string

const (
	// ListingCreated is published after a successful create.
	ListingCreated ListingEventType = "listing.created"
	// ListingSold is published after the active -> sold transition.
	ListingSold ListingEventType = "listing.sold"
	// ListingDeleted is published after a hard delete.
	ListingDeleted ListingEventType = "listing.deleted"
	// ListingUpdated is published after an administrative update.
	ListingUpdated ListingEventType = "listing.updated"
)

// ListingEvent describes one listing lifecycle transition.
type ListingEvent struct {
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       ListingEventType `json:"type"`
	ListingID  string           `json:"listing_id"`
	Owner      string           `json:"owner"`
	Category   string           `json:"category,omitempty"`
	Price      float64          `json:"price"`
	IsDonation bool             `json:"is_donation"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing listing events.
// Implementations must be safe for concurrent use; there is deliberately no
// process-global instance.
type EventPublisher interface {
	// PublishListingEvent publishes a listing lifecycle event. Failures are
	// the caller's to log; event publishing never gates the primary write.
	PublishListingEvent(ctx context.Context, event *ListingEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
