// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// DefaultCountryCode is applied when a listing is created without one.
// The platform launched in Kenya, so "+254" is the historical default.
const DefaultCountryCode = "+254"

// DefaultCondition is applied when a listing is created without a condition.
const DefaultCondition = "good"

// ListingStatus represents the lifecycle state of a listing.
type ListingStatus string

const (
	// StatusActive indicates the listing is visible and for sale.
	StatusActive ListingStatus = "active"
	// StatusSold indicates the listing has been sold. Terminal in the normal flow.
	StatusSold ListingStatus = "sold"
	// StatusInactive indicates the listing has been withdrawn without a sale.
	StatusInactive ListingStatus = "inactive"
)

// String returns the string representation of the ListingStatus.
func (s ListingStatus) String() string {
	return string(s)
}

// IsValid checks if the ListingStatus is a valid value.
func (s ListingStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusSold, StatusInactive:
		return true
	default:
		return false
	}
}

// Listing is a single item posting (sale or donation) owned by one user.
// Owner is the external identity-provider user id and is immutable once set.
type Listing struct {
	ID          string     // Opaque unique id, generated at creation.
	Owner       string     // Identity-provider user id of the seller. Immutable.
	Title       string     // Trimmed length >= 3.
	Description string     // Trimmed length >= 10.
	Category    string     // One of the externally curated category list.
	Condition   string     // Free text, defaults to DefaultCondition.
	Location    string     // Free text location label.
	Latitude    *float64   // Optional coordinates for radius search.
	Longitude   *float64   //
	Price       float64    // Non-negative. Always 0 when IsDonation.
	IsDonation  bool       // Free listing; price is forced to 0.
	CountryCode string     // Dialing code for SellerPhone, defaults to DefaultCountryCode.
	SellerPhone string     // Required contact number.
	Images      []string   // Ordered, never empty after creation.
	Status      ListingStatus
	Views       int64      // Monotonically non-decreasing view counter.
	SoldAt      *time.Time // Set only on the active -> sold transition.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasCoordinates reports whether the listing carries a geographic position.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// ContactLink returns the WhatsApp deep link buyers use to reach the seller.
// Non-digit characters are stripped so "+254" + "0712 345678" still produces
// a dialable target.
func (l *Listing) ContactLink() string {
	var digits strings.Builder
	for _, r := range l.CountryCode + l.SellerPhone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	return "https://wa.me/" + digits.String()
}
