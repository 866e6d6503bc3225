// Package model contains the persistence representations of domain entities
// and the converters between them. Persistence concerns (BSON tags, ObjectID
// handling) stay here so the domain entities remain storage-agnostic.
package model

import (
	"time"

	"soko/internal/domain/entity"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingModel is the BSON document stored in the listings collection.
type ListingModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       string             `bson:"owner"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Condition   string             `bson:"condition"`
	Location    string             `bson:"location"`
	Latitude    *float64           `bson:"latitude,omitempty"`
	Longitude   *float64           `bson:"longitude,omitempty"`
	Price       float64            `bson:"price"`
	IsDonation  bool               `bson:"is_donation"`
	CountryCode string             `bson:"country_code"`
	SellerPhone string             `bson:"seller_phone"`
	Images      []string           `bson:"images"`
	Status      string             `bson:"status"`
	Views       int64              `bson:"views"`
	SoldAt      *time.Time         `bson:"sold_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// FromListingEntity maps a domain listing to its persistence model. An empty
// entity id maps to the nil ObjectID so the store can assign one at insert.
func FromListingEntity(l *entity.Listing) (*ListingModel, error) {
	if l == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid listing id %q", l.ID)
		}
	}

	return &ListingModel{
		ID:          docID,
		Owner:       l.Owner,
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Condition:   l.Condition,
		Location:    l.Location,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Price:       l.Price,
		IsDonation:  l.IsDonation,
		CountryCode: l.CountryCode,
		SellerPhone: l.SellerPhone,
		Images:      l.Images,
		Status:      l.Status.String(),
		Views:       l.Views,
		SoldAt:      l.SoldAt,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}, nil
}

// ToEntity maps the persistence model back to a pure domain entity.
func (m *ListingModel) ToEntity() *entity.Listing {
	if m == nil {
		return nil
	}

	return &entity.Listing{
		ID:          m.ID.Hex(),
		Owner:       m.Owner,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Condition:   m.Condition,
		Location:    m.Location,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Price:       m.Price,
		IsDonation:  m.IsDonation,
		CountryCode: m.CountryCode,
		SellerPhone: m.SellerPhone,
		Images:      m.Images,
		Status:      entity.ListingStatus(m.Status),
		Views:       m.Views,
		SoldAt:      m.SoldAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
