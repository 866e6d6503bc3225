// Package impl contains the concrete use case implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "soko/internal/domain/errors"
	"soko/internal/domain/entity"
	"soko/internal/domain/policy"
	"soko/internal/domain/repository"
	"soko/internal/domain/service"
	"soko/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	minTitleLength       = 3
	minDescriptionLength = 10
)

type listingService struct {
	listingRepo repository.ListingRepository
	publisher   service.EventPublisher
	cache       service.Cache
	qrcode      service.QRCodeService
	logger      *slog.Logger
}

// ListingServiceParams holds dependencies for ListingService, injected by Fx.
type ListingServiceParams struct {
	fx.In

	ListingRepo repository.ListingRepository
	Publisher   service.EventPublisher
	Cache       service.Cache
	QRCode      service.QRCodeService
	Logger      *slog.Logger
}

// NewListingService creates a new listing service instance
func NewListingService(params ListingServiceParams) usecase.ListingUsecase {
	return &listingService{
		listingRepo: params.ListingRepo,
		publisher:   params.Publisher,
		cache:       params.Cache,
		qrcode:      params.QRCode,
		logger:      params.Logger,
	}
}

// Create validates and persists a new listing owned by the actor.
func (s *listingService) Create(ctx context.Context, actor policy.Actor, input usecase.CreateListingInput) (*entity.Listing, error) {
	if !policy.Can(actor, policy.ActionCreate, "") {
		return nil, forbidden(actor, policy.ActionCreate)
	}

	listing, err := buildListing(actor.ID, input)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, errors.Wrap(err, "failed to create listing")
	}

	s.publishEvent(ctx, service.ListingCreated, listing)
	s.invalidateReports(ctx, listing.Owner)

	return listing, nil
}

// buildListing validates the input and assembles the entity. Checks run in
// a fixed order and stop at the first failure so clients always see the
// same error for the same input.
func buildListing(owner string, input usecase.CreateListingInput) (*entity.Listing, error) {
	title := strings.TrimSpace(input.Title)
	if len(title) < minTitleLength {
		return nil, domainerrors.ErrTitleTooShort
	}

	description := strings.TrimSpace(input.Description)
	if len(description) < minDescriptionLength {
		return nil, domainerrors.ErrDescriptionTooShort
	}

	sellerPhone := strings.TrimSpace(input.SellerPhone)
	if sellerPhone == "" {
		return nil, domainerrors.ErrSellerPhoneRequired
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domainerrors.ErrCategoryRequired
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, domainerrors.ErrLocationRequired
	}

	if len(input.Images) == 0 {
		return nil, domainerrors.ErrImagesRequired
	}

	price := input.Price
	if input.IsDonation {
		// Donations are free by definition, whatever the client sent.
		price = 0
	} else if price < 0 {
		return nil, domainerrors.ErrPriceInvalid
	}

	images := filterImages(input.Images)
	if len(images) == 0 {
		return nil, domainerrors.ErrImagesUnrecognized
	}

	condition := strings.TrimSpace(input.Condition)
	if condition == "" {
		condition = entity.DefaultCondition
	}

	countryCode := strings.TrimSpace(input.CountryCode)
	if countryCode == "" {
		countryCode = entity.DefaultCountryCode
	}

	return &entity.Listing{
		Owner:       owner,
		Title:       title,
		Description: description,
		Category:    category,
		Condition:   condition,
		Location:    location,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Price:       price,
		IsDonation:  input.IsDonation,
		CountryCode: countryCode,
		SellerPhone: sellerPhone,
		Images:      images,
		Status:      entity.StatusActive,
	}, nil
}

// filterImages keeps entries that look like hosted URLs or inline data
// URIs and drops everything else.
func filterImages(images []string) []string {
	kept := make([]string, 0, len(images))

	for _, image := range images {
		image = strings.TrimSpace(image)
		if strings.HasPrefix(image, "data:image/") ||
			strings.HasPrefix(image, "http://") ||
			strings.HasPrefix(image, "https://") {
			kept = append(kept, image)
		}
	}

	return kept
}

// Get retrieves a single listing. Read access is public.
func (s *listingService) Get(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, domainerrors.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to find listing")
	}

	return listing, nil
}

// Search retrieves listings matching the input, newest first.
func (s *listingService) Search(ctx context.Context, input usecase.SearchInput) ([]*entity.Listing, error) {
	filter := repository.Filter{
		Owner:     input.Owner,
		Category:  strings.TrimSpace(input.Category),
		Query:     strings.TrimSpace(input.Query),
		Location:  strings.TrimSpace(input.Location),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		RadiusKm:  input.RadiusKm,
		Page:      input.Page,
		Limit:     input.Limit,
	}

	if input.Status != "" {
		status := entity.ListingStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrStatusInvalid
		}
		filter.Status = status
	}

	listings, err := s.listingRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search listings")
	}

	return listings, nil
}

// MarkSold transitions the actor's listing from active to sold. The
// transition happens as one conditional update in the store; losing a race
// against a concurrent call surfaces as the already-sold conflict.
func (s *listingService) MarkSold(ctx context.Context, actor policy.Actor, id string) (*entity.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.Can(actor, policy.ActionMarkSold, listing.Owner) {
		return nil, forbidden(actor, policy.ActionMarkSold)
	}

	if listing.Status != entity.StatusActive {
		return nil, domainerrors.ErrListingAlreadySold
	}

	sold, err := s.listingRepo.MarkSold(ctx, id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			// The listing existed above, so the conditional update can only
			// have missed because the status changed underneath us.
			return nil, domainerrors.ErrListingAlreadySold.WrapMessage("listing was sold concurrently")
		}

		return nil, errors.Wrap(err, "failed to mark listing sold")
	}

	s.publishEvent(ctx, service.ListingSold, sold)
	s.invalidateReports(ctx, sold.Owner)

	return sold, nil
}

// Delete removes a listing; owners and admins may delete.
func (s *listingService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !policy.Can(actor, policy.ActionDelete, listing.Owner) {
		return forbidden(actor, policy.ActionDelete)
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return domainerrors.ErrListingNotFound
		}

		return errors.Wrap(err, "failed to delete listing")
	}

	s.publishEvent(ctx, service.ListingDeleted, listing)
	s.invalidateReports(ctx, listing.Owner)

	return nil
}

// AdminUpdate applies an administrative patch to any listing. The owner is
// never patchable.
func (s *listingService) AdminUpdate(ctx context.Context, actor policy.Actor, id string, input usecase.UpdateListingInput) (*entity.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.Can(actor, policy.ActionUpdate, listing.Owner) {
		return nil, forbidden(actor, policy.ActionUpdate)
	}

	if err := applyPatch(listing, input); err != nil {
		return nil, err
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, domainerrors.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to update listing")
	}

	s.publishEvent(ctx, service.ListingUpdated, listing)
	s.invalidateReports(ctx, listing.Owner)

	return listing, nil
}

func applyPatch(listing *entity.Listing, input usecase.UpdateListingInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if len(title) < minTitleLength {
			return domainerrors.ErrTitleTooShort
		}
		listing.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if len(description) < minDescriptionLength {
			return domainerrors.ErrDescriptionTooShort
		}
		listing.Description = description
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return domainerrors.ErrCategoryRequired
		}
		listing.Category = category
	}
	if input.Condition != nil {
		listing.Condition = strings.TrimSpace(*input.Condition)
	}
	if input.Location != nil {
		location := strings.TrimSpace(*input.Location)
		if location == "" {
			return domainerrors.ErrLocationRequired
		}
		listing.Location = location
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return domainerrors.ErrPriceInvalid
		}
		listing.Price = *input.Price
		if listing.IsDonation {
			listing.Price = 0
		}
	}
	if input.CountryCode != nil {
		listing.CountryCode = strings.TrimSpace(*input.CountryCode)
	}
	if input.SellerPhone != nil {
		sellerPhone := strings.TrimSpace(*input.SellerPhone)
		if sellerPhone == "" {
			return domainerrors.ErrSellerPhoneRequired
		}
		listing.SellerPhone = sellerPhone
	}
	if input.Images != nil {
		images := filterImages(input.Images)
		if len(images) == 0 {
			return domainerrors.ErrImagesUnrecognized
		}
		listing.Images = images
	}
	if input.Status != nil {
		status := entity.ListingStatus(*input.Status)
		if !status.IsValid() {
			return domainerrors.ErrStatusInvalid
		}
		if status == entity.StatusSold && listing.Status != entity.StatusSold {
			now := time.Now().UTC()
			listing.SoldAt = &now
		}
		listing.Status = status
	}

	return nil
}

// IncrementView records one view of the listing.
func (s *listingService) IncrementView(ctx context.Context, id string) error {
	if err := s.listingRepo.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return domainerrors.ErrListingNotFound
		}

		return errors.Wrap(err, "failed to increment views")
	}

	return nil
}

// ContactLink returns the messaging deep link for the listing's seller.
func (s *listingService) ContactLink(ctx context.Context, id string) (string, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	return listing.ContactLink(), nil
}

// ContactQR renders the contact deep link as a PNG QR code.
func (s *listingService) ContactQR(ctx context.Context, id string) ([]byte, error) {
	link, err := s.ContactLink(ctx, id)
	if err != nil {
		return nil, err
	}

	image, err := s.qrcode.GenerateContactQR(link)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate contact QR")
	}

	return image, nil
}

// publishEvent publishes a lifecycle event. Publishing never gates the
// primary write; failures are logged and dropped.
func (s *listingService) publishEvent(ctx context.Context, eventType service.ListingEventType, listing *entity.Listing) {
	event := &service.ListingEvent{
		Type:       eventType,
		ListingID:  listing.ID,
		Owner:      listing.Owner,
		Category:   listing.Category,
		Price:      listing.Price,
		IsDonation: listing.IsDonation,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.publisher.PublishListingEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish listing event",
			slog.String("type", string(eventType)),
			slog.String("listing_id", listing.ID),
			slog.Any("error", err),
		)
	}
}

// invalidateReports drops the cached analytics affected by a mutation.
func (s *listingService) invalidateReports(ctx context.Context, owner string) {
	if err := s.cache.Delete(ctx, sellerReportKey(owner), platformReportKey); err != nil {
		s.logger.Warn("Failed to invalidate cached reports",
			slog.String("owner", owner),
			slog.Any("error", err),
		)
	}
}

// forbidden translates a policy denial into the taxonomy error for the
// actor, carrying the attempted action so the caller can see what was denied.
func forbidden(actor policy.Actor, action policy.Action) error {
	if actor.Anonymous() {
		return domainerrors.ErrUnauthorized.WithDetails("authentication required to " + string(action))
	}

	return domainerrors.ErrForbidden.WithDetails("not permitted to " + string(action))
}
