package mongodb

import (
	"context"
	"regexp"
	"time"

	"soko/internal/domain/entity"
	domainerrors "soko/internal/domain/errors"
	"soko/internal/domain/repository"
	"soko/internal/infra/persistence/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listingsCollection = "listings"

// listingRepository implements repository.ListingRepository on MongoDB.
type listingRepository struct {
	collection *mongo.Collection
}

// NewListingRepository is the constructor for listingRepository.
func NewListingRepository(db *mongo.Database) repository.ListingRepository {
	return &listingRepository{collection: db.Collection(listingsCollection)}
}

// Create persists a new listing and assigns its id and audit timestamps.
func (repo *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	now := time.Now().UTC()
	listing.ID = primitive.NewObjectID().Hex()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	doc, err := model.FromListingEntity(listing)
	if err != nil {
		return errors.Wrap(err, "failed to map listing")
	}

	if _, err := repo.collection.InsertOne(ctx, doc); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert listing")
	}

	return nil
}

// FindByID retrieves a single listing by its unique id. A malformed id is
// reported as not found, matching how the route would behave for any other
// unknown id.
func (repo *listingRepository) FindByID(ctx context.Context, id string) (*entity.Listing, error) {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrListingNotFound
	}

	var doc model.ListingModel
	err = repo.collection.FindOne(ctx, bson.M{"_id": docID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrListingNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find listing by id")
	}

	return doc.ToEntity(), nil
}

// FindByFilter retrieves listings matching the filter, newest first. The
// radius constraint is applied in-process with great-circle distance after
// the indexed filters narrow the candidate set.
func (repo *listingRepository) FindByFilter(ctx context.Context, filter repository.Filter) ([]*entity.Listing, error) {
	query := bson.M{}
	if filter.Owner != "" {
		query["owner"] = filter.Owner
	}
	if filter.Status != "" {
		query["status"] = filter.Status.String()
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if filter.Location != "" {
		query["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Location), Options: "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	radiusSearch := filter.Latitude != nil && filter.Longitude != nil && filter.RadiusKm > 0
	if !radiusSearch {
		// Paging happens in the store unless a radius trims results afterwards.
		if filter.Limit > 0 {
			opts.SetLimit(filter.Limit)
			if filter.Page > 1 {
				opts.SetSkip((filter.Page - 1) * filter.Limit)
			}
		}
	}

	cursor, err := repo.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query listings")
	}

	var docs []*model.ListingModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode listings")
	}

	listings := make([]*entity.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, doc.ToEntity())
	}

	if radiusSearch {
		listings = filterByRadius(listings, *filter.Latitude, *filter.Longitude, filter.RadiusKm)
		listings = page(listings, filter.Page, filter.Limit)
	}

	return listings, nil
}

// FindByOwner retrieves every listing owned by the given identity.
func (repo *listingRepository) FindByOwner(ctx context.Context, owner string) ([]*entity.Listing, error) {
	return repo.FindByFilter(ctx, repository.Filter{Owner: owner})
}

// FindAll retrieves the entire collection for platform-wide rollups.
func (repo *listingRepository) FindAll(ctx context.Context) ([]*entity.Listing, error) {
	return repo.FindByFilter(ctx, repository.Filter{})
}

// Update replaces the stored listing and refreshes its updatedAt.
func (repo *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now().UTC()

	doc, err := model.FromListingEntity(listing)
	if err != nil {
		return errors.Wrap(err, "failed to map listing")
	}

	result, err := repo.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update listing")
	}
	if result.MatchedCount == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// Delete removes the listing permanently.
func (repo *listingRepository) Delete(ctx context.Context, id string) error {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrListingNotFound
	}

	result, err := repo.collection.DeleteOne(ctx, bson.M{"_id": docID})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete listing")
	}
	if result.DeletedCount == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// MarkSold atomically transitions the listing from active to sold. The
// status predicate makes the transition single-shot: a second call matches
// nothing and reports ErrListingNotFound for the caller to disambiguate.
func (repo *listingRepository) MarkSold(ctx context.Context, id string, soldAt time.Time) (*entity.Listing, error) {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrListingNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     entity.StatusSold.String(),
		"sold_at":    soldAt,
		"updated_at": soldAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc model.ListingModel
	err = repo.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": docID, "status": entity.StatusActive.String()},
		update,
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrListingNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to mark listing sold")
	}

	return doc.ToEntity(), nil
}

// IncrementViews adds exactly 1 to the view counter with $inc, the store's
// native atomic increment, so concurrent views are never lost.
func (repo *listingRepository) IncrementViews(ctx context.Context, id string) error {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrListingNotFound
	}

	result, err := repo.collection.UpdateByID(ctx, docID, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to increment views")
	}
	if result.MatchedCount == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// filterByRadius keeps listings whose coordinates fall within radiusKm of
// the given point, measured along the great circle.
func filterByRadius(listings []*entity.Listing, lat, lng, radiusKm float64) []*entity.Listing {
	center := orb.Point{lng, lat}
	kept := make([]*entity.Listing, 0, len(listings))

	for _, l := range listings {
		if !l.HasCoordinates() {
			continue
		}
		point := orb.Point{*l.Longitude, *l.Latitude}
		if geo.Distance(center, point) <= radiusKm*1000 {
			kept = append(kept, l)
		}
	}

	return kept
}

func page(listings []*entity.Listing, pageNum, limit int64) []*entity.Listing {
	if limit <= 0 {
		return listings
	}
	if pageNum < 1 {
		pageNum = 1
	}

	start := (pageNum - 1) * limit
	if start >= int64(len(listings)) {
		return []*entity.Listing{}
	}

	end := start + limit
	if end > int64(len(listings)) {
		end = int64(len(listings))
	}

	return listings[start:end]
}
