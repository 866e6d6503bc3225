package impl

import (
	"context"
	"testing"
	"time"

	"soko/internal/domain/entity"
	domainerrors "soko/internal/domain/errors"
	"soko/internal/domain/policy"
	"soko/internal/domain/repository"
	mockRepo "soko/internal/mocks/repository"
	mockSvc "soko/internal/mocks/service"
	"soko/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newListingService(t *testing.T) (usecase.ListingUsecase, *mockRepo.MockListingRepository, *mockSvc.MockEventPublisher, *mockSvc.MockCache, *mockSvc.MockQRCodeService) {
	t.Helper()

	listingRepo := mockRepo.NewMockListingRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	cache := mockSvc.NewMockCache(t)
	qrcode := mockSvc.NewMockQRCodeService(t)

	service := NewListingService(ListingServiceParams{
		ListingRepo: listingRepo,
		Publisher:   publisher,
		Cache:       cache,
		QRCode:      qrcode,
		Logger:      newDiscardLogger(),
	})

	return service, listingRepo, publisher, cache, qrcode
}

func validCreateInput() usecase.CreateListingInput {
	return usecase.CreateListingInput{
		Title:       "Mountain bike",
		Description: "Hardly used 26-inch mountain bike",
		Category:    "sports",
		Location:    "Nairobi",
		Price:       4500,
		SellerPhone: "0712345678",
		Images:      []string{"https://img.example.com/bike.jpg"},
	}
}

func sellerActor() policy.Actor {
	return policy.Actor{ID: "seller-1", Role: entity.RoleSeller}
}

func TestListingService_Create(t *testing.T) {
	service, listingRepo, publisher, cache, _ := newListingService(t)
	ctx := context.Background()

	listingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil)
	publisher.On("PublishListingEvent", ctx, mock.AnythingOfType("*service.ListingEvent")).Return(nil)
	cache.On("Delete", ctx, "report:seller:seller-1", "report:platform").Return(nil)

	listing, err := service.Create(ctx, sellerActor(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "seller-1", listing.Owner)
	assert.Equal(t, entity.StatusActive, listing.Status)
	assert.Equal(t, entity.DefaultCondition, listing.Condition)
	assert.Equal(t, entity.DefaultCountryCode, listing.CountryCode)
	assert.Equal(t, float64(4500), listing.Price)
}

func TestListingService_Create_RequiresAuthentication(t *testing.T) {
	service, _, _, _, _ := newListingService(t)

	_, err := service.Create(context.Background(), policy.Actor{}, validCreateInput())
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	// The denial names the attempted action.
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "create")
}

func TestListingService_Create_ValidationOrder(t *testing.T) {
	service, _, _, _, _ := newListingService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*usecase.CreateListingInput)
		wantErr error
	}{
		{
			name:    "short title",
			mutate:  func(in *usecase.CreateListingInput) { in.Title = "  ab  " },
			wantErr: domainerrors.ErrTitleTooShort,
		},
		{
			name:    "short description",
			mutate:  func(in *usecase.CreateListingInput) { in.Description = "too short" },
			wantErr: domainerrors.ErrDescriptionTooShort,
		},
		{
			name:    "missing phone",
			mutate:  func(in *usecase.CreateListingInput) { in.SellerPhone = "   " },
			wantErr: domainerrors.ErrSellerPhoneRequired,
		},
		{
			name:    "missing category",
			mutate:  func(in *usecase.CreateListingInput) { in.Category = "" },
			wantErr: domainerrors.ErrCategoryRequired,
		},
		{
			name:    "missing location",
			mutate:  func(in *usecase.CreateListingInput) { in.Location = "" },
			wantErr: domainerrors.ErrLocationRequired,
		},
		{
			name:    "no images",
			mutate:  func(in *usecase.CreateListingInput) { in.Images = nil },
			wantErr: domainerrors.ErrImagesRequired,
		},
		{
			name:    "negative price",
			mutate:  func(in *usecase.CreateListingInput) { in.Price = -1 },
			wantErr: domainerrors.ErrPriceInvalid,
		},
		{
			name:    "unrecognized images",
			mutate:  func(in *usecase.CreateListingInput) { in.Images = []string{"ftp://x", "not-an-image"} },
			wantErr: domainerrors.ErrImagesUnrecognized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)

			_, err := service.Create(ctx, sellerActor(), input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestListingService_Create_DonationForcesZeroPrice(t *testing.T) {
	service, listingRepo, publisher, cache, _ := newListingService(t)
	ctx := context.Background()

	listingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil)
	publisher.On("PublishListingEvent", ctx, mock.AnythingOfType("*service.ListingEvent")).Return(nil)
	cache.On("Delete", ctx, "report:seller:seller-1", "report:platform").Return(nil)

	input := validCreateInput()
	input.IsDonation = true
	input.Price = 999

	listing, err := service.Create(ctx, sellerActor(), input)
	require.NoError(t, err)
	assert.True(t, listing.IsDonation)
	assert.Zero(t, listing.Price)
}

func TestListingService_Create_FiltersBadImages(t *testing.T) {
	service, listingRepo, publisher, cache, _ := newListingService(t)
	ctx := context.Background()

	listingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil)
	publisher.On("PublishListingEvent", ctx, mock.AnythingOfType("*service.ListingEvent")).Return(nil)
	cache.On("Delete", ctx, "report:seller:seller-1", "report:platform").Return(nil)

	input := validCreateInput()
	input.Images = []string{
		"data:image/png;base64,iVBORw0KGgo=",
		"garbage",
		"https://img.example.com/ok.jpg",
	}

	listing, err := service.Create(ctx, sellerActor(), input)
	require.NoError(t, err)
	assert.Len(t, listing.Images, 2)
}

func TestListingService_Create_PublishFailureDoesNotFailCreate(t *testing.T) {
	service, listingRepo, publisher, cache, _ := newListingService(t)
	ctx := context.Background()

	listingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil)
	publisher.On("PublishListingEvent", ctx, mock.AnythingOfType("*service.ListingEvent")).
		Return(assert.AnError)
	cache.On("Delete", ctx, "report:seller:seller-1", "report:platform").Return(nil)

	_, err := service.Create(ctx, sellerActor(), validCreateInput())
	assert.NoError(t, err)
}

func TestListingService_Get_NotFound(t *testing.T) {
	service, listingRepo, _, _, _ := newListingService(t)
	ctx := context.Background()

	listingRepo.On("FindByID", ctx, "missing").Return(nil, repository.ErrListingNotFound)

	_, err := service.Get(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrListingNotFound)
}

func TestListingService_Search_InvalidStatus(t *testing.T) {
	service, _, _, _, _ := newListingService(t)

	_, err := service.Search(context.Background(), usecase.SearchInput{Status: "pending"})
	assert.ErrorIs(t, err, domainerrors.ErrStatusInvalid)
}

func TestListingService_MarkSold(t *testing.T) {
	service, listingRepo, publisher, cache, _ := newListingService(t)
	ctx := context.Background()

	active := &entity.Listing{ID: "l1", Owner: "seller-1", Status: entity.StatusActive}
	soldAt := time.Now().UTC()
	sold := &entity.Listing{ID: "l1", Owner: "seller-1", Status: entity.StatusSold, SoldAt: &soldAt}

	listingRepo.On("FindByID", ctx, "l1").Return(active, nil)
	listingRepo.On("MarkSold", ctx, "l1", mock.AnythingOfType("time.Time")).Return(sold, nil)
	publisher.On("PublishListingEvent", ctx, mock.AnythingOfType("*service.ListingEvent")).Return(nil)
	cache.On("Delete", ctx, "report:seller:seller-1", "report:platform").Return(nil)

	result, err := service.MarkSold(ctx, sellerActor(), "l1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSold, result.Status)
	assert.NotNil(t, result.SoldAt)
}

func TestListingService_MarkSold_OnlyOwner(t *testing.T) {
	service, listingRepo, _, _, _ := newListingService(t)
	ctx := context.Background()

	active := &entity.Listing{ID: "l1", Owner: "someone-else", Status: entity.StatusActive}
	listingRepo.On("FindByID", ctx, "l1").Return(active, nil)

	// Even an admin cannot mark another seller's listing sold.
	_, err := service.MarkSold(ctx, policy.Actor{ID: "admin-1", Role: entity.RoleAdmin}, "l1")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// The denial names the attempted action.
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "mark-sold")
}

func TestListingService_Search_StoreFaultKeepsTaxonomyCode(t *testing.T) {
	service, listingRepo, _, _, _ := newListingService(t)
	ctx := context.Background()

	storeErr := domainerrors.NewDatabaseExecuteError(assert.AnError, "failed to query listings")
	listingRepo.On("FindByFilter", ctx, mock.AnythingOfType("repository.Filter")).Return(nil, storeErr)

	_, err := service.Search(ctx, usecase.SearchInput{})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	assert.Equal(t, "failed to query listings", appErr.Details())
}

func TestListingService_MarkSold_AlreadySold(t *testing.T) {
	service, listingRepo, _, _, _ := newListingService(t)
	ctx := context.Background()

	soldAt := time.Now().UTC()
	sold := &entity.Listing{ID: "l1", Owner: "seller-1", Status: entity.StatusSold, SoldAt: &soldAt}
	listingRepo.On("FindByID", ctx, "l1").Return(sold, nil)

	_, err := service.MarkSold(ctx, sellerActor(), "l1")
	assert.ErrorIs(t, err, domainerrors.ErrListingAlreadySold)
}

func TestListingService_MarkSold_RacedTransitionConflicts(t *testing.T) {
	service, listingRepo, _, _, _ := newListingService(t)
	ctx := context.Background()

	active := &entity.Listing{ID: "l1", Owner: "seller-1", Status: entity.StatusActive}
	listingRepo.On("FindByID", ctx, "l1").Return(active, nil)
	// The conditional update lost a race: the listing existed but was no
	// longer active when the update ran.
	listingRepo.On("MarkSold", ctx, "l1", mock.AnythingOfType("time.Time")).
		Return(nil, repository.ErrListingNotFound)

	_, err := service.MarkSold(ctx, sellerActor(), "l1")
	assert.ErrorIs(t, err, domainerrors.ErrListingAlreadySold)
}

func TestListingService_Delete_OwnerAndAdmin(t *testing.T) {
	cases := []struct {
		name  string
		actor policy.Actor
	}{
		{name: "owner", actor: sellerActor()},
		{name: "admin", actor: policy.Actor{ID: "admin-1", Role: entity.RoleAdmin}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, listingRepo, publisher, cache, _ := newListingService(t)
			ctx := context.Background()

			listing := &entity.Listing{ID: "l1", Owner: "seller-1", Status: entity.StatusActive}
			listingRepo.On("FindByID", ctx, "l1").Return(listing, nil)
			listingRepo.On("Delete", ctx, "l1").Return(nil)
			publisher.On("PublishListingEvent", ctx, mock.AnythingOfType("*service.ListingEvent")).Return(nil)
			cache.On("Delete", ctx, "report:seller:seller-1", "report:platform").Return(nil)

			assert.NoError(t, service.Delete(ctx, tc.actor, "l1"))
		})
	}
}

func TestListingService_Delete_StrangerForbidden(t *testing.T) {
	service, listingRepo, _, _, _ := newListingService(t)
	ctx := context.Background()

	listing := &entity.Listing{ID: "l1", Owner: "seller-1", Status: entity.StatusActive}
	listingRepo.On("FindByID", ctx, "l1").Return(listing, nil)

	err := service.Delete(ctx, policy.Actor{ID: "stranger", Role: entity.RoleUser}, "l1")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestListingService_AdminUpdate(t *testing.T) {
	service, listingRepo, publisher, cache, _ := newListingService(t)
	ctx := context.Background()

	listing := &entity.Listing{
		ID:     "l1",
		Owner:  "seller-1",
		Title:  "Old title",
		Price:  100,
		Status: entity.StatusActive,
	}
	listingRepo.On("FindByID", ctx, "l1").Return(listing, nil)
	listingRepo.On("Update", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil)
	publisher.On("PublishListingEvent", ctx, mock.AnythingOfType("*service.ListingEvent")).Return(nil)
	cache.On("Delete", ctx, "report:seller:seller-1", "report:platform").Return(nil)

	newTitle := "New title"
	newPrice := 250.0
	updated, err := service.AdminUpdate(ctx, policy.Actor{ID: "admin-1", Role: entity.RoleAdmin}, "l1", usecase.UpdateListingInput{
		Title: &newTitle,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, 250.0, updated.Price)
	assert.Equal(t, "seller-1", updated.Owner)
}

func TestListingService_AdminUpdate_OwnerForbidden(t *testing.T) {
	service, listingRepo, _, _, _ := newListingService(t)
	ctx := context.Background()

	listing := &entity.Listing{ID: "l1", Owner: "seller-1", Status: entity.StatusActive}
	listingRepo.On("FindByID", ctx, "l1").Return(listing, nil)

	newTitle := "New title"
	_, err := service.AdminUpdate(ctx, sellerActor(), "l1", usecase.UpdateListingInput{Title: &newTitle})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestListingService_IncrementView(t *testing.T) {
	service, listingRepo, _, _, _ := newListingService(t)
	ctx := context.Background()

	listingRepo.On("IncrementViews", ctx, "l1").Return(nil)

	assert.NoError(t, service.IncrementView(ctx, "l1"))
}

func TestListingService_ContactLink(t *testing.T) {
	service, listingRepo, _, _, _ := newListingService(t)
	ctx := context.Background()

	listing := &entity.Listing{
		ID:          "l1",
		Owner:       "seller-1",
		CountryCode: "+254",
		SellerPhone: "0712 345678",
		Status:      entity.StatusActive,
	}
	listingRepo.On("FindByID", ctx, "l1").Return(listing, nil)

	link, err := service.ContactLink(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/2540712345678", link)
}

func TestListingService_ContactQR(t *testing.T) {
	service, listingRepo, _, _, qrcode := newListingService(t)
	ctx := context.Background()

	listing := &entity.Listing{
		ID:          "l1",
		Owner:       "seller-1",
		CountryCode: "+254",
		SellerPhone: "0712345678",
		Status:      entity.StatusActive,
	}
	listingRepo.On("FindByID", ctx, "l1").Return(listing, nil)
	qrcode.On("GenerateContactQR", "https://wa.me/2540712345678").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	image, err := service.ContactQR(ctx, "l1")
	require.NoError(t, err)
	assert.NotEmpty(t, image)
}
