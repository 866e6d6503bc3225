package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpvalidator "soko/internal/delivery/http/validator"
	domainerrors "soko/internal/domain/errors"
	"soko/internal/domain/entity"
	"soko/internal/domain/policy"
	"soko/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubListingUsecase is a configurable stand-in for usecase.ListingUsecase.
type stubListingUsecase struct {
	createFn    func(ctx context.Context, actor policy.Actor, input usecase.CreateListingInput) (*entity.Listing, error)
	getFn       func(ctx context.Context, id string) (*entity.Listing, error)
	searchFn    func(ctx context.Context, input usecase.SearchInput) ([]*entity.Listing, error)
	incrementFn func(ctx context.Context, id string) error
	contactFn   func(ctx context.Context, id string) (string, error)
	contactQRFn func(ctx context.Context, id string) ([]byte, error)
}

func (s *stubListingUsecase) Create(ctx context.Context, actor policy.Actor, input usecase.CreateListingInput) (*entity.Listing, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubListingUsecase) Get(ctx context.Context, id string) (*entity.Listing, error) {
	return s.getFn(ctx, id)
}

func (s *stubListingUsecase) Search(ctx context.Context, input usecase.SearchInput) ([]*entity.Listing, error) {
	return s.searchFn(ctx, input)
}

func (s *stubListingUsecase) MarkSold(context.Context, policy.Actor, string) (*entity.Listing, error) {
	panic("not configured")
}

func (s *stubListingUsecase) Delete(context.Context, policy.Actor, string) error {
	panic("not configured")
}

func (s *stubListingUsecase) AdminUpdate(context.Context, policy.Actor, string, usecase.UpdateListingInput) (*entity.Listing, error) {
	panic("not configured")
}

func (s *stubListingUsecase) IncrementView(ctx context.Context, id string) error {
	return s.incrementFn(ctx, id)
}

func (s *stubListingUsecase) ContactLink(ctx context.Context, id string) (string, error) {
	return s.contactFn(ctx, id)
}

func (s *stubListingUsecase) ContactQR(ctx context.Context, id string) ([]byte, error) {
	return s.contactQRFn(ctx, id)
}

func newTestHandler(uc usecase.ListingUsecase) *ListingHandler {
	return &ListingHandler{
		listingUC: uc,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func sampleListing() *entity.Listing {
	return &entity.Listing{
		ID:          "64f0c2d9a1b2c3d4e5f60718",
		Owner:       "seller-1",
		Title:       "Mountain bike",
		Description: "Hardly used 26-inch mountain bike",
		Category:    "sports",
		Condition:   "good",
		Location:    "Nairobi",
		Price:       4500,
		CountryCode: "+254",
		SellerPhone: "0712345678",
		Images:      []string{"https://img.example.com/bike.jpg"},
		Status:      entity.StatusActive,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestListingHandler_GetListing(t *testing.T) {
	uc := &stubListingUsecase{
		getFn: func(_ context.Context, id string) (*entity.Listing, error) {
			assert.Equal(t, "64f0c2d9a1b2c3d4e5f60718", id)

			return sampleListing(), nil
		},
	}
	h := newTestHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/listings/64f0c2d9a1b2c3d4e5f60718", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("64f0c2d9a1b2c3d4e5f60718")

	require.NoError(t, h.GetListing(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Title       string `json:"title"`
			ContactLink string `json:"contact_link"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Mountain bike", body.Data.Title)
	assert.Equal(t, "https://wa.me/2540712345678", body.Data.ContactLink)
}

func TestListingHandler_GetListing_NotFound(t *testing.T) {
	uc := &stubListingUsecase{
		getFn: func(context.Context, string) (*entity.Listing, error) {
			return nil, domainerrors.ErrListingNotFound
		},
	}
	h := newTestHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/listings/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	require.NoError(t, h.GetListing(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "LISTING_NOT_FOUND")
}

func TestListingHandler_CreateListing_ValidationError(t *testing.T) {
	uc := &stubListingUsecase{
		createFn: func(context.Context, policy.Actor, usecase.CreateListingInput) (*entity.Listing, error) {
			return nil, domainerrors.ErrTitleTooShort
		},
	}
	h := newTestHandler(uc)

	e := echo.New()
	e.Validator = httpvalidator.New()
	payload := `{"title":"ab","description":"long enough description here"}`
	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateListing(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "TITLE_TOO_SHORT")
}

func TestListingHandler_CreateListing_RejectsStructurallyInvalidInput(t *testing.T) {
	h := newTestHandler(&stubListingUsecase{})

	e := echo.New()
	e.Validator = httpvalidator.New()

	cases := []struct {
		name    string
		payload string
	}{
		{name: "latitude out of range", payload: `{"title":"Mountain bike","latitude":200,"longitude":36.8}`},
		{name: "longitude out of range", payload: `{"title":"Mountain bike","latitude":-1.28,"longitude":716.8}`},
		{name: "country code without plus", payload: `{"title":"Mountain bike","country_code":"254"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(tc.payload))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			// The use case must never be reached; the stub would panic.
			require.NoError(t, h.CreateListing(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
		})
	}
}

func TestListingHandler_SearchListings_ParsesQueryParams(t *testing.T) {
	var got usecase.SearchInput
	uc := &stubListingUsecase{
		searchFn: func(_ context.Context, input usecase.SearchInput) ([]*entity.Listing, error) {
			got = input

			return []*entity.Listing{sampleListing()}, nil
		},
	}
	h := newTestHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet,
		"/api/listings?q=bike&category=sports&status=active&lat=-1.28&lng=36.82&radius_km=10&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.SearchListings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bike", got.Query)
	assert.Equal(t, "sports", got.Category)
	assert.Equal(t, "active", got.Status)
	require.NotNil(t, got.Latitude)
	assert.InDelta(t, -1.28, *got.Latitude, 0.0001)
	assert.InDelta(t, 10.0, got.RadiusKm, 0.0001)
	assert.Equal(t, int64(2), got.Page)
	assert.Equal(t, int64(5), got.Limit)
}

func TestListingHandler_IncrementView(t *testing.T) {
	uc := &stubListingUsecase{
		incrementFn: func(_ context.Context, id string) error {
			assert.Equal(t, "l1", id)

			return nil
		},
	}
	h := newTestHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/listings/l1/views", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("l1")

	require.NoError(t, h.IncrementView(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListingHandler_GetContactQR(t *testing.T) {
	uc := &stubListingUsecase{
		contactQRFn: func(context.Context, string) ([]byte, error) {
			return []byte{0x89, 'P', 'N', 'G'}, nil
		},
	}
	h := newTestHandler(uc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/listings/l1/contact/qr", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("l1")

	require.NoError(t, h.GetContactQR(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
}
