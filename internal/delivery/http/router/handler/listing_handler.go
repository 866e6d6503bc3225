// Package handler contains the Echo HTTP handlers.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"soko/internal/delivery/http/middleware"
	"soko/internal/delivery/http/response"
	"soko/internal/domain/entity"
	domainerrors "soko/internal/domain/errors"
	"soko/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ListingHandlerParams holds dependencies for ListingHandler, injected by Fx.
type ListingHandlerParams struct {
	fx.In

	ListingUC usecase.ListingUsecase
	Logger    *slog.Logger
}

// ListingHandler holds dependencies for listing-related handlers
type ListingHandler struct {
	listingUC usecase.ListingUsecase
	logger    *slog.Logger
}

// NewListingHandler is the constructor for ListingHandler
func NewListingHandler(params ListingHandlerParams) *ListingHandler {
	return &ListingHandler{
		listingUC: params.ListingUC,
		logger:    params.Logger,
	}
}

// CreateListingRequest represents the request body for posting a listing
type CreateListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Price       float64  `json:"price"`
	IsDonation  bool     `json:"is_donation"`
	CountryCode string   `json:"country_code" validate:"omitempty,startswith=+"`
	SellerPhone string   `json:"seller_phone"`
	Images      []string `json:"images"`
}

// UpdateListingRequest represents the administrative patch body
type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Condition   *string  `json:"condition"`
	Location    *string  `json:"location"`
	Price       *float64 `json:"price"`
	CountryCode *string  `json:"country_code" validate:"omitempty,startswith=+"`
	SellerPhone *string  `json:"seller_phone"`
	Images      []string `json:"images"`
	Status      *string  `json:"status"`
}

// ListingResponse is the public JSON shape of a listing
type ListingResponse struct {
	ID          string     `json:"id"`
	Owner       string     `json:"owner"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Condition   string     `json:"condition"`
	Location    string     `json:"location"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Price       float64    `json:"price"`
	IsDonation  bool       `json:"is_donation"`
	CountryCode string     `json:"country_code"`
	SellerPhone string     `json:"seller_phone"`
	Images      []string   `json:"images"`
	Status      string     `json:"status"`
	Views       int64      `json:"views"`
	ContactLink string     `json:"contact_link"`
	SoldAt      *time.Time `json:"sold_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toListingResponse(l *entity.Listing) *ListingResponse {
	return &ListingResponse{
		ID:          l.ID,
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
		ContactLink: l.ContactLink(),
		SoldAt:      l.SoldAt,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toListingResponses(listings []*entity.Listing) []*ListingResponse {
	out := make([]*ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}

	return out
}

// CreateListing handles posting a new listing
func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	input := usecase.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Price:       req.Price,
		IsDonation:  req.IsDonation,
		CountryCode: req.CountryCode,
		SellerPhone: req.SellerPhone,
		Images:      req.Images,
	}

	listing, err := h.listingUC.Create(c.Request().Context(), middleware.GetActor(c), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toListingResponse(listing), "Listing created successfully")
}

// GetListing handles retrieving one listing
func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toListingResponse(listing), "Listing retrieved successfully")
}

// SearchListings handles the public listing search
func (h *ListingHandler) SearchListings(c echo.Context) error {
	input := usecase.SearchInput{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		Status:   c.QueryParam("status"),
		Owner:    c.QueryParam("owner"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}

	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr == nil && lngErr == nil {
		input.Latitude = &lat
		input.Longitude = &lng
		if radius, err := strconv.ParseFloat(c.QueryParam("radius_km"), 64); err == nil {
			input.RadiusKm = radius
		}
	}

	listings, err := h.listingUC.Search(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toListingResponses(listings), "Listings retrieved successfully")
}

// MarkSold handles the active -> sold transition
func (h *ListingHandler) MarkSold(c echo.Context) error {
	listing, err := h.listingUC.MarkSold(c.Request().Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toListingResponse(listing), "Listing marked as sold")
}

// DeleteListing handles removing a listing
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	if err := h.listingUC.Delete(c.Request().Context(), middleware.GetActor(c), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": c.Param("id")}, "Listing deleted successfully")
}

// UpdateListing handles the administrative full edit
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req UpdateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	input := usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		Location:    req.Location,
		Price:       req.Price,
		CountryCode: req.CountryCode,
		SellerPhone: req.SellerPhone,
		Images:      req.Images,
		Status:      req.Status,
	}

	listing, err := h.listingUC.AdminUpdate(c.Request().Context(), middleware.GetActor(c), c.Param("id"), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toListingResponse(listing), "Listing updated successfully")
}

// IncrementView handles recording a listing view
func (h *ListingHandler) IncrementView(c echo.Context) error {
	if err := h.listingUC.IncrementView(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetContactLink handles retrieving the seller contact deep link
func (h *ListingHandler) GetContactLink(c echo.Context) error {
	link, err := h.listingUC.ContactLink(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"contact_link": link}, "Contact link retrieved successfully")
}

// GetContactQR handles rendering the contact deep link as a QR code
func (h *ListingHandler) GetContactQR(c echo.Context) error {
	qrCode, err := h.listingUC.ContactQR(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set("Content-Disposition", "inline; filename=contact-qr.png")

	return c.Blob(http.StatusOK, "image/png", qrCode)
}

func queryInt(c echo.Context, name string, fallback int64) int64 {
	value, err := strconv.ParseInt(c.QueryParam(name), 10, 64)
	if err != nil || value < 1 {
		return fallback
	}

	return value
}
