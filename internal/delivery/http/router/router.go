// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"soko/internal/delivery/http/middleware"
	"soko/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ListingHandler   *handler.ListingHandler
	AnalyticsHandler *handler.AnalyticsHandler
	UserHandler      *handler.UserHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	listingHandler   *handler.ListingHandler
	analyticsHandler *handler.AnalyticsHandler
	userHandler      *handler.UserHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		listingHandler:   params.ListingHandler,
		analyticsHandler: params.AnalyticsHandler,
		userHandler:      params.UserHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Listing reads are public; writes require authentication and go
	// through the policy checks in the use case layer.
	listings := api.Group("/listings")
	{
		listings.GET("", r.listingHandler.SearchListings, r.authMiddleware.OptionalAuthenticate)
		listings.GET("/:id", r.listingHandler.GetListing)
		listings.POST("/:id/views", r.listingHandler.IncrementView)
		listings.GET("/:id/contact", r.listingHandler.GetContactLink)
		listings.GET("/:id/contact/qr", r.listingHandler.GetContactQR)

		listings.POST("", r.listingHandler.CreateListing, r.authMiddleware.Authenticate)
		listings.PATCH("/:id/sold", r.listingHandler.MarkSold, r.authMiddleware.Authenticate)
		listings.DELETE("/:id", r.listingHandler.DeleteListing, r.authMiddleware.Authenticate)
		listings.PUT("/:id", r.listingHandler.UpdateListing, r.authMiddleware.Authenticate)
	}

	// Authenticated profile
	api.GET("/me", r.userHandler.GetMe, r.authMiddleware.Authenticate)

	// Dashboards
	api.GET("/sellers/:id/analytics", r.analyticsHandler.GetSellerReport, r.authMiddleware.Authenticate)
	api.GET("/admin/analytics", r.analyticsHandler.GetPlatformReport, r.authMiddleware.Authenticate)
}
