package handler

import (
	"log/slog"
	"net/http"

	"soko/internal/delivery/http/middleware"
	"soko/internal/delivery/http/response"
	"soko/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AnalyticsHandlerParams holds dependencies for AnalyticsHandler, injected by Fx.
type AnalyticsHandlerParams struct {
	fx.In

	AnalyticsUC usecase.AnalyticsUsecase
	Logger      *slog.Logger
}

// AnalyticsHandler holds dependencies for dashboard handlers
type AnalyticsHandler struct {
	analyticsUC usecase.AnalyticsUsecase
	logger      *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler
func NewAnalyticsHandler(params AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUC: params.AnalyticsUC,
		logger:      params.Logger,
	}
}

// GetSellerReport handles retrieving one seller's dashboard
func (h *AnalyticsHandler) GetSellerReport(c echo.Context) error {
	report, err := h.analyticsUC.SellerReport(c.Request().Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Seller report retrieved successfully")
}

// GetPlatformReport handles retrieving the platform-wide dashboard
func (h *AnalyticsHandler) GetPlatformReport(c echo.Context) error {
	report, err := h.analyticsUC.PlatformReport(c.Request().Context(), middleware.GetActor(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Platform report retrieved successfully")
}
