package usecase

import (
	"context"

	"soko/internal/domain/analytics"
	"soko/internal/domain/policy"
)

// AnalyticsUsecase defines the interface for dashboard report use cases
type AnalyticsUsecase interface {
	// SellerReport computes the dashboard for one seller. Sellers may only
	// request their own report.
	SellerReport(ctx context.Context, actor policy.Actor, sellerID string) (*analytics.SellerReport, error)

	// PlatformReport computes the platform-wide dashboard. Admin only.
	PlatformReport(ctx context.Context, actor policy.Actor) (*analytics.PlatformReport, error)
}
