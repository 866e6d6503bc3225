package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"soko/config"
	"soko/internal/domain/analytics"
	"soko/internal/domain/policy"
	"soko/internal/domain/repository"
	"soko/internal/domain/service"
	"soko/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const platformReportKey = "report:platform"

func sellerReportKey(sellerID string) string {
	return "report:seller:" + sellerID
}

type analyticsService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	cache       service.Cache
	config      *config.Config
	logger      *slog.Logger
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	ListingRepo repository.ListingRepository
	UserRepo    repository.UserRepository
	Cache       service.Cache
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		listingRepo: params.ListingRepo,
		userRepo:    params.UserRepo,
		cache:       params.Cache,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// SellerReport computes the dashboard for one seller, serving from cache
// when a fresh copy exists. Mutating operations invalidate the key.
func (s *analyticsService) SellerReport(ctx context.Context, actor policy.Actor, sellerID string) (*analytics.SellerReport, error) {
	if !policy.Can(actor, policy.ActionViewSellerAnalytics, sellerID) {
		return nil, forbidden(actor, policy.ActionViewSellerAnalytics)
	}

	key := sellerReportKey(sellerID)
	var cached analytics.SellerReport
	if s.readCached(ctx, key, &cached) {
		return &cached, nil
	}

	listings, err := s.listingRepo.FindByOwner(ctx, sellerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find listings by owner")
	}

	report := analytics.ComputeSeller(sellerID, listings)
	s.writeCached(ctx, key, report)

	return &report, nil
}

// PlatformReport computes the platform-wide dashboard. Admin only.
func (s *analyticsService) PlatformReport(ctx context.Context, actor policy.Actor) (*analytics.PlatformReport, error) {
	if !policy.Can(actor, policy.ActionViewPlatformAnalytics, "") {
		return nil, forbidden(actor, policy.ActionViewPlatformAnalytics)
	}

	var cached analytics.PlatformReport
	if s.readCached(ctx, platformReportKey, &cached) {
		return &cached, nil
	}

	listings, err := s.listingRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find listings")
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find users")
	}

	report := analytics.ComputePlatform(listings, users, time.Now().UTC(), s.topCategories())
	s.writeCached(ctx, platformReportKey, report)

	return &report, nil
}

func (s *analyticsService) topCategories() int {
	if s.config.Analytics != nil && s.config.Analytics.TopCategories > 0 {
		return s.config.Analytics.TopCategories
	}

	return 5
}

func (s *analyticsService) reportTTL() time.Duration {
	if s.config.Cache != nil && s.config.Cache.TTL > 0 {
		return s.config.Cache.TTL
	}

	return time.Minute
}

// readCached deserializes a cached report into out. A miss or a decode
// failure both fall through to recomputation.
func (s *analyticsService) readCached(ctx context.Context, key string, out any) bool {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, service.ErrCacheMiss) {
			s.logger.Warn("Failed to read cached report",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}

		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("Failed to decode cached report",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return false
	}

	return true
}

func (s *analyticsService) writeCached(ctx context.Context, key string, report any) {
	data, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn("Failed to encode report for caching",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return
	}

	if err := s.cache.Set(ctx, key, data, s.reportTTL()); err != nil {
		s.logger.Warn("Failed to cache report",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
