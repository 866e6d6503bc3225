// Package cache provides TTL cache implementations behind the
// service.Cache interface.
package cache

import (
	"context"
	"log/slog"
	"time"

	"soko/config"
	"soko/internal/domain/constants"
	"soko/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopCache misses every Get and accepts every Set, for deployments that
// disable report caching entirely.
type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, error) {
	return nil, service.ErrCacheMiss
}

func (noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, ...string) error { return nil }

func (noopCache) Close() error { return nil }

// CacheParams holds dependencies for Cache, injected by Fx
type CacheParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewCache creates a Cache based on configuration
func NewCache(params CacheParams) (service.Cache, error) {
	cfg := params.Config.Cache
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.CacheProviderMemory {
		logger.Info("Using in-memory cache")

		return registerClose(params.Lc, logger, NewMemoryCache()), nil
	}

	switch cfg.Provider {
	case constants.CacheProviderNoop:
		logger.Info("Cache disabled, using no-op cache")

		return noopCache{}, nil

	case constants.CacheProviderRedis:
		if cfg.Redis == nil || cfg.Redis.Addr == "" {
			return nil, errors.New("redis address is required for redis provider")
		}
		logger.Info("Using Redis cache", slog.String("addr", cfg.Redis.Addr))

		return registerClose(params.Lc, logger, NewRedisCache(cfg.Redis)), nil

	default:
		return nil, errors.Errorf("unknown cache provider: %s", cfg.Provider)
	}
}

func registerClose(lc fx.Lifecycle, logger *slog.Logger, c service.Cache) service.Cache {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing cache")

			return c.Close()
		},
	})

	return c
}

// Module provides the cache FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewCache),
)
