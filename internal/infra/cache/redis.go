package cache

import (
	"context"
	"time"

	"soko/config"
	"soko/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// redisCache implements service.Cache on a Redis instance, for deployments
// running more than one replica where reports must be cached once.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed cache from the given connection config.
func NewRedisCache(cfg *config.RedisConfig) service.Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &redisCache{client: client}
}

// Get returns the cached value for key or service.ErrCacheMiss.
func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrCacheMiss
		}

		return nil, errors.Wrap(err, "failed to get cache key")
	}

	return value, nil
}

// Set stores value under key; Redis expires the key after the TTL.
func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to set cache key")
	}

	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "failed to delete cache keys")
	}

	return nil
}

// Close closes the underlying Redis client.
func (c *redisCache) Close() error {
	return errors.WithStack(c.client.Close())
}
