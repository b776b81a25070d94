package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-analytics/internal/config"
)

// ResultCache memoizes computed dashboard payloads in Redis, keyed by
// dataset version and filter fingerprint. A nil or unreachable cache
// degrades to compute-only behavior; it never fails a request.
type ResultCache struct {
	client   *redis.Client
	ttl      time.Duration
	logger   *zap.Logger
	warnOnce sync.Once
}

// New connects to Redis using the provided configuration. Returns nil when
// caching is disabled.
func New(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, logger *zap.Logger) *ResultCache {
	if !cacheCfg.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis, dashboard memoization degraded", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &ResultCache{client: client, ttl: cacheCfg.TTL(), logger: logger}
}

// Key builds the cache key for one dataset version and filter fingerprint.
func Key(datasetVersion time.Time, fingerprint string) string {
	return fmt.Sprintf("dashboard:%d:%s", datasetVersion.UnixNano(), fingerprint)
}

// Get returns the cached payload for key, or nil on miss or cache trouble.
func (c *ResultCache) Get(ctx context.Context, key string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warnOnce.Do(func() {
				c.logger.Warn("cache read failed, serving computed results", zap.Error(err))
			})
		}
		return nil
	}
	return data
}

// Set stores the payload under key with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.warnOnce.Do(func() {
			c.logger.Warn("cache write failed", zap.Error(err))
		})
	}
}

// Flush drops all memoized dashboard entries, used when the dataset reloads.
func (c *ResultCache) Flush(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, "dashboard:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Ping verifies Redis connectivity.
func (c *ResultCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the client.
func (c *ResultCache) Close() {
	if c != nil && c.client != nil {
		_ = c.client.Close()
	}
}
