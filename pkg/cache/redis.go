package cache

import (
	"context"
	"encoding/json"
	"time"

	"fairshare-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a thin JSON read-through cache over redis. A nil *Cache is valid
// and disables caching, so callers never branch on configuration.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// New returns nil when no redis address is configured.
func New(config utils.RedisConfig, log *zap.Logger) *Cache {
	if config.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &Cache{
		client: client,
		ttl:    config.TTL,
		log:    log.With(zap.String("component", "cache")),
	}
}

// Get unmarshals the cached value for key into dest. Returns false on miss,
// on redis failure, or when the cache is disabled; failures are logged and
// treated as misses so redis never breaks a request.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Cache payload corrupt", zap.Error(err), zap.String("key", key))
		return false
	}

	return true
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache marshal failed", zap.Error(err), zap.String("key", key))
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
