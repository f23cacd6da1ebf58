package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ContentCache stores rendered public payloads. All entries are dropped at once
// whenever any admin edit lands.
type ContentCache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any)
	InvalidateAll(ctx context.Context)
}

// RedisContentCache namespaces keys under a version counter; bumping the counter
// orphans every previous entry and lets TTLs reclaim them.
type RedisContentCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisContentCache(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisContentCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisContentCache{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (c *RedisContentCache) versionKey() string {
	return c.prefix + ":version"
}

func (c *RedisContentCache) namespaced(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return c.prefix + ":v" + strconv.FormatInt(v, 10) + ":" + key, nil
}

func (c *RedisContentCache) Get(ctx context.Context, key string, dst any) bool {
	full, err := c.namespaced(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "content cache version lookup failed", "error", err)
		return false
	}
	raw, err := c.client.Get(ctx, full).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "content cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.WarnContext(ctx, "content cache entry is corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *RedisContentCache) Set(ctx context.Context, key string, value any) {
	full, err := c.namespaced(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "content cache version lookup failed", "error", err)
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, full, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "content cache write failed", "key", key, "error", err)
	}
}

func (c *RedisContentCache) InvalidateAll(ctx context.Context) {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		c.logger.ErrorContext(ctx, "content cache invalidation failed", "error", err)
	}
}

// NoopContentCache is used when redis is not configured
type NoopContentCache struct{}

func (NoopContentCache) Get(context.Context, string, any) bool { return false }
func (NoopContentCache) Set(context.Context, string, any)      {}
func (NoopContentCache) InvalidateAll(context.Context)         {}
