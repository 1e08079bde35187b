// Package cache implements the availability cache. The cache is never
// authoritative, so every backend failure is logged, counted and swallowed.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slot-swapper/internal/pkg/config"
	"slot-swapper/internal/pkg/metrics"
	"slot-swapper/internal/usecase/shared"

	"github.com/go-redis/redis/v8"
)

const scanCount = 100

type RedisCache struct {
	client  *redis.Client
	metrics metrics.Recorder
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		MaxRetries:  cfg.MaxRetries,
	})
}

func NewRedisCache(client *redis.Client, rec metrics.Recorder) *RedisCache {
	return &RedisCache{client: client, metrics: rec}
}

var _ shared.Cache = (*RedisCache)(nil)

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.fail("get", err, slog.String("key", key))
		}
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.fail("set", err, slog.String("key", key))
	}
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.fail("delete", err, slog.Any("keys", keys))
	}
}

// DeleteByPrefix walks the keyspace with SCAN; KEYS would block the server.
func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, prefix+"*", scanCount).Result()
		if err != nil {
			c.fail("scan", err, slog.String("prefix", prefix))
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.fail("delete", err, slog.String("prefix", prefix))
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) fail(op string, err error, attrs ...any) {
	c.metrics.RecordCacheError(op)
	args := append([]any{slog.String("op", op), slog.String("error", err.Error())}, attrs...)
	slog.Warn("cache operation failed", args...)
}
