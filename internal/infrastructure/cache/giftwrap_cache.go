package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"giftwrap-admin-layer/internal/domain"
	"giftwrap-admin-layer/internal/ports"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix           = "giftwrap:view:"
	generationKeyPrefix = "giftwrap:gen:"
	DefaultTTL          = 5 * time.Minute
)

// RedisGiftWrapCache stores the storefront read model as JSON per shop
type RedisGiftWrapCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.GiftWrapCache = (*RedisGiftWrapCache)(nil)

// NewRedisGiftWrapCache creates a Redis backed cache
func NewRedisGiftWrapCache(client *redis.Client, ttl time.Duration) *RedisGiftWrapCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisGiftWrapCache{client: client, ttl: ttl}
}

func key(shop string) string {
	return keyPrefix + shop
}

func generationKey(shop string) string {
	return generationKeyPrefix + shop
}

// Get returns the cached view of a shop
func (c *RedisGiftWrapCache) Get(ctx context.Context, shop string) (*domain.GiftWrapView, bool, error) {
	data, err := c.client.Get(ctx, key(shop)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached view: %w", err)
	}

	var view domain.GiftWrapView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached view: %w", err)
	}
	return &view, true, nil
}

// Generation returns the shop's invalidation counter; 0 if it was never invalidated
func (c *RedisGiftWrapCache) Generation(ctx context.Context, shop string) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey(shop)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return generation, nil
}

// Set caches the view for the configured TTL if the shop's generation still matches. The
// generation key is watched so an Invalidate racing with the write aborts it.
func (c *RedisGiftWrapCache) Set(ctx context.Context, shop string, generation int64, view *domain.GiftWrapView) (bool, error) {
	data, err := json.Marshal(view)
	if err != nil {
		return false, fmt.Errorf("failed to encode view: %w", err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey(shop)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(shop), data, c.ttl)
			return nil
		}); err != nil {
			return err
		}
		stored = true
		return nil
	}, generationKey(shop))
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to cache view: %w", err)
	}
	return stored, nil
}

// Invalidate drops the cached view of a shop and bumps its generation
func (c *RedisGiftWrapCache) Invalidate(ctx context.Context, shop string) error {
	if _, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(shop))
		pipe.Del(ctx, key(shop))
		return nil
	}); err != nil {
		return fmt.Errorf("failed to invalidate cached view: %w", err)
	}
	return nil
}

// NoopGiftWrapCache is used when no Redis URL is configured
type NoopGiftWrapCache struct{}

func (NoopGiftWrapCache) Get(context.Context, string) (*domain.GiftWrapView, bool, error) {
	return nil, false, nil
}

func (NoopGiftWrapCache) Generation(context.Context, string) (int64, error) { return 0, nil }

func (NoopGiftWrapCache) Set(context.Context, string, int64, *domain.GiftWrapView) (bool, error) {
	return false, nil
}

func (NoopGiftWrapCache) Invalidate(context.Context, string) error { return nil }
