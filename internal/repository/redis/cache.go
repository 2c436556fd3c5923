package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/domain"
)

const keyPrefix = "wishlist:"

// ErrCacheMiss is returned when the session has no cached wishlist.
var ErrCacheMiss = redis.Nil

// WishlistCache caches a session's full wishlist in Redis. PostgreSQL stays
// the source of truth; the cache only shortcuts the hot GET path and is
// invalidated on every mutation.
type WishlistCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWishlistCache creates a new Redis-backed wishlist cache.
func NewWishlistCache(client *redis.Client, ttl time.Duration) *WishlistCache {
	return &WishlistCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a session's cached wishlist. Returns ErrCacheMiss when the
// key does not exist.
func (c *WishlistCache) Get(ctx context.Context, sessionID string) ([]*domain.Item, error) {
	data, err := c.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get wishlist: %w", err)
	}

	var items []*domain.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cached wishlist: %w", err)
	}

	return items, nil
}

// Set stores a session's wishlist with the configured TTL.
func (c *WishlistCache) Set(ctx context.Context, sessionID string, items []*domain.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+sessionID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set wishlist: %w", err)
	}

	return nil
}

// Invalidate removes a session's cached wishlist.
func (c *WishlistCache) Invalidate(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del wishlist: %w", err)
	}

	return nil
}
