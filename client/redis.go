package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// wishlistKey is the fixed storage key shared by all adapters.
const wishlistKey = "wishlist"

// RedisAdapter stores the wishlist as a JSON value under a fixed key in
// Redis. Suited to kiosk and in-store deployments where browsing sessions
// share a device profile backed by a local Redis.
type RedisAdapter struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

// NewRedisAdapter creates a Redis-backed adapter. The session ID scopes the
// storage key so sessions on a shared device do not see each other's lists.
func NewRedisAdapter(client *redis.Client, sessionID string) *RedisAdapter {
	return &RedisAdapter{
		client:  client,
		key:     wishlistKey + ":" + sessionID,
		timeout: 5 * time.Second,
	}
}

func (a *RedisAdapter) Load() ([]Item, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	data, err := a.client.Get(ctx, a.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []Item{}, nil
		}
		return nil, &ReadError{Err: err}
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ReadError{Err: err}
	}
	if items == nil {
		items = []Item{}
	}

	return items, nil
}

func (a *RedisAdapter) Save(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return &WriteError{Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.client.Set(ctx, a.key, data, 0).Err(); err != nil {
		return &WriteError{Err: err}
	}

	return nil
}
