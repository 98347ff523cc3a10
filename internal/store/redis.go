package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter implements Adapter on a Redis key-value store, for
// deployments where store state must survive the process host.
type RedisAdapter struct {
	client *redis.Client
	prefix string
}

// NewRedisAdapter creates a Redis-backed adapter. prefix namespaces the
// store keys within a shared Redis instance; it may be empty.
func NewRedisAdapter(client *redis.Client, prefix string) *RedisAdapter {
	return &RedisAdapter{client: client, prefix: prefix}
}

func (a *RedisAdapter) key(key string) string {
	if a.prefix == "" {
		return key
	}
	return a.prefix + ":" + key
}

// Load reads the blob stored under key. An absent key yields (nil, nil).
func (a *RedisAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := a.client.Get(ctx, a.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state from redis: %w", err)
	}

	return data, nil
}

// Save writes the blob under key with no expiration.
func (a *RedisAdapter) Save(ctx context.Context, key string, data []byte) error {
	if err := a.client.Set(ctx, a.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write state to redis: %w", err)
	}

	return nil
}

// Delete removes the blob under key. DEL on an absent key is a no-op.
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Del(ctx, a.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete state from redis: %w", err)
	}

	return nil
}
