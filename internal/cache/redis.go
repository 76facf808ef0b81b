package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockSuffix  = ":lock"
	lockTTL     = 2 * time.Minute
	pingTimeout = 2 * time.Second
)

// RedisStore is a SharedStore backed by Redis
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ SharedStore = (*RedisStore)(nil)

// NewRedisStore wraps client. Keys are prefixed with prefix and values expire after ttl.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// DialRedis parses url, connects and pings the server
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Get implements SharedStore
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, nil
}

// Set implements SharedStore
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Acquire implements SharedStore
func (s *RedisStore) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key+lockSuffix, "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redis lock %q: %w", key, err)
	}
	return ok, nil
}

// Release implements SharedStore
func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key+lockSuffix).Err(); err != nil {
		return fmt.Errorf("redis unlock %q: %w", key, err)
	}
	return nil
}
