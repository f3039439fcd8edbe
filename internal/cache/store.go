package cache

import (
	"context"
	"time"
)

// RedisStore exposes the shared Redis cache through instance methods,
// for components that accept a pluggable store instead of calling the
// package-level helpers.
type RedisStore struct{}

// NewRedisStore creates a store backed by the shared Redis client.
func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

// Get loads a cached JSON value into dest.
func (s *RedisStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return GetJSON(ctx, key, dest)
}

// Set stores value under key with the given TTL.
func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return SetJSON(ctx, key, value, ttl)
}
