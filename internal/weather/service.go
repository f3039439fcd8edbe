package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/millerserhii/shipment-tracking-api/internal/logger"
)

// Store is the cache the service reads through. Get reports whether
// the key was present.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service answers weather lookups cache-first. Within the TTL the
// cached payload is authoritative, upstream is not consulted again.
type Service struct {
	connector *Connector
	store     Store
	ttl       time.Duration
}

// NewService wires the service with its connector and cache store.
func NewService(connector *Connector, store Store, ttl time.Duration) *Service {
	return &Service{connector: connector, store: store, ttl: ttl}
}

// CacheKey builds the cache key for one location.
func CacheKey(postalCode, country string) string {
	return fmt.Sprintf("weather_%s_%s", postalCode, country)
}

// GetWeather returns the cached payload for the location, fetching
// from upstream on a miss. A store failure degrades to a plain fetch.
func (s *Service) GetWeather(ctx context.Context, postalCode, country string) (map[string]interface{}, error) {
	key := CacheKey(postalCode, country)

	var cached map[string]interface{}
	hit, err := s.store.Get(ctx, key, &cached)
	if err != nil {
		logger.Warnw("weather_cache_read_failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	payload, err := s.connector.Fetch(ctx, postalCode, country)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, key, payload, s.ttl); err != nil {
		logger.Warnw("weather_cache_write_failed", "key", key, "error", err)
	}
	return payload, nil
}
