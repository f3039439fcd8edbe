package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mapStore struct {
	data map[string][]byte
}

func newMapStore() *mapStore {
	return &mapStore{data: map[string][]byte{}}
}

func (s *mapStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *mapStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func TestGetWeatherCachesFirstFetch(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"weather":"call-%d"}`, calls)
	}))
	defer server.Close()

	svc := NewService(newTestConnector(server.URL), newMapStore(), 2*time.Hour)

	first, err := svc.GetWeather(context.Background(), "12345", "US")
	if err != nil {
		t.Fatalf("first lookup failed: %v", err)
	}
	second, err := svc.GetWeather(context.Background(), "12345", "US")
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}

	if calls != 1 {
		t.Fatalf("outbound calls want 1, got=%d", calls)
	}
	if first["weather"] != "call-1" || second["weather"] != "call-1" {
		t.Fatalf("cached payload changed, first=%v second=%v", first, second)
	}
}

func TestGetWeatherSeparateKeys(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"weather":"sunny"}`))
	}))
	defer server.Close()

	svc := NewService(newTestConnector(server.URL), newMapStore(), 2*time.Hour)

	if _, err := svc.GetWeather(context.Background(), "12345", "US"); err != nil {
		t.Fatalf("first lookup failed: %v", err)
	}
	if _, err := svc.GetWeather(context.Background(), "90766", "DE"); err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("outbound calls want 2, got=%d", calls)
	}
}

func TestGetWeatherFetchFailureNotCached(t *testing.T) {
	fail := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"weather":"sunny"}`))
	}))
	defer server.Close()

	svc := NewService(newTestConnector(server.URL), newMapStore(), 2*time.Hour)

	if _, err := svc.GetWeather(context.Background(), "12345", "US"); !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("want ErrLookupFailed, got=%v", err)
	}

	fail = false
	payload, err := svc.GetWeather(context.Background(), "12345", "US")
	if err != nil {
		t.Fatalf("recovered lookup failed: %v", err)
	}
	if payload["weather"] != "sunny" {
		t.Fatalf("payload want weather=sunny, got=%v", payload)
	}
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey("90766", "DE"); got != "weather_90766_DE" {
		t.Fatalf("cache key want weather_90766_DE, got=%s", got)
	}
}
