package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/millerserhii/shipment-tracking-api/internal/config"
)

func newTestConnector(serverURL string) *Connector {
	return NewConnector(config.WeatherConfig{
		APIKey:         "test-key",
		URL:            serverURL,
		TimeoutSeconds: 1,
	})
}

func TestConnectorFetchSuccess(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"postal_code": r.URL.Query().Get("postal_code"),
			"country":     r.URL.Query().Get("country"),
			"key":         r.URL.Query().Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"weather":"sunny"}`))
	}))
	defer server.Close()

	connector := newTestConnector(server.URL)
	payload, err := connector.Fetch(context.Background(), "90766", "DE")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if payload["weather"] != "sunny" {
		t.Fatalf("payload want weather=sunny, got=%v", payload)
	}
	if gotQuery["postal_code"] != "90766" || gotQuery["country"] != "DE" || gotQuery["key"] != "test-key" {
		t.Fatalf("unexpected query params: %v", gotQuery)
	}
}

func TestConnectorFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	connector := newTestConnector(server.URL)
	_, err := connector.Fetch(context.Background(), "12345", "US")
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("want ErrLookupFailed, got=%v", err)
	}
}

func TestConnectorFetchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	connector := newTestConnector(server.URL)
	_, err := connector.Fetch(context.Background(), "12345", "US")
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("want ErrLookupFailed, got=%v", err)
	}
}

func TestConnectorFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(1500 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	connector := newTestConnector(server.URL)
	_, err := connector.Fetch(context.Background(), "12345", "US")
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("want ErrLookupFailed, got=%v", err)
	}
}

func TestConnectorFetchBadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	connector := newTestConnector(server.URL)
	_, err := connector.Fetch(context.Background(), "12345", "US")
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("want ErrLookupFailed, got=%v", err)
	}
}
