package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/millerserhii/shipment-tracking-api/internal/config"
	"github.com/millerserhii/shipment-tracking-api/internal/provider"
	"github.com/millerserhii/shipment-tracking-api/internal/weather"

	"github.com/gin-gonic/gin"
)

type stubWeatherStore struct {
	entries map[string][]byte
}

func (s *stubWeatherStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (s *stubWeatherStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.entries == nil {
		s.entries = map[string][]byte{}
	}
	s.entries[key] = raw
	return nil
}

func newWeatherTestHandler(t *testing.T, upstream *httptest.Server) *Handler {
	t.Helper()
	connector := weather.NewConnector(config.WeatherConfig{
		APIKey:         "test-key",
		URL:            upstream.URL,
		TimeoutSeconds: 1,
	})
	svc := weather.NewService(connector, &stubWeatherStore{}, time.Hour)
	return &Handler{Container: &provider.Container{WeatherService: svc}}
}

func TestGetWeatherPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"weather":"sunny"}`))
	}))
	defer upstream.Close()

	h := newWeatherTestHandler(t, upstream)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/weather/get-weather?postal_code=90766&country=DE", nil)

	h.GetWeather(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if payload["weather"] != "sunny" {
		t.Fatalf("expected provider payload passed through, got %v", payload)
	}
}

func TestGetWeatherMissingParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no outbound call expected on validation failure")
	}))
	defer upstream.Close()

	h := newWeatherTestHandler(t, upstream)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/weather/get-weather?postal_code=90766", nil)

	h.GetWeather(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if !strings.Contains(w.Body.String(), "country") {
		t.Fatalf("expected country listed as missing, got %s", w.Body.String())
	}
}

func TestGetWeatherOversizedParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no outbound call expected on validation failure")
	}))
	defer upstream.Close()

	h := newWeatherTestHandler(t, upstream)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/weather/get-weather?postal_code=12345678901&country=GERM", nil)

	h.GetWeather(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "no more than 10 characters") || !strings.Contains(body, "no more than 3 characters") {
		t.Fatalf("expected both length violations listed, got %s", body)
	}
}

func TestGetWeatherUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	h := newWeatherTestHandler(t, upstream)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/weather/get-weather?postal_code=90766&country=DE", nil)

	h.GetWeather(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error in getting weather data") {
		t.Fatalf("expected uniform lookup failure message, got %s", w.Body.String())
	}
}
