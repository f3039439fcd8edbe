package weather

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/millerserhii/shipment-tracking-api/internal/config"
	"github.com/millerserhii/shipment-tracking-api/internal/logger"
)

// ErrLookupFailed is returned for every upstream failure. Transport
// details go to the log, never to the caller.
var ErrLookupFailed = errors.New("weather lookup failed")

// Connector performs outbound lookups against the weather provider.
// Construct it once and share it; the API key and base URL are read at
// construction and never change afterwards.
type Connector struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewConnector builds a connector from the weather config section.
func NewConnector(cfg config.WeatherConfig) *Connector {
	return &Connector{
		apiKey:  cfg.APIKey,
		baseURL: cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

// Fetch issues one outbound request for the given location. Each call
// is a single attempt, no retries.
func (c *Connector) Fetch(ctx context.Context, postalCode, country string) (map[string]interface{}, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		logger.Errorw("weather_url_invalid", "url", c.baseURL, "error", err)
		return nil, ErrLookupFailed
	}
	query := endpoint.Query()
	query.Set("postal_code", postalCode)
	query.Set("country", country)
	query.Set("key", c.apiKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		logger.Errorw("weather_request_build_failed", "error", err)
		return nil, ErrLookupFailed
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Errorw("weather_fetch_failed",
			"postal_code", postalCode,
			"country", country,
			"elapsed", time.Since(started).String(),
			"error", err,
		)
		return nil, ErrLookupFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Errorw("weather_fetch_bad_status",
			"postal_code", postalCode,
			"country", country,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return nil, ErrLookupFailed
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Errorw("weather_decode_failed",
			"postal_code", postalCode,
			"country", country,
			"error", err,
		)
		return nil, ErrLookupFailed
	}
	return payload, nil
}
