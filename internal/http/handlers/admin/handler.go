package admin

import "github.com/millerserhii/shipment-tracking-api/internal/provider"

// Handler serves the superuser-only administration API.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
