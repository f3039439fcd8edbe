package api

import "github.com/millerserhii/shipment-tracking-api/internal/provider"

// Handler serves the public and user-facing API.
type Handler struct {
	*provider.Container
}

// New creates the API handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
