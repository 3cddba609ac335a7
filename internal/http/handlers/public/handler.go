package public

import "github.com/cargomart/internal/provider"

// Handler customer-facing API handler.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
