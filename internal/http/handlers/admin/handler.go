package admin

import "github.com/cargomart/internal/provider"

// Handler admin and supplier API handler.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
