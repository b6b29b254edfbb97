package public

import "github.com/whitebirds/internal/provider"

// Handler storefront API handlers
type Handler struct {
	*provider.Container
}

// New creates the storefront handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
