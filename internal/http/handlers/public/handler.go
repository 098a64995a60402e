package public

import "github.com/smiley-shop/smiley/internal/provider"

// Handler storefront and customer API handlers
type Handler struct {
	*provider.Container
}

// New creates the storefront handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
