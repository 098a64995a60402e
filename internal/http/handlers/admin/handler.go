package admin

import "github.com/smiley-shop/smiley/internal/provider"

// Handler back-office API handlers
type Handler struct {
	*provider.Container
}

// New creates the back-office handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
