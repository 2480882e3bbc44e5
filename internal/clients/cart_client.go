package clients

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// CartClient wraps the /api/cart endpoints. The session cart is the
// authoritative copy for the UI; the backend mirror exists so a cart
// survives across devices. Both operations are best-effort: a failed
// mirror must never break the shopping flow.
type CartClient struct {
	backend *Backend
}

// NewCartClient creates a cart client.
func NewCartClient(backend *Backend) *CartClient {
	return &CartClient{backend: backend}
}

// Fetch loads the server-side cart for an authenticated user. Degrades
// silently: returns nil (no cart) on any failure.
func (c *CartClient) Fetch(ctx context.Context, token string) *models.Cart {
	var cart models.Cart
	if err := c.backend.DoJSON(ctx, http.MethodGet, "/api/cart", token, nil, &cart); err != nil {
		log.WithError(err).Warn("cart fetch failed, falling back to session cart")
		return nil
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart
}

// Sync mirrors the session cart to the backend. Degrades silently: the
// local cart stays authoritative and the error is only logged.
func (c *CartClient) Sync(ctx context.Context, token string, cart *models.Cart) {
	if token == "" || cart == nil {
		return
	}
	if err := c.backend.DoJSON(ctx, http.MethodPut, "/api/cart", token, cart, nil); err != nil {
		log.WithError(err).Warn("cart sync failed, keeping local cart")
	}
}
