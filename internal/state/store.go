// Package state holds the session-scoped client state of the storefront:
// the auth state machine, the cart aggregate and the wishlist. Stores are
// explicit containers injected into the handler layer, with a Redis
// implementation for real deployments and an in-memory one for tests and
// for graceful degradation when Redis is unavailable.
package state

import (
	"context"
	"errors"

	"storefront-service/internal/models"
)

// ErrNotFound is returned when no record exists for a session.
var ErrNotFound = errors.New("session state not found")

// AuthStore persists the per-session auth state machine.
type AuthStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	Save(ctx context.Context, session *models.SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// CartStore persists the per-session cart aggregate.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, sessionID string, cart *models.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// WishlistStore persists the per-session wishlist.
type WishlistStore interface {
	Get(ctx context.Context, sessionID string) ([]models.WishlistItem, error)
	Save(ctx context.Context, sessionID string, items []models.WishlistItem) error
	Delete(ctx context.Context, sessionID string) error
}
