package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func TestMemoryStoreSessionRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	session := models.NewSessionState("sess-1")
	session.Token = "backend-jwt"
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "backend-jwt", loaded.Token)

	// The store hands out copies; mutating the loaded value must not
	// leak back.
	loaded.Token = "changed"
	again, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "backend-jwt", again.Token)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.NewSessionState("sess-1")))
	require.NoError(t, store.SaveCart(ctx, "sess-1", models.NewCart()))

	time.Sleep(20 * time.Millisecond)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetCart(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCleanupReapsExpired(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.NewSessionState("sess-1")))
	require.NoError(t, store.SaveCart(ctx, "sess-1", models.NewCart()))
	require.NoError(t, store.SaveWishlist(ctx, "sess-1", []models.WishlistItem{{ProductID: "p1"}}))

	time.Sleep(20 * time.Millisecond)

	removed := store.Cleanup()
	assert.Equal(t, 3, removed)
	assert.Zero(t, store.Count())
}

func TestMemoryStoreCartIsolation(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	cart := models.NewCart()
	cart.AddItem(models.CartItem{ProductID: "p1", Price: 10, Quantity: 1})
	require.NoError(t, store.SaveCart(ctx, "sess-1", cart))

	// Mutating the saved cart afterwards must not affect the stored copy.
	cart.AddItem(models.CartItem{ProductID: "p2", Price: 5, Quantity: 1})

	loaded, err := store.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
}

func TestStoreViewsShareBackingData(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	carts := store.CartStore()
	cart := models.NewCart()
	cart.AddItem(models.CartItem{ProductID: "p1", Price: 10, Quantity: 2})
	require.NoError(t, carts.Save(ctx, "sess-1", cart))

	loaded, err := store.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.TotalItems)

	wishlists := store.WishlistStore()
	require.NoError(t, wishlists.Save(ctx, "sess-1", []models.WishlistItem{{ProductID: "p1"}}))
	items, err := wishlists.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
