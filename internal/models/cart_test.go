package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertTotalsInvariant(t *testing.T, cart *Cart) {
	t.Helper()

	totalItems := 0
	totalAmount := 0.0
	for _, item := range cart.Items {
		totalItems += item.Quantity
		totalAmount += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, totalItems, cart.TotalItems)
	assert.InDelta(t, totalAmount, cart.TotalAmount, 0.0001)
}

func TestCartAddItemMergesSameProduct(t *testing.T) {
	cart := NewCart()

	cart.AddItem(CartItem{ProductID: "p1", Name: "Widget", Price: 100, Quantity: 2})
	cart.AddItem(CartItem{ProductID: "p1", Name: "Widget", Price: 100, Quantity: 3})

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems)
	assert.InDelta(t, 500.0, cart.TotalAmount, 0.0001)
	assertTotalsInvariant(t, cart)
}

func TestCartAddItemKeepsVariantsSeparate(t *testing.T) {
	cart := NewCart()

	cart.AddItem(CartItem{ProductID: "p1", VariantID: "red", Price: 10, Quantity: 1})
	cart.AddItem(CartItem{ProductID: "p1", VariantID: "blue", Price: 12, Quantity: 1})

	require.Len(t, cart.Items, 2)
	assertTotalsInvariant(t, cart)
}

func TestCartAddItemDefaults(t *testing.T) {
	cart := NewCart()

	cart.AddItem(CartItem{ProductID: "p1", Price: 50, Quantity: -3})

	require.Len(t, cart.Items, 1)
	item := cart.Items[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, CartItemStatusAvailable, item.Status)
	assert.InDelta(t, 50.0, item.PriceAtAdd, 0.0001)
	assert.NotNil(t, item.AddedAt)
}

func TestCartUpdateItemQuantity(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "line-1", ProductID: "p1", Price: 20, Quantity: 2})

	ok := cart.UpdateItem("line-1", 7)

	require.True(t, ok)
	assert.Equal(t, 7, cart.Items[0].Quantity)
	assert.Equal(t, 7, cart.TotalItems)
	assert.InDelta(t, 140.0, cart.TotalAmount, 0.0001)
	assertTotalsInvariant(t, cart)
}

func TestCartUpdateItemZeroQuantityRemovesLine(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "line-1", ProductID: "p1", Price: 20, Quantity: 2})
	cart.AddItem(CartItem{ID: "line-2", ProductID: "p2", Price: 5, Quantity: 1})

	require.True(t, cart.UpdateItem("line-1", 0))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "line-2", cart.Items[0].ID)
	assertTotalsInvariant(t, cart)

	require.True(t, cart.UpdateItem("line-2", -1))
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalAmount)
}

func TestCartUpdateItemUnknownLine(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "line-1", ProductID: "p1", Price: 20, Quantity: 2})

	assert.False(t, cart.UpdateItem("missing", 3))
	assert.Equal(t, 2, cart.TotalItems)
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ID: "line-1", ProductID: "p1", Price: 20, Quantity: 2})

	assert.True(t, cart.RemoveItem("line-1"))
	assert.False(t, cart.RemoveItem("line-1"))
	assert.Empty(t, cart.Items)
	assertTotalsInvariant(t, cart)
}

func TestCartClearIsIdempotent(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ProductID: "p1", Price: 20, Quantity: 2})

	cart.Clear()
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalAmount)

	cart.Clear()
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
}

func TestCartMergeCollapsesDuplicates(t *testing.T) {
	local := NewCart()
	local.AddItem(CartItem{ProductID: "p1", Name: "Widget", Price: 100, Quantity: 2})
	local.AddItem(CartItem{ProductID: "p2", Name: "Gadget", Price: 30, Quantity: 1})

	remote := NewCart()
	remote.AddItem(CartItem{ProductID: "p1", Name: "Widget", Price: 100, Quantity: 3})
	remote.AddItem(CartItem{ProductID: "p3", Name: "Gizmo", Price: 15, Quantity: 4})

	local.Merge(remote)

	require.Len(t, local.Items, 3)
	for _, item := range local.Items {
		if item.ProductID == "p1" {
			assert.Equal(t, 5, item.Quantity)
		}
	}
	assert.Equal(t, 10, local.TotalItems)
	assert.InDelta(t, 590.0, local.TotalAmount, 0.0001)
	assertTotalsInvariant(t, local)
}

func TestCartMergeNilIsNoop(t *testing.T) {
	cart := NewCart()
	cart.AddItem(CartItem{ProductID: "p1", Price: 10, Quantity: 1})

	cart.Merge(nil)

	assert.Len(t, cart.Items, 1)
}

func TestCartTotalsInvariantUnderMixedOperations(t *testing.T) {
	cart := NewCart()

	cart.AddItem(CartItem{ID: "a", ProductID: "p1", Price: 9.99, Quantity: 3})
	cart.AddItem(CartItem{ID: "b", ProductID: "p2", Price: 24.5, Quantity: 1})
	cart.UpdateItem("a", 5)
	cart.AddItem(CartItem{ID: "c", ProductID: "p3", Price: 2.25, Quantity: 8})
	cart.RemoveItem("b")
	cart.UpdateItem("c", 0)

	assertTotalsInvariant(t, cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.TotalItems)
	assert.InDelta(t, 49.95, cart.TotalAmount, 0.0001)
}
