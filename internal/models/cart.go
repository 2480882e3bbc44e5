package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItemStatus represents availability of a cart line after validation
type CartItemStatus string

const (
	CartItemStatusAvailable    CartItemStatus = "AVAILABLE"
	CartItemStatusUnavailable  CartItemStatus = "UNAVAILABLE"
	CartItemStatusOutOfStock   CartItemStatus = "OUT_OF_STOCK"
	CartItemStatusLowStock     CartItemStatus = "LOW_STOCK"
	CartItemStatusPriceChanged CartItemStatus = "PRICE_CHANGED"
)

// CartItem is a single line in the session cart.
type CartItem struct {
	ID         string         `json:"id"`
	ProductID  string         `json:"productId"`
	VariantID  string         `json:"variantId,omitempty"`
	Name       string         `json:"name"`
	Price      float64        `json:"price"`
	PriceAtAdd float64        `json:"priceAtAdd"`
	Quantity   int            `json:"quantity"`
	VendorID   string         `json:"vendorId,omitempty"`
	Image      string         `json:"image,omitempty"`
	Status     CartItemStatus `json:"status"`
	AddedAt    *time.Time     `json:"addedAt,omitempty"`
}

// Cart is the session-scoped cart aggregate. TotalItems and TotalAmount
// are always recomputed from the item list after a mutation, never
// adjusted incrementally, so the derived totals cannot drift.
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalItems  int        `json:"totalItems"`
	TotalAmount float64    `json:"totalAmount"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// AddItem adds an item to the cart. An item with the same product and
// variant merges into the existing line (quantities summed, price taken
// from the newer payload when set).
func (c *Cart) AddItem(item CartItem) {
	now := time.Now()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.AddedAt == nil {
		item.AddedAt = &now
	}
	if item.PriceAtAdd == 0 {
		item.PriceAtAdd = item.Price
	}
	if item.Status == "" {
		item.Status = CartItemStatusAvailable
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	merged := false
	for i, existing := range c.Items {
		if existing.ProductID == item.ProductID && existing.VariantID == item.VariantID {
			c.Items[i].Quantity += item.Quantity
			if item.Price > 0 {
				c.Items[i].Price = item.Price
			}
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, item)
	}
	c.Recalculate()
}

// UpdateItem sets the quantity of a line. Quantity <= 0 removes the line
// rather than leaving a zero-quantity row. Returns false when the line
// does not exist.
func (c *Cart) UpdateItem(itemID string, quantity int) bool {
	found := false
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID == itemID {
			found = true
			if quantity > 0 {
				item.Quantity = quantity
				items = append(items, item)
			}
			continue
		}
		items = append(items, item)
	}
	if !found {
		return false
	}
	c.Items = items
	c.Recalculate()
	return true
}

// RemoveItem deletes a line from the cart. Returns false when the line
// does not exist.
func (c *Cart) RemoveItem(itemID string) bool {
	found := false
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return false
	}
	c.Items = items
	c.Recalculate()
	return true
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Recalculate()
}

// Merge folds the lines of another cart into this one, line by line, so
// duplicate products collapse and the totals invariant holds.
func (c *Cart) Merge(other *Cart) {
	if other == nil {
		return
	}
	for _, item := range other.Items {
		c.AddItem(item)
	}
}

// Recalculate rebuilds TotalItems and TotalAmount from the item list.
// Exposed for callers that edit lines in place (price revalidation).
func (c *Cart) Recalculate() {
	var totalItems int
	var totalAmount float64
	for _, item := range c.Items {
		totalItems += item.Quantity
		totalAmount += item.Price * float64(item.Quantity)
	}
	c.TotalItems = totalItems
	c.TotalAmount = totalAmount
	c.UpdatedAt = time.Now()
}
