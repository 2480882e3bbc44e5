package clients

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"storefront-service/internal/models"
)

// OrdersClient wraps the /api/orders endpoints. Placing and reading
// orders are user-initiated actions, so every call surfaces its error.
type OrdersClient struct {
	backend *Backend
}

// NewOrdersClient creates an orders client.
func NewOrdersClient(backend *Backend) *OrdersClient {
	return &OrdersClient{backend: backend}
}

// CreateOrderRequest is the checkout payload for order creation.
type CreateOrderRequest struct {
	Items           []models.OrderItem `json:"items"`
	ShippingAddress models.Address     `json:"shippingAddress"`
	ShippingMethod  string             `json:"shippingMethod,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

// CreateOrder places an order from the cart contents.
func (c *OrdersClient) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.backend.DoJSON(ctx, http.MethodPost, "/api/orders", token, req, &order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

// GetOrder fetches one order belonging to the authenticated user.
func (c *OrdersClient) GetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.backend.DoJSON(ctx, http.MethodGet, "/api/orders/"+orderID, token, nil, &order); err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", orderID, err)
	}
	return &order, nil
}

// ListOrders fetches the authenticated user's order history.
func (c *OrdersClient) ListOrders(ctx context.Context, token string, page, pageSize int) ([]models.Order, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	path := "/api/orders" + queryString(map[string]string{
		"page":     strconv.Itoa(page),
		"pageSize": strconv.Itoa(pageSize),
	})

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.backend.DoJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if resp.Orders == nil {
		resp.Orders = []models.Order{}
	}
	return resp.Orders, nil
}

// ListVendorOrders fetches orders for the authenticated vendor's shop,
// optionally filtered by status. Backs the vendor dashboard and export.
func (c *OrdersClient) ListVendorOrders(ctx context.Context, token, status string) ([]models.Order, error) {
	path := "/api/orders/vendor" + queryString(map[string]string{"status": status})

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.backend.DoJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list vendor orders: %w", err)
	}
	if resp.Orders == nil {
		resp.Orders = []models.Order{}
	}
	return resp.Orders, nil
}
