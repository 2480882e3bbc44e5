package clients

import (
	"context"
	"fmt"
	"net/http"

	"storefront-service/internal/models"
)

// ShippingClient wraps the /api/shipping endpoints. Rate quotes block
// checkout and tracking is an explicit user action, so both surface
// their errors.
type ShippingClient struct {
	backend *Backend
}

// NewShippingClient creates a shipping client.
func NewShippingClient(backend *Backend) *ShippingClient {
	return &ShippingClient{backend: backend}
}

// RateRequest asks for shipping quotes for a destination and cart weight.
type RateRequest struct {
	Address models.Address `json:"address"`
	Items   []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	} `json:"items,omitempty"`
}

// GetRates fetches shipping quotes for a checkout.
func (c *ShippingClient) GetRates(ctx context.Context, token string, req RateRequest) ([]models.ShippingRate, error) {
	var resp struct {
		Rates []models.ShippingRate `json:"rates"`
	}
	if err := c.backend.DoJSON(ctx, http.MethodPost, "/api/shipping/rates", token, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch shipping rates: %w", err)
	}
	if resp.Rates == nil {
		resp.Rates = []models.ShippingRate{}
	}
	return resp.Rates, nil
}

// Track fetches tracking info for a shipment.
func (c *ShippingClient) Track(ctx context.Context, token, trackingID string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := c.backend.DoJSON(ctx, http.MethodGet, "/api/shipping/track/"+trackingID, token, nil, &shipment); err != nil {
		return nil, fmt.Errorf("failed to track shipment %s: %w", trackingID, err)
	}
	return &shipment, nil
}
