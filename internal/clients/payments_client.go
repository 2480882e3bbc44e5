package clients

import (
	"context"
	"fmt"
	"net/http"

	"storefront-service/internal/models"
)

// PaymentsClient wraps the /api/payments endpoints. Settlement and state
// transitions happen entirely in the backend; this client only initiates
// a payment and polls its status. User-initiated: errors surface.
type PaymentsClient struct {
	backend *Backend
}

// NewPaymentsClient creates a payments client.
func NewPaymentsClient(backend *Backend) *PaymentsClient {
	return &PaymentsClient{backend: backend}
}

// InitiatePaymentRequest starts a payment for an order.
type InitiatePaymentRequest struct {
	OrderID string  `json:"orderId"`
	Method  string  `json:"method"`
	Amount  float64 `json:"amount"`
}

// InitiatePayment asks the backend to start a payment. The response may
// carry a redirect URL for hosted payment pages.
func (c *PaymentsClient) InitiatePayment(ctx context.Context, token string, req InitiatePaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := c.backend.DoJSON(ctx, http.MethodPost, "/api/payments", token, req, &payment); err != nil {
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}
	return &payment, nil
}

// GetPayment fetches the current state of a payment.
func (c *PaymentsClient) GetPayment(ctx context.Context, token, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	if err := c.backend.DoJSON(ctx, http.MethodGet, "/api/payments/"+paymentID, token, nil, &payment); err != nil {
		return nil, fmt.Errorf("failed to fetch payment %s: %w", paymentID, err)
	}
	return &payment, nil
}
