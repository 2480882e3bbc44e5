package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"storefront-service/internal/clients"
	"storefront-service/internal/middleware"
	"storefront-service/internal/services"
	"storefront-service/internal/validation"
)

// CheckoutHandler handles orders, payments and shipping. All routes
// here require an authenticated session; every upstream error surfaces
// because these are the consequential flows.
type CheckoutHandler struct {
	orders   *clients.OrdersClient
	payments *clients.PaymentsClient
	shipping *clients.ShippingClient
	cartSvc  *services.CartService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(orders *clients.OrdersClient, payments *clients.PaymentsClient, shipping *clients.ShippingClient, cartSvc *services.CartService) *CheckoutHandler {
	return &CheckoutHandler{
		orders:   orders,
		payments: payments,
		shipping: shipping,
		cartSvc:  cartSvc,
	}
}

// CreateOrder handles POST /api/v1/orders. The order is placed from the
// request payload; on success the session cart is cleared.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	session := middleware.GetSession(c)

	var req clients.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload: " + err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must contain at least one item"})
		return
	}

	validation.SanitizeAddress(&req.ShippingAddress)
	if errs := validation.ValidateAddress(&req.ShippingAddress); errs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping address", "details": errs})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), session.Token, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.cartSvc.Clear(c.Request.Context(), session); err != nil {
		log.WithError(err).WithField("orderId", order.ID).Warn("failed to clear cart after order placement")
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders handles GET /api/v1/orders
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	session := middleware.GetSession(c)

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	orders, err := h.orders.ListOrders(c.Request.Context(), session.Token, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder handles GET /api/v1/orders/:orderId
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	session := middleware.GetSession(c)

	order, err := h.orders.GetOrder(c.Request.Context(), session.Token, c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// InitiatePayment handles POST /api/v1/payments
func (h *CheckoutHandler) InitiatePayment(c *gin.Context) {
	session := middleware.GetSession(c)

	var req clients.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId and method are required"})
		return
	}

	payment, err := h.payments.InitiatePayment(c.Request.Context(), session.Token, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GetPayment handles GET /api/v1/payments/:paymentId
func (h *CheckoutHandler) GetPayment(c *gin.Context) {
	session := middleware.GetSession(c)

	payment, err := h.payments.GetPayment(c.Request.Context(), session.Token, c.Param("paymentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// GetShippingRates handles POST /api/v1/shipping/rates
func (h *CheckoutHandler) GetShippingRates(c *gin.Context) {
	session := middleware.GetSession(c)

	var req clients.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rate request"})
		return
	}

	validation.SanitizeAddress(&req.Address)
	if errs := validation.ValidateAddress(&req.Address); errs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping address", "details": errs})
		return
	}

	rates, err := h.shipping.GetRates(c.Request.Context(), session.Token, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// TrackShipment handles GET /api/v1/shipping/track/:trackingId
func (h *CheckoutHandler) TrackShipment(c *gin.Context) {
	session := middleware.GetSession(c)

	shipment, err := h.shipping.Track(c.Request.Context(), session.Token, c.Param("trackingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shipment": shipment})
}
