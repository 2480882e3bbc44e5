package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// CartHandler handles the session cart. Anonymous and authenticated
// sessions both get a cart; mutations apply locally first and mirror to
// the backend in the background.
type CartHandler struct {
	cartSvc *services.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartSvc *services.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	session := middleware.GetSession(c)

	cart, err := h.cartSvc.GetCart(c.Request.Context(), session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type addItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	VariantID string  `json:"variantId"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Quantity  int     `json:"quantity"`
	VendorID  string  `json:"vendorId"`
	Image     string  `json:"image"`
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	session := middleware.GetSession(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId, name and price are required"})
		return
	}

	cart, err := h.cartSvc.AddItem(c.Request.Context(), session, models.CartItem{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		VendorID:  req.VendorID,
		Image:     req.Image,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/v1/cart/items/:itemId. Quantity <= 0
// removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	session := middleware.GetSession(c)
	itemID := c.Param("itemId")

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	cart, err := h.cartSvc.UpdateItem(c.Request.Context(), session, itemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// RemoveItem handles DELETE /api/v1/cart/items/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	session := middleware.GetSession(c)
	itemID := c.Param("itemId")

	cart, err := h.cartSvc.RemoveItem(c.Request.Context(), session, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	session := middleware.GetSession(c)

	cart, err := h.cartSvc.Clear(c.Request.Context(), session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// RefreshCart handles POST /api/v1/cart/refresh. Revalidates every line
// against the live catalog before checkout.
func (h *CartHandler) RefreshCart(c *gin.Context) {
	session := middleware.GetSession(c)

	cart, err := h.cartSvc.Refresh(c.Request.Context(), session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}
