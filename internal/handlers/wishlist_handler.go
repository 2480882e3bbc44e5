package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// WishlistHandler handles the session wishlist.
type WishlistHandler struct {
	cartSvc *services.CartService
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(cartSvc *services.CartService) *WishlistHandler {
	return &WishlistHandler{cartSvc: cartSvc}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	session := middleware.GetSession(c)

	items, err := h.cartSvc.GetWishlist(c.Request.Context(), session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

type addWishlistRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// AddItem handles POST /api/v1/wishlist
func (h *WishlistHandler) AddItem(c *gin.Context) {
	session := middleware.GetSession(c)

	var req addWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	items, err := h.cartSvc.AddToWishlist(c.Request.Context(), session, models.WishlistItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RemoveItem handles DELETE /api/v1/wishlist/:productId
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	session := middleware.GetSession(c)

	items, err := h.cartSvc.RemoveFromWishlist(c.Request.Context(), session, c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
