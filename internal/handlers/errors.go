// Package handlers implements the HTTP surface of the storefront: the
// session-facing API the web UI calls instead of talking to the
// marketplace backend directly.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/clients"
	"storefront-service/internal/services"
)

// respondError maps a service or client error to an HTTP response.
// Backend errors keep their status and user-facing message; transport
// failures collapse to 502 so the UI can show a generic retry prompt.
func respondError(c *gin.Context, err error) {
	var apiErr *clients.APIError
	switch {
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
	case errors.Is(err, services.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	case errors.Is(err, services.ErrNotAwaitingOTP):
		c.JSON(http.StatusConflict, gin.H{"error": "No OTP verification is pending"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service unavailable"})
	}
}
