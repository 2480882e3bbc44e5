package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"storefront-service/internal/clients"
	"storefront-service/internal/middleware"
	"storefront-service/internal/services"
)

// CatalogHandler handles product browsing, search and the decorative
// read paths (trending, recommendations, translations). Browsing errors
// surface; decoration degrades to empty payloads.
type CatalogHandler struct {
	products        *clients.ProductsClient
	search          *clients.SearchClient
	recommendations *clients.RecommendationsClient
	i18n            *clients.I18nClient
	authSvc         *services.AuthService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(products *clients.ProductsClient, search *clients.SearchClient, recommendations *clients.RecommendationsClient, i18n *clients.I18nClient, authSvc *services.AuthService) *CatalogHandler {
	return &CatalogHandler{
		products:        products,
		search:          search,
		recommendations: recommendations,
		i18n:            i18n,
		authSvc:         authSvc,
	}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	list, err := h.products.ListProducts(c.Request.Context(), clients.ListProductsRequest{
		Category: c.Query("category"),
		VendorID: c.Query("vendorId"),
		Page:     page,
		PageSize: pageSize,
		SortBy:   c.Query("sortBy"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetProduct handles GET /api/v1/products/:productId
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Search handles GET /api/v1/search. The query is recorded in the
// session search history; history persistence is best-effort.
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	result, err := h.search.Search(c.Request.Context(), query, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	session := middleware.GetSession(c)
	session.RecordSearch(query)
	if err := h.authSvc.Save(c.Request.Context(), session); err != nil {
		log.WithError(err).Warn("failed to persist search history")
	}

	c.JSON(http.StatusOK, result)
}

// Trending handles GET /api/v1/search/trending
func (h *CatalogHandler) Trending(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"terms": h.search.Trending(c.Request.Context())})
}

// Recommendations handles GET /api/v1/recommendations. Personalized
// when the session is authenticated.
func (h *CatalogHandler) Recommendations(c *gin.Context) {
	session := middleware.GetSession(c)

	token := ""
	if session.IsAuthenticated() {
		token = session.Token
	}
	recs := h.recommendations.ForUser(c.Request.Context(), token)

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// ProductRecommendations handles GET /api/v1/products/:productId/recommendations
func (h *CatalogHandler) ProductRecommendations(c *gin.Context) {
	recs := h.recommendations.ForProduct(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// Translations handles GET /api/v1/i18n/:language
func (h *CatalogHandler) Translations(c *gin.Context) {
	translations := h.i18n.Translations(c.Request.Context(), c.Param("language"))
	c.JSON(http.StatusOK, gin.H{"translations": translations})
}
