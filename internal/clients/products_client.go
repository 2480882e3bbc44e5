package clients

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"storefront-service/internal/models"
)

// ProductsClient wraps the /api/products endpoints. Catalog reads back
// actual product pages, so failures surface to the caller; only the
// short-lived cache keeps repeat lookups (cart revalidation) cheap.
type ProductsClient struct {
	backend  *Backend
	cache    map[string]productCacheEntry
	cacheTTL time.Duration
	mu       sync.RWMutex
}

type productCacheEntry struct {
	product   *models.Product
	expiresAt time.Time
}

// NewProductsClient creates a products client with a short product cache.
func NewProductsClient(backend *Backend) *ProductsClient {
	return &ProductsClient{
		backend:  backend,
		cache:    make(map[string]productCacheEntry),
		cacheTTL: 1 * time.Minute, // short TTL for price/stock accuracy
	}
}

// ListProductsRequest holds catalog listing filters.
type ListProductsRequest struct {
	Category string
	VendorID string
	Page     int
	PageSize int
	SortBy   string
}

// ListProducts fetches a catalog page. Surfaces errors: a browse page
// without products is a broken page, not a degraded widget.
func (c *ProductsClient) ListProducts(ctx context.Context, req ListProductsRequest) (*models.ProductList, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	path := "/api/products" + queryString(map[string]string{
		"category": req.Category,
		"vendorId": req.VendorID,
		"page":     strconv.Itoa(req.Page),
		"pageSize": strconv.Itoa(req.PageSize),
		"sortBy":   req.SortBy,
	})

	var list models.ProductList
	if err := c.backend.DoJSON(ctx, http.MethodGet, path, "", nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if list.Products == nil {
		list.Products = []models.Product{}
	}
	return &list, nil
}

// GetProduct fetches a single product, serving from cache when fresh.
// Surfaces errors.
func (c *ProductsClient) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	c.mu.RLock()
	if entry, ok := c.cache[productID]; ok && time.Now().Before(entry.expiresAt) {
		c.mu.RUnlock()
		return entry.product, nil
	}
	c.mu.RUnlock()

	var product models.Product
	path := "/api/products/" + productID
	if err := c.backend.DoJSON(ctx, http.MethodGet, path, "", nil, &product); err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}

	c.mu.Lock()
	c.cache[productID] = productCacheEntry{product: &product, expiresAt: time.Now().Add(c.cacheTTL)}
	c.mu.Unlock()

	return &product, nil
}

// InvalidateCache drops a product from the cache.
func (c *ProductsClient) InvalidateCache(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, productID)
}
