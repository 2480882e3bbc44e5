package clients

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// SearchClient wraps the /api/search endpoints. A search the user typed
// surfaces its error; the trending widget is decoration and degrades to
// an empty list.
type SearchClient struct {
	backend *Backend
}

// NewSearchClient creates a search client.
func NewSearchClient(backend *Backend) *SearchClient {
	return &SearchClient{backend: backend}
}

// Search runs a product search. Surfaces errors.
func (c *SearchClient) Search(ctx context.Context, query string, page, pageSize int) (*models.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	path := "/api/search" + queryString(map[string]string{
		"q":        query,
		"page":     strconv.Itoa(page),
		"pageSize": strconv.Itoa(pageSize),
	})

	var result models.SearchResult
	if err := c.backend.DoJSON(ctx, http.MethodGet, path, "", nil, &result); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if result.Products == nil {
		result.Products = []models.Product{}
	}
	return &result, nil
}

// Trending fetches trending search terms. Degrades silently to an empty
// list so the widget just disappears.
func (c *SearchClient) Trending(ctx context.Context) []string {
	var resp struct {
		Terms []string `json:"terms"`
	}
	if err := c.backend.DoJSON(ctx, http.MethodGet, "/api/search/trending", "", nil, &resp); err != nil {
		log.WithError(err).Warn("trending search fetch failed")
		return []string{}
	}
	if resp.Terms == nil {
		return []string{}
	}
	return resp.Terms
}
