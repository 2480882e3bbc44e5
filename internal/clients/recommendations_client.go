package clients

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// RecommendationsClient wraps the /api/ai-recommendations endpoints.
// Recommendations are pure decoration: every failure degrades to an
// empty list. This is the one read path that retries, since the
// recommendation engine is the flakiest upstream.
type RecommendationsClient struct {
	backend *Backend
	retrier *Retrier
}

// NewRecommendationsClient creates a recommendations client.
func NewRecommendationsClient(backend *Backend) *RecommendationsClient {
	return &RecommendationsClient{
		backend: backend,
		retrier: NewRetrier(nil),
	}
}

func (c *RecommendationsClient) fetch(ctx context.Context, token, path string) []models.Recommendation {
	var resp struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}

	err := c.retrier.Do(ctx, func(ctx context.Context) (int, time.Duration, error) {
		callErr := c.backend.DoJSON(ctx, http.MethodGet, path, token, nil, &resp)
		if callErr == nil {
			return http.StatusOK, 0, nil
		}
		var apiErr *APIError
		if errors.As(callErr, &apiErr) {
			return apiErr.StatusCode, apiErr.RetryAfter, callErr
		}
		return 0, 0, callErr
	})
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("recommendations fetch failed")
		return []models.Recommendation{}
	}
	if resp.Recommendations == nil {
		return []models.Recommendation{}
	}
	return resp.Recommendations
}

// ForUser fetches personalized recommendations. Degrades to [].
func (c *RecommendationsClient) ForUser(ctx context.Context, token string) []models.Recommendation {
	return c.fetch(ctx, token, "/api/ai-recommendations")
}

// ForProduct fetches similar-product recommendations. Degrades to [].
func (c *RecommendationsClient) ForProduct(ctx context.Context, productID string) []models.Recommendation {
	return c.fetch(ctx, "", "/api/ai-recommendations/products/"+productID)
}
