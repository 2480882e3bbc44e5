package clients

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// AnalyticsClient wraps the /api/analytics endpoints. Dashboard stats
// are secondary widgets: every read degrades silently to empty stats so
// a failing analytics backend never breaks a dashboard page.
type AnalyticsClient struct {
	backend *Backend
}

// NewAnalyticsClient creates an analytics client.
func NewAnalyticsClient(backend *Backend) *AnalyticsClient {
	return &AnalyticsClient{backend: backend}
}

func (c *AnalyticsClient) fetch(ctx context.Context, token, path string) *models.DashboardStats {
	var stats models.DashboardStats
	if err := c.backend.DoJSON(ctx, http.MethodGet, path, token, nil, &stats); err != nil {
		log.WithError(err).WithField("path", path).Warn("analytics fetch failed, rendering empty dashboard")
		return &models.DashboardStats{}
	}
	return &stats
}

// BuyerStats fetches the buyer dashboard stats. Degrades to empty stats.
func (c *AnalyticsClient) BuyerStats(ctx context.Context, token string) *models.DashboardStats {
	return c.fetch(ctx, token, "/api/analytics/buyer")
}

// VendorStats fetches the vendor dashboard stats. Degrades to empty stats.
func (c *AnalyticsClient) VendorStats(ctx context.Context, token string) *models.DashboardStats {
	return c.fetch(ctx, token, "/api/analytics/vendor")
}

// AdminStats fetches the admin dashboard stats. Degrades to empty stats.
func (c *AnalyticsClient) AdminStats(ctx context.Context, token string) *models.DashboardStats {
	return c.fetch(ctx, token, "/api/analytics/admin")
}
