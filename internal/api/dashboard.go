package api

import (
	"context"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// GetDashboardMetrics returns the aggregated overview summary.
func (c *Client) GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	var out models.DashboardMetrics
	if err := c.get(ctx, "/dashboard/metrics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
