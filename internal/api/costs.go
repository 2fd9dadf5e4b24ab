package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/pkg/validate"
)

// GetCostSummary returns the AWS spend rollup. period is YYYY-MM; empty
// means the current month.
func (c *Client) GetCostSummary(ctx context.Context, period string) (*models.CostSummary, error) {
	q := url.Values{}
	if period != "" {
		if !validate.Period(period) {
			return nil, fmt.Errorf("invalid period %q: want YYYY-MM", period)
		}
		q.Set("period", period)
	}
	var out models.CostSummary
	if err := c.get(ctx, "/costs/summary", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListServiceCosts returns per-service spend for a billing period.
func (c *Client) ListServiceCosts(ctx context.Context, period string) ([]models.ServiceCost, error) {
	q := url.Values{}
	if period != "" {
		if !validate.Period(period) {
			return nil, fmt.Errorf("invalid period %q: want YYYY-MM", period)
		}
		q.Set("period", period)
	}
	var out []models.ServiceCost
	if err := c.get(ctx, "/costs/services", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
