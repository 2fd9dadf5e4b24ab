package api

import (
	"context"
	"net/url"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// AlertFilter narrows ListAlerts. Zero values mean no filter.
type AlertFilter struct {
	Severity  models.Severity
	State     models.AlertState
	ClusterID string
}

// ListAlerts returns alerts matching the filter, newest first.
func (c *Client) ListAlerts(ctx context.Context, f AlertFilter) ([]models.Alert, error) {
	q := url.Values{}
	if f.Severity != "" {
		q.Set("severity", string(f.Severity))
	}
	if f.State != "" {
		q.Set("state", string(f.State))
	}
	if f.ClusterID != "" {
		q.Set("cluster_id", f.ClusterID)
	}
	var out []models.Alert
	if err := c.get(ctx, "/alerts", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AcknowledgeAlert marks an alert acknowledged by the current user.
func (c *Client) AcknowledgeAlert(ctx context.Context, id string) (*models.Alert, error) {
	var out models.Alert
	if err := c.post(ctx, "/alerts/"+url.PathEscape(id)+"/acknowledge", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveAlert marks an alert resolved.
func (c *Client) ResolveAlert(ctx context.Context, id string) (*models.Alert, error) {
	var out models.Alert
	if err := c.post(ctx, "/alerts/"+url.PathEscape(id)+"/resolve", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
