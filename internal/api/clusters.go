package api

import (
	"context"
	"net/url"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// ListClusters returns the registered Kubernetes clusters.
func (c *Client) ListClusters(ctx context.Context) ([]models.Cluster, error) {
	var out []models.Cluster
	if err := c.get(ctx, "/clusters", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCluster returns one cluster by id.
func (c *Client) GetCluster(ctx context.Context, id string) (*models.Cluster, error) {
	var out models.Cluster
	if err := c.get(ctx, "/clusters/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetClusterMetrics returns the utilisation summary for one cluster.
func (c *Client) GetClusterMetrics(ctx context.Context, id string) (*models.ClusterMetrics, error) {
	var out models.ClusterMetrics
	if err := c.get(ctx, "/clusters/"+url.PathEscape(id)+"/metrics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
