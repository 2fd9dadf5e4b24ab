package api

import (
	"context"
	"net/url"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// ListTerraformChanges returns analysed change sets, newest first.
// workspace narrows to one workspace when non-empty.
func (c *Client) ListTerraformChanges(ctx context.Context, workspace string) ([]models.TerraformChange, error) {
	q := url.Values{}
	if workspace != "" {
		q.Set("workspace", workspace)
	}
	var out []models.TerraformChange
	if err := c.get(ctx, "/terraform/changes", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTerraformChange returns one change set by id.
func (c *Client) GetTerraformChange(ctx context.Context, id string) (*models.TerraformChange, error) {
	var out models.TerraformChange
	if err := c.get(ctx, "/terraform/changes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTerraformChangeLogs returns the plan log lines of a change set.
func (c *Client) GetTerraformChangeLogs(ctx context.Context, id string) ([]models.TerraformLogEntry, error) {
	var out []models.TerraformLogEntry
	if err := c.get(ctx, "/terraform/changes/"+url.PathEscape(id)+"/logs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
