package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// ListPipelines returns every pipeline visible to the current user.
func (c *Client) ListPipelines(ctx context.Context) ([]models.Pipeline, error) {
	var out []models.Pipeline
	if err := c.get(ctx, "/pipelines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPipeline returns one pipeline by id.
func (c *Client) GetPipeline(ctx context.Context, id string) (*models.Pipeline, error) {
	var out models.Pipeline
	if err := c.get(ctx, "/pipelines/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPipelineRuns returns the most recent runs of a pipeline, newest first.
func (c *Client) ListPipelineRuns(ctx context.Context, pipelineID string, limit int) ([]models.PipelineRun, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	var out []models.PipelineRun
	if err := c.get(ctx, "/pipelines/"+url.PathEscape(pipelineID)+"/runs", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
