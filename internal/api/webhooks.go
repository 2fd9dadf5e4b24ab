package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/pkg/validate"
)

// CreateWebhookRequest is the body for CreateWebhook.
type CreateWebhookRequest struct {
	Name    string   `json:"name"`
	URL     string   `json:"url"`
	Events  []string `json:"events"`
	Enabled bool     `json:"enabled"`
}

// ListWebhooks returns the configured webhooks.
func (c *Client) ListWebhooks(ctx context.Context) ([]models.Webhook, error) {
	var out []models.Webhook
	if err := c.get(ctx, "/webhooks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWebhook registers a new webhook and returns it with its id.
func (c *Client) CreateWebhook(ctx context.Context, req CreateWebhookRequest) (*models.Webhook, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("webhook name is required")
	}
	if !validate.WebhookURL(req.URL) {
		return nil, fmt.Errorf("invalid webhook url %q: must be absolute http(s)", req.URL)
	}
	var out models.Webhook
	if err := c.post(ctx, "/webhooks", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWebhook removes a webhook.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	return c.delete(ctx, "/webhooks/"+url.PathEscape(id))
}

// TestWebhook asks the backend to fire a test delivery.
func (c *Client) TestWebhook(ctx context.Context, id string) (*models.WebhookTestResult, error) {
	var out models.WebhookTestResult
	if err := c.post(ctx, "/webhooks/"+url.PathEscape(id)+"/test", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
