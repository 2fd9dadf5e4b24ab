package models

import "time"

// Webhook is a configured outbound notification endpoint.
type Webhook struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	// Events is the set of event names the webhook fires on,
	// e.g. "pipeline_failed", "alert_firing", "terraform_applied".
	Events    []string  `json:"events"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WebhookTestResult is the backend's report of a test delivery.
type WebhookTestResult struct {
	WebhookID  string  `json:"webhook_id"`
	Delivered  bool    `json:"delivered"`
	StatusCode int     `json:"status_code,omitempty"`
	LatencyMs  float64 `json:"latency_ms,omitempty"`
	Error      string  `json:"error,omitempty"`
}
