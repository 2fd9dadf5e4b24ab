package models

import "time"

// AlertState tracks an alert through its lifecycle.
type AlertState string

const (
	AlertFiring       AlertState = "firing"
	AlertAcknowledged AlertState = "acknowledged"
	AlertResolved     AlertState = "resolved"
)

// Alert is one alert raised by the backend's alerting rules.
type Alert struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Message        string     `json:"message,omitempty"`
	Severity       Severity   `json:"severity"`
	State          AlertState `json:"state"`
	ClusterID      string     `json:"cluster_id,omitempty"`
	Source         string     `json:"source,omitempty"` // kubernetes, pipeline, cost, terraform
	FiredAt        time.Time  `json:"fired_at"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}
