package models

import "time"

// DashboardMetrics is the aggregated summary backing the overview page.
type DashboardMetrics struct {
	PipelinesTotal   int       `json:"pipelines_total"`
	PipelinesFailing int       `json:"pipelines_failing"`
	ClustersTotal    int       `json:"clusters_total"`
	ClustersHealthy  int       `json:"clusters_healthy"`
	AlertsFiring     int       `json:"alerts_firing"`
	AlertsCritical   int       `json:"alerts_critical"`
	MonthToDateUSD   float64   `json:"month_to_date_usd"`
	GeneratedAt      time.Time `json:"generated_at"`
}
