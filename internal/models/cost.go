package models

// CostSummary is the AWS spend rollup for a billing window.
type CostSummary struct {
	Period        string  `json:"period"` // e.g. 2024-01
	TotalUSD      float64 `json:"total_usd"`
	ForecastUSD   float64 `json:"forecast_usd,omitempty"`
	DeltaPercent  float64 `json:"delta_percent"` // vs previous period
	TopService    string  `json:"top_service,omitempty"`
	TopServiceUSD float64 `json:"top_service_usd,omitempty"`
}

// ServiceCost is per-service spend within a billing window.
type ServiceCost struct {
	Service      string  `json:"service"`
	AmountUSD    float64 `json:"amount_usd"`
	DeltaPercent float64 `json:"delta_percent"`
}
