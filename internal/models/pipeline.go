package models

import "time"

// PipelineStatus is the last observed state of a CI/CD pipeline.
type PipelineStatus string

const (
	PipelineRunning   PipelineStatus = "running"
	PipelineSucceeded PipelineStatus = "succeeded"
	PipelineFailed    PipelineStatus = "failed"
	PipelinePending   PipelineStatus = "pending"
	PipelineCancelled PipelineStatus = "cancelled"
)

// Pipeline is one CI/CD pipeline as reported by the backend.
type Pipeline struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Repository  string         `json:"repository"`
	Branch      string         `json:"branch"`
	Status      PipelineStatus `json:"status"`
	LastRunID   string         `json:"last_run_id,omitempty"`
	LastRunAt   *time.Time     `json:"last_run_at,omitempty"`
	SuccessRate float64        `json:"success_rate"`
}

// PipelineRun is a single execution of a pipeline.
type PipelineRun struct {
	ID          string         `json:"id"`
	PipelineID  string         `json:"pipeline_id"`
	Number      int            `json:"number"`
	Status      PipelineStatus `json:"status"`
	Commit      string         `json:"commit"`
	TriggeredBy string         `json:"triggered_by,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  *time.Time     `json:"finished_at,omitempty"`
	DurationSec float64        `json:"duration_sec,omitempty"`
}
