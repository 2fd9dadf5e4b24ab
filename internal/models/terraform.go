package models

import "time"

// RiskLevel grades a Terraform change by blast radius.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ChangeAction is the planned Terraform operation on a resource.
type ChangeAction string

const (
	ChangeCreate  ChangeAction = "create"
	ChangeUpdate  ChangeAction = "update"
	ChangeDelete  ChangeAction = "delete"
	ChangeReplace ChangeAction = "replace"
)

// TerraformChange is one planned change set analysed by the backend.
type TerraformChange struct {
	ID         string    `json:"id"`
	Workspace  string    `json:"workspace"`
	Repository string    `json:"repository,omitempty"`
	Risk       RiskLevel `json:"risk"`
	Creates    int       `json:"creates"`
	Updates    int       `json:"updates"`
	Deletes    int       `json:"deletes"`
	Replaces   int       `json:"replaces"`
	PlannedAt  time.Time `json:"planned_at"`
	PlannedBy  string    `json:"planned_by,omitempty"`
}

// TerraformLogEntry is one line of a change's plan log.
type TerraformLogEntry struct {
	Timestamp time.Time    `json:"timestamp"`
	Level     string       `json:"level"` // trace, debug, info, warn, error
	Message   string       `json:"message"`
	Address   string       `json:"address,omitempty"` // resource address, e.g. aws_instance.web[0]
	Action    ChangeAction `json:"action,omitempty"`
	Risk      RiskLevel    `json:"risk,omitempty"`
}
