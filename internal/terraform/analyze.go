// Package terraform analyses Terraform plan logs fetched from the backend:
// level/address/action filtering and per-change aggregation for the risk
// view. Pure functions over fetched data; nothing here executes Terraform.
package terraform

import (
	"strings"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// levelRank orders log levels for min-level filtering.
var levelRank = map[string]int{
	"trace": 0,
	"debug": 1,
	"info":  2,
	"warn":  3,
	"error": 4,
}

// riskRank orders risk levels for rollups.
var riskRank = map[models.RiskLevel]int{
	models.RiskLow:      0,
	models.RiskMedium:   1,
	models.RiskHigh:     2,
	models.RiskCritical: 3,
}

// Filter narrows a log listing. Zero values mean no constraint.
type Filter struct {
	// MinLevel drops entries below this level ("info" drops trace/debug).
	MinLevel string
	// Address keeps entries whose resource address contains this substring.
	Address string
	// Action keeps entries with exactly this planned action.
	Action models.ChangeAction
}

// Apply returns the entries accepted by the filter, preserving order.
func (f Filter) Apply(entries []models.TerraformLogEntry) []models.TerraformLogEntry {
	minRank, hasMin := levelRank[strings.ToLower(f.MinLevel)]
	var out []models.TerraformLogEntry
	for _, e := range entries {
		if hasMin {
			r, ok := levelRank[strings.ToLower(e.Level)]
			if !ok || r < minRank {
				continue
			}
		}
		if f.Address != "" && !strings.Contains(e.Address, f.Address) {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Summary is the aggregate view of one change's plan log.
type Summary struct {
	Entries        int
	ByAction       map[models.ChangeAction]int
	ByResourceType map[string]int
	ByRisk         map[models.RiskLevel]int
	// HighestRisk is the worst risk level present; empty when no entry
	// carries a risk grade.
	HighestRisk models.RiskLevel
	Errors      int
	Warnings    int
}

// Aggregate rolls a log listing up into a Summary. Entries without a
// resource address contribute to counts but not to the per-type breakdown.
func Aggregate(entries []models.TerraformLogEntry) Summary {
	s := Summary{
		ByAction:       make(map[models.ChangeAction]int),
		ByResourceType: make(map[string]int),
		ByRisk:         make(map[models.RiskLevel]int),
	}
	for _, e := range entries {
		s.Entries++
		switch strings.ToLower(e.Level) {
		case "error":
			s.Errors++
		case "warn":
			s.Warnings++
		}
		if e.Action != "" {
			s.ByAction[e.Action]++
		}
		if rt := resourceType(e.Address); rt != "" {
			s.ByResourceType[rt]++
		}
		if e.Risk != "" {
			s.ByRisk[e.Risk]++
			if s.HighestRisk == "" || riskRank[e.Risk] > riskRank[s.HighestRisk] {
				s.HighestRisk = e.Risk
			}
		}
	}
	return s
}

// resourceType extracts the resource type from an address like
// "module.vpc.aws_subnet.private[2]" -> "aws_subnet".
func resourceType(address string) string {
	if address == "" {
		return ""
	}
	parts := strings.Split(address, ".")
	// The type is the second-to-last segment; the last is the name
	// (possibly indexed).
	if len(parts) < 2 {
		return ""
	}
	t := parts[len(parts)-2]
	if t == "module" {
		return ""
	}
	return t
}
