package terraform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

func sampleLog() []models.TerraformLogEntry {
	return []models.TerraformLogEntry{
		{Level: "debug", Message: "refreshing state", Address: "aws_instance.web[0]"},
		{Level: "info", Message: "plan: create", Address: "aws_instance.web[0]", Action: models.ChangeCreate, Risk: models.RiskLow},
		{Level: "info", Message: "plan: replace", Address: "aws_db_instance.main", Action: models.ChangeReplace, Risk: models.RiskCritical},
		{Level: "warn", Message: "deprecated attribute", Address: "module.vpc.aws_subnet.private[2]"},
		{Level: "info", Message: "plan: update", Address: "module.vpc.aws_subnet.private[2]", Action: models.ChangeUpdate, Risk: models.RiskMedium},
		{Level: "error", Message: "provider produced inconsistent plan"},
		{Level: "info", Message: "plan: delete", Address: "aws_s3_bucket.logs", Action: models.ChangeDelete, Risk: models.RiskHigh},
	}
}

func TestFilterMinLevel(t *testing.T) {
	got := Filter{MinLevel: "warn"}.Apply(sampleLog())
	assert.Len(t, got, 2)
	for _, e := range got {
		assert.Contains(t, []string{"warn", "error"}, e.Level)
	}
}

func TestFilterAddressSubstring(t *testing.T) {
	got := Filter{Address: "aws_subnet"}.Apply(sampleLog())
	assert.Len(t, got, 2)
	for _, e := range got {
		assert.Contains(t, e.Address, "aws_subnet")
	}
}

func TestFilterAction(t *testing.T) {
	got := Filter{Action: models.ChangeReplace}.Apply(sampleLog())
	assert.Len(t, got, 1)
	assert.Equal(t, "aws_db_instance.main", got[0].Address)
}

func TestFilterCombined(t *testing.T) {
	got := Filter{MinLevel: "info", Address: "aws_instance"}.Apply(sampleLog())
	assert.Len(t, got, 1)
	assert.Equal(t, models.ChangeCreate, got[0].Action)
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	entries := sampleLog()
	assert.Len(t, Filter{}.Apply(entries), len(entries))
}

func TestAggregate(t *testing.T) {
	s := Aggregate(sampleLog())

	assert.Equal(t, 7, s.Entries)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 1, s.Warnings)

	assert.Equal(t, 1, s.ByAction[models.ChangeCreate])
	assert.Equal(t, 1, s.ByAction[models.ChangeUpdate])
	assert.Equal(t, 1, s.ByAction[models.ChangeDelete])
	assert.Equal(t, 1, s.ByAction[models.ChangeReplace])

	assert.Equal(t, 2, s.ByResourceType["aws_instance"])
	assert.Equal(t, 2, s.ByResourceType["aws_subnet"])
	assert.Equal(t, 1, s.ByResourceType["aws_db_instance"])

	assert.Equal(t, models.RiskCritical, s.HighestRisk)
	assert.Equal(t, 1, s.ByRisk[models.RiskCritical])
	assert.Equal(t, 1, s.ByRisk[models.RiskHigh])
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, 0, s.Entries)
	assert.Equal(t, models.RiskLevel(""), s.HighestRisk)
}

func TestResourceType(t *testing.T) {
	assert.Equal(t, "aws_instance", resourceType("aws_instance.web[0]"))
	assert.Equal(t, "aws_subnet", resourceType("module.vpc.aws_subnet.private[2]"))
	assert.Equal(t, "", resourceType(""))
	assert.Equal(t, "", resourceType("orphan"))
}
