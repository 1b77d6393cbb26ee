package report

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phygon975/API-project/internal/model"
)

func breakdown(name string, category model.EquipmentCategory, cost float64) Outcome {
	return Outcome{
		Name:     name,
		Category: category,
		Breakdown: &model.CostBreakdown{
			DeviceName: name,
			Category:   category,
			BareModule: decimal.NewFromFloat(cost),
		},
	}
}

func skipped(name string, category model.EquipmentCategory, reason string) Outcome {
	return Outcome{
		Name:     name,
		Category: category,
		Skip:     &model.SkippedDevice{Name: name, Category: category, Reason: reason},
	}
}

func TestAggregate(t *testing.T) {
	classifications := []model.ClassificationResult{
		{BlockName: "P-101", Category: model.CategoryPump},
		{BlockName: "P-102", Category: model.CategoryPump},
		{BlockName: "C-201", Category: model.CategoryCompressor},
		{BlockName: "V-1", Category: model.CategoryIgnored},
	}
	outcomes := []Outcome{
		breakdown("P-101", model.CategoryPump, 2175568.31),
		breakdown("P-102", model.CategoryPump, 50000),
		skipped("C-201", model.CategoryCompressor, "missing required property"),
	}

	r := Aggregate(classifications, outcomes, 800.0)

	assert.Equal(t, []string{"P-101", "P-102"}, r.EquipmentCategories["Pump"])
	assert.Equal(t, []string{"V-1"}, r.EquipmentCategories["Ignored"])
	require.Len(t, r.CostByCategory["Pump"], 2)
	assert.Equal(t, "P-101", r.CostByCategory["Pump"][0].Name)

	want := decimal.NewFromFloat(2225568.31)
	assert.True(t, r.Total.Equal(want), "total %s", r.Total)

	require.Len(t, r.Skipped, 1)
	assert.Equal(t, "C-201", r.Skipped[0].Name)
	assert.Equal(t, 800.0, r.CostIndexUsed)
}

func TestSkippedDevicesNeverChangeTotal(t *testing.T) {
	outcomes := []Outcome{
		breakdown("P-101", model.CategoryPump, 1000),
	}
	base := Aggregate(nil, outcomes, 800.0)

	withSkip := Aggregate(nil, append(outcomes,
		skipped("FAN-1", model.CategoryCompressor, "below minimum size"),
		skipped("HX-1", model.CategoryHeatExchanger, "no cost correlation for subtype"),
	), 800.0)

	assert.True(t, base.Total.Equal(withSkip.Total))
	assert.Len(t, withSkip.Skipped, 2)
}

func TestAggregateEmptyRun(t *testing.T) {
	r := Aggregate(nil, nil, 810.0)
	assert.True(t, r.Total.IsZero())
	assert.Empty(t, r.Skipped)
}

func TestReportJSONContract(t *testing.T) {
	r := Aggregate(
		[]model.ClassificationResult{{BlockName: "P-101", Category: model.CategoryPump}},
		[]Outcome{breakdown("P-101", model.CategoryPump, 1234.56)},
		800.0,
	)

	data, err := r.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{
		"equipment_categories",
		"cost_breakdown_by_category",
		"skipped_devices",
		"total_bare_module_cost",
		"cost_index_used",
	} {
		assert.Contains(t, decoded, key)
	}

	// Identical inputs produce a byte-identical artifact.
	again, err := r.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestFormatText(t *testing.T) {
	r := Aggregate(
		[]model.ClassificationResult{
			{BlockName: "P-101", Category: model.CategoryPump},
			{BlockName: "FAN-1", Category: model.CategoryCompressor},
		},
		[]Outcome{
			breakdown("P-101", model.CategoryPump, 1000),
			skipped("FAN-1", model.CategoryCompressor, "below minimum size"),
		},
		800.0,
	)

	text := r.FormatText()
	assert.Contains(t, text, "Pump (1 devices)")
	assert.Contains(t, text, "P-101")
	assert.Contains(t, text, "below minimum size")
	assert.Contains(t, text, "Total bare module cost: 1000.00 USD")
}
