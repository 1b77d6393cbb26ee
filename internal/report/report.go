// Package report aggregates per-device outcomes into the run summary and
// serializes it to the JSON artifact.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phygon975/API-project/internal/model"
)

// Outcome is one device's result entering aggregation: either a breakdown
// or a skip, never both.
type Outcome struct {
	Breakdown *model.CostBreakdown
	Skip      *model.SkippedDevice
	Name      string
	Category  model.EquipmentCategory
}

// Report is the run's structured summary. The JSON keys are the stable
// export contract consumed downstream.
type Report struct {
	EquipmentCategories map[string][]string           `json:"equipment_categories"`
	CostByCategory      map[string][]model.DeviceCost `json:"cost_breakdown_by_category"`
	Skipped             []model.SkippedDevice         `json:"skipped_devices"`
	Total               decimal.Decimal               `json:"total_bare_module_cost"`
	CostIndexUsed       float64                       `json:"cost_index_used"`
}

// Aggregate folds classifications and costing outcomes into a report.
// Skipped devices are listed with their reasons and contribute nothing to
// the total; they can never fail the aggregation. Devices keep their input
// order inside each category.
func Aggregate(classifications []model.ClassificationResult, outcomes []Outcome, costIndex float64) Report {
	r := Report{
		EquipmentCategories: make(map[string][]string),
		CostByCategory:      make(map[string][]model.DeviceCost),
		Skipped:             []model.SkippedDevice{},
		Total:               decimal.Zero,
		CostIndexUsed:       costIndex,
	}

	for _, c := range classifications {
		key := c.Category.String()
		r.EquipmentCategories[key] = append(r.EquipmentCategories[key], c.BlockName)
	}

	for _, o := range outcomes {
		if o.Skip != nil {
			r.Skipped = append(r.Skipped, *o.Skip)
			continue
		}
		if o.Breakdown == nil {
			continue
		}
		key := o.Category.String()
		r.CostByCategory[key] = append(r.CostByCategory[key], model.DeviceCost{
			Name:       o.Name,
			BareModule: o.Breakdown.BareModule,
		})
		r.Total = r.Total.Add(o.Breakdown.BareModule)
	}

	return r
}

// ToJSON serializes the report; map keys marshal sorted so the artifact is
// byte-stable for identical runs.
func (r Report) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}
	return data, nil
}

// FormatText renders the report for terminal display, categories in
// canonical order.
func (r Report) FormatText() string {
	var b strings.Builder

	for _, cat := range model.AllCategories() {
		devices := r.CostByCategory[cat.String()]
		names := r.EquipmentCategories[cat.String()]
		if len(devices) == 0 && len(names) == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s (%d devices)\n", cat, len(names))
		for _, d := range devices {
			fmt.Fprintf(&b, "  %-20s %14s USD\n", d.Name, d.BareModule.StringFixed(2))
		}
	}

	if len(r.Skipped) > 0 {
		b.WriteString("Skipped:\n")
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "  %-20s %s\n", s.Name, s.Reason)
		}
	}

	fmt.Fprintf(&b, "Total bare module cost: %s USD (CEPCI %.1f)\n", r.Total.StringFixed(2), r.CostIndexUsed)
	return b.String()
}
