package model

import "github.com/shopspring/decimal"

// CostBreakdown records every intermediate value of one device's cost
// derivation, in the order computed, so a run can be audited and reproduced
// exactly.
type CostBreakdown struct {
	DeviceName       string            `json:"device_name"`
	Category         EquipmentCategory `json:"category"`
	Subtype          string            `json:"subtype"`
	SizeUnit         string            `json:"size_unit"`
	SizeValue        float64           `json:"size_value"`
	PurchasedBase    float64           `json:"purchased_base"`
	MaterialFactor   float64           `json:"material_factor"`
	PressureFactor   float64           `json:"pressure_factor"`
	IndexAdjusted    float64           `json:"index_adjusted"`
	BareModuleFactor float64           `json:"bare_module_factor"`
	BareModule       decimal.Decimal   `json:"bare_module_cost"`
	TurbineFlag      bool              `json:"turbine_flag,omitempty"`
	Notes            []string          `json:"notes,omitempty"`
	Trail            []string          `json:"trail"`
}

// AddTrail appends one derivation line. Lines are never reordered.
func (b *CostBreakdown) AddTrail(line string) {
	b.Trail = append(b.Trail, line)
}

// SkippedDevice is a device excluded from the total, with the reason the
// pipeline recorded. Skips are per-device outcomes, never pipeline errors.
type SkippedDevice struct {
	Name     string            `json:"name"`
	Category EquipmentCategory `json:"category"`
	Reason   string            `json:"reason"`
}

// DeviceCost is one (device, bare-module cost) line inside a category of
// the final report.
type DeviceCost struct {
	Name       string          `json:"name"`
	BareModule decimal.Decimal `json:"bare_module_cost"`
}
