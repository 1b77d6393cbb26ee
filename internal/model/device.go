package model

// Block is one equipment block as reported by the simulation source.
// RecordType is the engine's authoritative model-type tag ("Pump",
// "RadFrac", ...); it is empty when the source does not report one.
type Block struct {
	Name       string `json:"name"`
	RecordType string `json:"record_type,omitempty"`
}

// StageProperties carries the per-stage numbers of a multi-stage device.
// Stages missing their brake power are skipped individually at costing
// time rather than failing the whole device.
type StageProperties struct {
	Number            int      `json:"number"`
	PowerKW           *float64 `json:"power_kw,omitempty"`
	InletPressureBar  *float64 `json:"inlet_pressure_bar,omitempty"`
	OutletPressureBar *float64 `json:"outlet_pressure_bar,omitempty"`
}

// DeviceProperties is the canonical-unit property bag handed to the cost
// engine. Pointer fields distinguish "absent" from zero; the engine decides
// per category which fields are required and skips the device with a
// recorded reason when one is missing.
type DeviceProperties struct {
	PowerKW           *float64          `json:"power_kw,omitempty"`
	DutyKW            *float64          `json:"duty_kw,omitempty"`
	InletPressureBar  *float64          `json:"inlet_pressure_bar,omitempty"`
	OutletPressureBar *float64          `json:"outlet_pressure_bar,omitempty"`
	AreaM2            *float64          `json:"area_m2,omitempty"`
	VolumeM3          *float64          `json:"volume_m3,omitempty"`
	FlowM3S           *float64          `json:"flow_m3s,omitempty"`
	Material          string            `json:"material,omitempty"`
	Stages            []StageProperties `json:"stages,omitempty"`
}

// MultiStage reports whether the device carries per-stage data.
func (p *DeviceProperties) MultiStage() bool {
	return len(p.Stages) > 0
}

// Device pairs a committed classification with its normalized properties.
type Device struct {
	Name           string
	Classification ClassificationResult
	Properties     DeviceProperties
}
