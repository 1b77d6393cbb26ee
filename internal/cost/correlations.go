// Package cost evaluates purchased and bare-module capital costs from
// published log-quadratic size correlations, with CEPCI escalation and
// material/pressure correction factors. All correlation data lives in
// immutable package tables; the evaluation pipeline itself is generic and
// dispatches on (category, subtype) only.
package cost

import "github.com/phygon975/API-project/internal/model"

// SizeBasis names the capacity parameter a correlation is fitted against.
type SizeBasis string

const (
	// BasisPowerKW sizes by shaft or brake power in kW.
	BasisPowerKW SizeBasis = "kW"
	// BasisFlowM3S sizes by volumetric flow in m³/s.
	BasisFlowM3S SizeBasis = "m3/s"
	// BasisAreaM2 sizes by heat-transfer area in m².
	BasisAreaM2 SizeBasis = "m2"
	// BasisVolumeM3 sizes by shell volume in m³.
	BasisVolumeM3 SizeBasis = "m3"
)

// PressureBand is one gauge-pressure interval of a pressure-factor fit:
// log10(F_P) = C1 + C2·log10(P) + C3·log10(P)² for P in (MinBarg, MaxBarg].
// Below the first band's minimum F_P is 1.0.
type PressureBand struct {
	MinBarg, MaxBarg float64
	C1, C2, C3       float64
}

// Correlation is one row of the cost table: a quadratic fit of
// log10(purchased cost) against log10(size), its fitted validity range, and
// the bare-module model that turns purchased cost into installed cost.
// Exactly one of FixedBM or (B1, B2, Materials) is populated.
type Correlation struct {
	Category model.EquipmentCategory
	Subtype  string
	Basis    SizeBasis

	// log10(Cp) = A + B·log10(S) + C·log10(S)²
	A, B, C float64

	// Fitted size range. Below SMin the device costs zero with a note;
	// above SMax the duty splits across parallel identical units.
	SMin, SMax float64

	// FixedBM maps material code to a fixed bare-module factor.
	FixedBM map[string]float64

	// B1/B2 form BM = B1 + B2·F_M with F_M from Materials.
	B1, B2    float64
	Materials map[string]float64

	// Pressure holds the gauge-pressure factor bands. Empty means the
	// correlation carries no pressure correction (F_P = 1.0).
	Pressure []PressureBand
}

// UsesFixedBM reports whether the row's bare-module factor comes straight
// from a material table instead of the B1 + B2·F_M form.
func (c Correlation) UsesFixedBM() bool {
	return c.FixedBM != nil
}

type correlationKey struct {
	category model.EquipmentCategory
	subtype  string
}

var pumpCentrifugalFM = map[string]float64{
	"CI": 1.0, "CS": 1.6, "SS": 2.3, "Ni": 4.4,
}

var pumpReciprocatingFM = map[string]float64{
	"CI": 1.0, "CS": 1.5, "SS": 2.4, "Ni": 4.0, "Ti": 6.4,
}

// Tube-side material factors for shell-and-tube exchangers with a
// carbon-steel shell.
var shellTubeFM = map[string]float64{
	"CS": 1.00, "Cu": 1.35, "SS": 1.81, "Ni": 2.68, "Ti": 4.63,
}

var airCoolerFM = map[string]float64{
	"CS": 1.0, "Al": 1.42, "SS": 2.93,
}

var vesselFM = map[string]float64{
	"CS": 1.0, "SS": 3.1, "Ni": 7.1, "Ti": 9.4,
}

var reactorBM = map[string]float64{
	"CS": 4.0, "SS": 5.0, "Ni": 7.0,
}

var pumpFpBands = []PressureBand{
	{MinBarg: 10.0, MaxBarg: 100.0, C1: -0.3935, C2: 0.3957, C3: -0.00226},
}

var shellTubeFpBands = []PressureBand{
	{MinBarg: 5.0, MaxBarg: 140.0, C1: -0.00164, C2: -0.00627, C3: 0.0123},
}

var doublePipeFpBands = []PressureBand{
	{MinBarg: 40.0, MaxBarg: 100.0, C1: 0.6072, C2: -0.9120, C3: 0.3327},
	{MinBarg: 100.0, MaxBarg: 300.0, C1: 13.1467, C2: -12.6574, C3: 3.0705},
}

var airCoolerFpBands = []PressureBand{
	{MinBarg: 10.0, MaxBarg: 100.0, C1: -0.1250, C2: 0.15361, C3: -0.02861},
}

var correlations = map[correlationKey]Correlation{
	{model.CategoryPump, "centrifugal"}: {
		Category: model.CategoryPump, Subtype: "centrifugal", Basis: BasisPowerKW,
		A: 3.3892, B: 0.0536, C: 0.1538,
		SMin: 1.0, SMax: 300.0,
		B1: 1.89, B2: 1.35, Materials: pumpCentrifugalFM,
		Pressure: pumpFpBands,
	},
	{model.CategoryPump, "reciprocating"}: {
		Category: model.CategoryPump, Subtype: "reciprocating", Basis: BasisPowerKW,
		A: 3.8696, B: 0.3161, C: 0.1220,
		SMin: 0.1, SMax: 200.0,
		B1: 1.89, B2: 1.35, Materials: pumpReciprocatingFM,
		Pressure: pumpFpBands,
	},
	{model.CategoryCompressor, "centrifugal"}: {
		Category: model.CategoryCompressor, Subtype: "centrifugal", Basis: BasisPowerKW,
		A: 2.2891, B: 1.3604, C: -0.1027,
		SMin: 450.0, SMax: 3000.0,
		FixedBM: map[string]float64{"CS": 2.7, "SS": 5.8, "Ni": 11.5},
	},
	{model.CategoryCompressor, "axial"}: {
		Category: model.CategoryCompressor, Subtype: "axial", Basis: BasisPowerKW,
		A: 2.2891, B: 1.3604, C: -0.1027,
		SMin: 450.0, SMax: 3000.0,
		FixedBM: map[string]float64{"CS": 3.8, "SS": 8.0, "Ni": 15.9},
	},
	{model.CategoryCompressor, "reciprocating"}: {
		Category: model.CategoryCompressor, Subtype: "reciprocating", Basis: BasisPowerKW,
		A: 2.2891, B: 1.3604, C: -0.1027,
		SMin: 450.0, SMax: 3000.0,
		FixedBM: map[string]float64{"CS": 3.4, "SS": 7.0, "Ni": 13.9},
	},
	{model.CategoryCompressor, "turbine_axial"}: {
		Category: model.CategoryCompressor, Subtype: "turbine_axial", Basis: BasisPowerKW,
		A: 2.7051, B: 1.4398, C: -0.1776,
		SMin: 100.0, SMax: 4000.0,
		FixedBM: map[string]float64{"CS": 3.5, "SS": 6.1, "Ni": 11.7},
	},
	{model.CategoryCompressor, "turbine_radial"}: {
		Category: model.CategoryCompressor, Subtype: "turbine_radial", Basis: BasisPowerKW,
		A: 2.2476, B: 1.4965, C: -0.1618,
		SMin: 100.0, SMax: 1500.0,
		FixedBM: map[string]float64{"CS": 3.5, "SS": 6.1, "Ni": 11.7},
	},
	{model.CategoryCompressor, "fan_centrifugal_radial"}: {
		Category: model.CategoryCompressor, Subtype: "fan_centrifugal_radial", Basis: BasisFlowM3S,
		A: 3.5391, B: -0.3533, C: 0.4477,
		SMin: 1.0, SMax: 100.0,
		FixedBM: fanBM,
	},
	{model.CategoryCompressor, "fan_centrifugal_backward"}: {
		Category: model.CategoryCompressor, Subtype: "fan_centrifugal_backward", Basis: BasisFlowM3S,
		A: 3.3471, B: -0.0734, C: 0.3090,
		SMin: 1.0, SMax: 100.0,
		FixedBM: fanBM,
	},
	{model.CategoryCompressor, "fan_axial_tube"}: {
		Category: model.CategoryCompressor, Subtype: "fan_axial_tube", Basis: BasisFlowM3S,
		A: 3.0414, B: -0.3375, C: 0.4722,
		SMin: 1.0, SMax: 100.0,
		FixedBM: fanBM,
	},
	{model.CategoryCompressor, "fan_axial_vane"}: {
		Category: model.CategoryCompressor, Subtype: "fan_axial_vane", Basis: BasisFlowM3S,
		A: 3.1761, B: -0.1373, C: 0.3414,
		SMin: 1.0, SMax: 100.0,
		FixedBM: fanBM,
	},
	{model.CategoryVacuumSystem, "ejector"}: {
		Category: model.CategoryVacuumSystem, Subtype: "ejector", Basis: BasisPowerKW,
		A: 2.2891, B: 1.3604, C: -0.1027,
		SMin: 450.0, SMax: 3000.0,
		FixedBM: map[string]float64{"CS": 2.7, "SS": 5.8, "Ni": 11.5},
	},
	{model.CategoryHeatExchanger, "fixed_tube"}: {
		Category: model.CategoryHeatExchanger, Subtype: "fixed_tube", Basis: BasisAreaM2,
		A: 4.3247, B: -0.3030, C: 0.1634,
		SMin: 0.07, SMax: 520.0,
		B1: 1.63, B2: 1.66, Materials: shellTubeFM,
		Pressure: shellTubeFpBands,
	},
	{model.CategoryHeatExchanger, "floating_head"}: {
		Category: model.CategoryHeatExchanger, Subtype: "floating_head", Basis: BasisAreaM2,
		A: 4.8306, B: -0.8509, C: 0.3187,
		SMin: 0.07, SMax: 520.0,
		B1: 1.63, B2: 1.66, Materials: shellTubeFM,
		Pressure: shellTubeFpBands,
	},
	{model.CategoryHeatExchanger, "kettle_reboiler"}: {
		Category: model.CategoryHeatExchanger, Subtype: "kettle_reboiler", Basis: BasisAreaM2,
		A: 4.4646, B: -0.5277, C: 0.3955,
		SMin: 0.07, SMax: 520.0,
		B1: 1.63, B2: 1.66, Materials: shellTubeFM,
		Pressure: shellTubeFpBands,
	},
	{model.CategoryHeatExchanger, "double_pipe"}: {
		Category: model.CategoryHeatExchanger, Subtype: "double_pipe", Basis: BasisAreaM2,
		A: 3.3444, B: 0.2745, C: -0.0472,
		SMin: 0.07, SMax: 10.5,
		B1: 1.74, B2: 1.55, Materials: shellTubeFM,
		Pressure: doublePipeFpBands,
	},
	{model.CategoryHeatExchanger, "air_cooler"}: {
		Category: model.CategoryHeatExchanger, Subtype: "air_cooler", Basis: BasisAreaM2,
		A: 4.0336, B: 0.2341, C: 0.0497,
		SMin: 0.07, SMax: 520.0,
		B1: 0.96, B2: 1.21, Materials: airCoolerFM,
		Pressure: airCoolerFpBands,
	},
	// Tray and packed towers share one shell correlation; the subtype
	// records the internals the reviewer confirmed.
	{model.CategoryDistillationColumn, "tray"}: {
		Category: model.CategoryDistillationColumn, Subtype: "tray", Basis: BasisVolumeM3,
		A: 3.4974, B: 0.4485, C: 0.1074,
		SMin: 0.3, SMax: 520.0,
		B1: 1.49, B2: 1.52, Materials: vesselFM,
	},
	{model.CategoryDistillationColumn, "packed"}: {
		Category: model.CategoryDistillationColumn, Subtype: "packed", Basis: BasisVolumeM3,
		A: 3.4974, B: 0.4485, C: 0.1074,
		SMin: 0.3, SMax: 520.0,
		B1: 1.49, B2: 1.52, Materials: vesselFM,
	},
	{model.CategoryEvaporator, "flash_drum"}: {
		Category: model.CategoryEvaporator, Subtype: "flash_drum", Basis: BasisVolumeM3,
		A: 3.4974, B: 0.4485, C: 0.1074,
		SMin: 0.3, SMax: 520.0,
		B1: 1.49, B2: 1.52, Materials: vesselFM,
	},
	{model.CategoryEvaporator, "horizontal_drum"}: {
		Category: model.CategoryEvaporator, Subtype: "horizontal_drum", Basis: BasisVolumeM3,
		A: 3.5565, B: 0.3776, C: 0.0905,
		SMin: 0.1, SMax: 628.0,
		B1: 2.25, B2: 1.82, Materials: vesselFM,
	},
	{model.CategoryReactor, "jacketed_agitated"}: {
		Category: model.CategoryReactor, Subtype: "jacketed_agitated", Basis: BasisVolumeM3,
		A: 4.1052, B: 0.5320, C: -0.0005,
		SMin: 0.1, SMax: 35.0,
		FixedBM: reactorBM,
	},
	{model.CategoryReactor, "jacketed_non_agitated"}: {
		Category: model.CategoryReactor, Subtype: "jacketed_non_agitated", Basis: BasisVolumeM3,
		A: 3.3496, B: 0.7235, C: 0.0025,
		SMin: 5.0, SMax: 45.0,
		FixedBM: reactorBM,
	},
	{model.CategoryReactor, "autoclave"}: {
		Category: model.CategoryReactor, Subtype: "autoclave", Basis: BasisVolumeM3,
		A: 4.5587, B: 0.2986, C: 0.0020,
		SMin: 1.0, SMax: 15.0,
		FixedBM: reactorBM,
	},
}

var fanBM = map[string]float64{"CS": 2.7, "FG": 5.0, "SS": 5.8, "Ni": 11.5}

// Lookup returns the correlation row for a (category, subtype) pair.
func Lookup(category model.EquipmentCategory, subtype string) (Correlation, bool) {
	c, ok := correlations[correlationKey{category, subtype}]
	return c, ok
}

// Subtypes lists the subtypes available for a category, in a fixed order
// suitable for review menus.
func Subtypes(category model.EquipmentCategory) []string {
	switch category {
	case model.CategoryPump:
		return []string{"centrifugal", "reciprocating"}
	case model.CategoryCompressor:
		return []string{
			"centrifugal", "axial", "reciprocating",
			"turbine_axial", "turbine_radial",
			"fan_centrifugal_radial", "fan_centrifugal_backward",
			"fan_axial_tube", "fan_axial_vane",
		}
	case model.CategoryVacuumSystem:
		return []string{"ejector"}
	case model.CategoryHeatExchanger:
		return []string{
			"fixed_tube", "floating_head", "kettle_reboiler",
			"double_pipe", "air_cooler",
		}
	case model.CategoryDistillationColumn:
		return []string{"tray", "packed"}
	case model.CategoryEvaporator:
		return []string{"flash_drum", "horizontal_drum"}
	case model.CategoryReactor:
		return []string{"jacketed_agitated", "jacketed_non_agitated", "autoclave"}
	default:
		return nil
	}
}

// MaterialCodes lists the material codes a (category, subtype) pair accepts.
func MaterialCodes(category model.EquipmentCategory, subtype string) []string {
	c, ok := Lookup(category, subtype)
	if !ok {
		return nil
	}
	var table map[string]float64
	if c.UsesFixedBM() {
		table = c.FixedBM
	} else {
		table = c.Materials
	}
	codes := make([]string, 0, len(table))
	for _, code := range []string{"CI", "CS", "Cu", "Al", "SS", "Ni", "Ti", "FG"} {
		if _, ok := table[code]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}
