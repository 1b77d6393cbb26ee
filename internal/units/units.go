// Package units normalizes raw simulation values into the canonical units
// used by the cost correlations: kW for power and duty, bar (absolute) for
// pressure, m² for area, m³ for volume, m³/s for volumetric flow.
//
// The conversion tables are immutable package data. Unknown unit labels are
// reported as errors so a device is skipped with a reason instead of being
// costed from a misread number.
package units

import (
	"fmt"
	"strings"

	"github.com/phygon975/API-project/internal/common"
)

// Quantity identifies which conversion table applies to a raw value.
type Quantity string

const (
	// Power converts to kW.
	Power Quantity = "power"
	// Pressure converts to bar absolute.
	Pressure Quantity = "pressure"
	// Area converts to m².
	Area Quantity = "area"
	// Volume converts to m³.
	Volume Quantity = "volume"
	// VolumeFlow converts to m³/s.
	VolumeFlow Quantity = "volume_flow"
)

// atmBar is standard atmospheric pressure, used when converting gauge
// readings to absolute.
const atmBar = 1.01325

var powerToKW = map[string]float64{
	"W":      0.001,
	"Watt":   0.001,
	"kW":     1.0,
	"MW":     1000.0,
	"hp":     0.7457,
	"Btu/hr": 0.000293071,
}

var pressureToBar = map[string]float64{
	"bar":    1.0,
	"bara":   1.0,
	"atm":    1.01325,
	"Pa":     1e-5,
	"N/sqm":  1e-5,
	"kPa":    0.01,
	"MPa":    10.0,
	"psi":    0.0689476,
	"psia":   0.0689476,
	"mmHg":   0.00133322,
	"torr":   0.00133322,
	"mbar":   0.001,
	"inH2O":  0.00249089,
	"inHg":   0.0338639,
	"lbf/in": 0.0689476,
}

// Gauge labels convert through their absolute counterpart, then shift by
// one standard atmosphere.
var gaugeToAbsolute = map[string]string{
	"barg":  "bar",
	"psig":  "psi",
	"kpag":  "kPa",
	"mpag":  "MPa",
	"mbarg": "mbar",
	"atmg":  "atm",
}

var areaToM2 = map[string]float64{
	"m2":   1.0,
	"sqm":  1.0,
	"cm2":  1e-4,
	"ft2":  0.092903,
	"sqft": 0.092903,
}

var volumeToM3 = map[string]float64{
	"m3":   1.0,
	"cum":  1.0,
	"L":    1e-3,
	"l":    1e-3,
	"ft3":  0.0283168,
	"cuft": 0.0283168,
	"gal":  0.00378541,
}

var flowToM3S = map[string]float64{
	"m3/s":     1.0,
	"m^3/s":    1.0,
	"cum/sec":  1.0,
	"m3/h":     1.0 / 3600.0,
	"m^3/h":    1.0 / 3600.0,
	"cum/hr":   1.0 / 3600.0,
	"L/s":      1e-3,
	"l/s":      1e-3,
	"L/min":    1e-3 / 60.0,
	"cfm":      0.0283168 / 60.0,
	"cuft/min": 0.0283168 / 60.0,
	"cuft/hr":  0.0283168 / 3600.0,
	"gpm":      0.00378541 / 60.0,
}

// Convert turns (value, unit label) into the canonical unit for the given
// quantity. Pressure gauge labels are shifted to absolute.
func Convert(value float64, unit string, q Quantity) (float64, error) {
	switch q {
	case Power:
		return lookup(value, unit, powerToKW)
	case Pressure:
		return ToBarAbsolute(value, unit)
	case Area:
		return lookup(value, unit, areaToM2)
	case Volume:
		return lookup(value, unit, volumeToM3)
	case VolumeFlow:
		return lookup(value, unit, flowToM3S)
	default:
		return 0, fmt.Errorf("unsupported quantity %q: %w", q, common.ErrUnknownUnit)
	}
}

// ToKW converts a power or duty value to kW.
func ToKW(value float64, unit string) (float64, error) {
	return lookup(value, unit, powerToKW)
}

// ToBarAbsolute converts a pressure value to bar absolute, shifting gauge
// readings by one standard atmosphere.
func ToBarAbsolute(value float64, unit string) (float64, error) {
	if abs, ok := gaugeToAbsolute[strings.ToLower(unit)]; ok {
		converted, err := lookup(value, abs, pressureToBar)
		if err != nil {
			return 0, err
		}
		return converted + atmBar, nil
	}
	return lookup(value, unit, pressureToBar)
}

// ToM3PerS converts a volumetric flow value to m³/s.
func ToM3PerS(value float64, unit string) (float64, error) {
	return lookup(value, unit, flowToM3S)
}

// IsGauge reports whether a pressure unit label is a gauge reading.
func IsGauge(unit string) bool {
	_, ok := gaugeToAbsolute[strings.ToLower(unit)]
	return ok
}

// DefaultUnit returns the unit label a simulation unit set reports for a
// quantity when the raw property carries no label of its own. Unrecognized
// unit sets fall back to SI.
func DefaultUnit(unitSet string, q Quantity) string {
	set, ok := unitSetDefaults[strings.ToUpper(unitSet)]
	if !ok {
		set = unitSetDefaults["SI"]
	}
	return set[q]
}

var unitSetDefaults = map[string]map[Quantity]string{
	"SI": {
		Power:      "Watt",
		Pressure:   "N/sqm",
		Area:       "sqm",
		Volume:     "cum",
		VolumeFlow: "cum/sec",
	},
	"ENG": {
		Power:      "hp",
		Pressure:   "psia",
		Area:       "sqft",
		Volume:     "cuft",
		VolumeFlow: "cuft/hr",
	},
	"MET": {
		Power:      "kW",
		Pressure:   "bar",
		Area:       "sqm",
		Volume:     "cum",
		VolumeFlow: "cum/hr",
	},
}

func lookup(value float64, unit string, table map[string]float64) (float64, error) {
	factor, ok := table[unit]
	if !ok {
		return 0, fmt.Errorf("unit %q: %w", unit, common.ErrUnknownUnit)
	}
	return value * factor, nil
}
