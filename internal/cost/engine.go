package cost

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/model"
)

// Compressor duty re-examination thresholds, in bar. A nominal compressor
// whose inlet pressure exceeds its outlet by more than the drop threshold
// is physically a turbine; one with a pressure rise at or below the fan
// threshold is a fan and is sized by volumetric flow instead of power.
const (
	fanMaxPressureRise     = 0.16
	turbineMinPressureDrop = 0.1
)

const atmBar = 1.01325

// belowMinimumNote is the note recorded when a device is under its
// correlation's fitted range and priced at zero rather than extrapolated.
const belowMinimumNote = "below minimum size"

// Config holds the run-wide costing options.
type Config struct {
	MaterialOverrides map[string]string
	PressureOverrides map[string]float64
	DefaultMaterial   string
	TargetIndex       float64
	FoulingFactor     float64
}

// DefaultConfig returns the costing defaults. TargetIndex has no default;
// it must come from configuration.
func DefaultConfig() Config {
	return Config{
		DefaultMaterial: "CS",
		FoulingFactor:   0.9,
	}
}

// Engine computes per-device cost breakdowns. It is stateless apart from
// its configuration and safe for reuse across devices.
type Engine struct {
	cfg Config
}

// New creates a cost engine, validating the configuration.
func New(cfg Config) (*Engine, error) {
	if cfg.TargetIndex <= 0 {
		return nil, fmt.Errorf("cost index target must be positive, got %v: %w", cfg.TargetIndex, common.ErrInvalidConfig)
	}
	if cfg.DefaultMaterial == "" {
		cfg.DefaultMaterial = "CS"
	}
	return &Engine{cfg: cfg}, nil
}

// TargetIndex returns the CEPCI value costs are escalated to.
func (e *Engine) TargetIndex() float64 {
	return e.cfg.TargetIndex
}

// Compute runs the full derivation for one device. Recoverable problems
// (no correlation, missing property, unknown material) come back as
// sentinel errors for the caller to record as a skip; Compute never fails
// the run. Identical inputs produce bit-identical breakdowns.
func (e *Engine) Compute(ctx context.Context, dev model.Device) (model.CostBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return model.CostBreakdown{}, err
	}

	b := model.CostBreakdown{
		DeviceName: dev.Name,
		Category:   dev.Classification.Category,
		Subtype:    dev.Classification.Subtype,
		BareModule: decimal.Zero,
	}

	if dev.Classification.Category == model.CategoryCompressor && dev.Properties.MultiStage() {
		return e.computeMultiStage(dev, b)
	}

	subtype := dev.Classification.Subtype
	if dev.Classification.Category == model.CategoryCompressor {
		subtype = e.reexamineCompressor(dev, subtype, &b)
		b.Subtype = subtype
	}

	corr, ok := Lookup(dev.Classification.Category, subtype)
	if !ok {
		return b, fmt.Errorf("%s/%s: %w", dev.Classification.Category, subtype, common.ErrNoCorrelation)
	}

	size, err := e.sizeParameter(dev, corr, &b)
	if err != nil {
		return b, err
	}
	b.SizeValue = size
	b.SizeUnit = string(corr.Basis)

	if size < corr.SMin {
		b.Notes = append(b.Notes, belowMinimumNote)
		b.AddTrail(fmt.Sprintf("S=%.4f %s is below the fitted minimum %.4f %s; cost = 0", size, corr.Basis, corr.SMin, corr.Basis))
		return b, nil
	}

	material, fm, err := e.materialFactor(dev, corr)
	if err != nil {
		return b, err
	}
	b.MaterialFactor = fm

	fp := e.pressureFactor(dev, corr)
	b.PressureFactor = fp
	b.AddTrail(fmt.Sprintf("material=%s Fm=%.4f Fp=%.4f", material, fm, fp))

	units := 1
	unitSize := size
	if size > corr.SMax {
		units = int(math.Ceil(size / corr.SMax))
		unitSize = size / float64(units)
		b.Notes = append(b.Notes, fmt.Sprintf("duty split across %d parallel units", units))
		b.AddTrail(fmt.Sprintf("S=%.4f %s exceeds the fitted maximum %.4f; %d parallel units of %.4f each", size, corr.Basis, corr.SMax, units, unitSize))
	}

	purchased := evalCorrelation(corr, unitSize) * float64(units)
	b.PurchasedBase = purchased
	b.AddTrail(fmt.Sprintf("log10(C) = %.4f + %.4f*log10(S) + %.4f*log10(S)^2 at S=%.4f %s", corr.A, corr.B, corr.C, unitSize, corr.Basis))
	b.AddTrail(fmt.Sprintf("purchased cost (CEPCI %.1f basis) = %.2f", ReferenceIndex, purchased))

	adjusted := purchased * fm * fp
	b.AddTrail(fmt.Sprintf("factor-adjusted cost = %.2f * %.4f * %.4f = %.2f", purchased, fm, fp, adjusted))

	indexAdjusted := adjusted * (e.cfg.TargetIndex / ReferenceIndex)
	b.IndexAdjusted = indexAdjusted
	b.AddTrail(fmt.Sprintf("index-adjusted cost (CEPCI %.1f -> %.1f) = %.2f", ReferenceIndex, e.cfg.TargetIndex, indexAdjusted))

	bmFactor, bmDesc, err := bareModuleFactor(corr, material, fm)
	if err != nil {
		return b, err
	}
	b.BareModuleFactor = bmFactor

	bare := indexAdjusted * bmFactor
	b.BareModule = decimal.NewFromFloat(bare).Round(2)
	b.AddTrail(fmt.Sprintf("BM %s = %.4f; bare module cost = %.2f * %.4f = %.2f", bmDesc, bmFactor, indexAdjusted, bmFactor, bare))

	return b, nil
}

// sizeParameter extracts the correlation's size basis from the device
// properties, recording the turbine flag for negative power duties.
func (e *Engine) sizeParameter(dev model.Device, corr Correlation, b *model.CostBreakdown) (float64, error) {
	switch corr.Basis {
	case BasisFlowM3S:
		if dev.Properties.FlowM3S == nil {
			return 0, fmt.Errorf("volumetric flow for %s/%s: %w", corr.Category, corr.Subtype, common.ErrMissingProperty)
		}
		flow := *dev.Properties.FlowM3S
		b.AddTrail(fmt.Sprintf("S = volumetric flow = %.4f m3/s", flow))
		return flow, nil
	case BasisAreaM2:
		if dev.Properties.AreaM2 == nil {
			return 0, fmt.Errorf("heat-transfer area for %s/%s: %w", corr.Category, corr.Subtype, common.ErrMissingProperty)
		}
		area := *dev.Properties.AreaM2
		fouling := e.cfg.FoulingFactor
		if fouling <= 0 {
			fouling = 1.0
		}
		// The simulator reports clean area; the design area grows by the
		// fouling derate, A = Q/(U*LMTD*f).
		sized := area / fouling
		b.AddTrail(fmt.Sprintf("S = area / fouling = %.4f / %.2f = %.4f m2", area, fouling, sized))
		return sized, nil
	case BasisVolumeM3:
		if dev.Properties.VolumeM3 == nil {
			return 0, fmt.Errorf("vessel volume for %s/%s: %w", corr.Category, corr.Subtype, common.ErrMissingProperty)
		}
		volume := *dev.Properties.VolumeM3
		b.AddTrail(fmt.Sprintf("S = volume = %.4f m3", volume))
		return volume, nil
	default:
		if dev.Properties.PowerKW == nil {
			return 0, fmt.Errorf("power for %s/%s: %w", corr.Category, corr.Subtype, common.ErrMissingProperty)
		}
		power := *dev.Properties.PowerKW
		if power < 0 {
			// Reversed energy flow: physically a turbine. The magnitude
			// drives the correlation; the classification is only flagged,
			// never silently changed.
			b.TurbineFlag = true
			b.Notes = append(b.Notes, "negative power duty, flagged for turbine review")
			b.AddTrail(fmt.Sprintf("S = |power| = |%.4f| = %.4f kW (negative duty, turbine flag set)", power, -power))
			return -power, nil
		}
		b.AddTrail(fmt.Sprintf("S = power = %.4f kW", power))
		return power, nil
	}
}

// reexamineCompressor corrects the subtype family for nominal compressors
// whose pressures say otherwise: a pressure drop means a turbine, a rise
// inside the fan band means a fan.
func (e *Engine) reexamineCompressor(dev model.Device, subtype string, b *model.CostBreakdown) string {
	pin, pout := dev.Properties.InletPressureBar, dev.Properties.OutletPressureBar
	if pin == nil || pout == nil {
		return subtype
	}
	if isTurbineSubtype(subtype) || isFanSubtype(subtype) {
		return subtype
	}

	drop := *pin - *pout
	switch {
	case drop > turbineMinPressureDrop:
		b.TurbineFlag = true
		b.Notes = append(b.Notes, "pressure drop across compressor, costed as turbine")
		b.AddTrail(fmt.Sprintf("inlet %.4f bar > outlet %.4f bar: turbine correlation selected", *pin, *pout))
		return "turbine_axial"
	case drop < 0 && -drop <= fanMaxPressureRise:
		b.Notes = append(b.Notes, fmt.Sprintf("pressure rise %.4f bar within fan range, costed as fan", -drop))
		b.AddTrail(fmt.Sprintf("pressure rise %.4f bar <= %.2f bar: fan correlation selected", -drop, fanMaxPressureRise))
		return "fan_centrifugal_radial"
	default:
		return subtype
	}
}

// materialFactor resolves the device's material code and its F_M. For
// fixed-BM correlations F_M is 1.0 by definition; the material still has to
// exist in the BM table, otherwise the device is skipped rather than costed
// with a wrong factor.
func (e *Engine) materialFactor(dev model.Device, corr Correlation) (string, float64, error) {
	material := e.cfg.DefaultMaterial
	if dev.Classification.Material != "" {
		material = dev.Classification.Material
	}
	if dev.Properties.Material != "" {
		material = dev.Properties.Material
	}
	if override, ok := e.cfg.MaterialOverrides[dev.Name]; ok {
		material = override
	}

	if corr.UsesFixedBM() {
		if _, ok := corr.FixedBM[material]; !ok {
			return material, 0, fmt.Errorf("material %q for %s/%s: %w", material, corr.Category, corr.Subtype, common.ErrNoMaterialFactor)
		}
		return material, 1.0, nil
	}

	fm, ok := corr.Materials[material]
	if !ok {
		return material, 0, fmt.Errorf("material %q for %s/%s: %w", material, corr.Category, corr.Subtype, common.ErrNoMaterialFactor)
	}
	return material, fm, nil
}

// pressureFactor resolves F_P. A per-device override wins; otherwise the
// correlation's gauge-pressure bands are evaluated at the outlet pressure.
// Correlations without bands, and devices without an outlet pressure, get
// 1.0 (the fixed-BM tables already absorb pressure effects).
func (e *Engine) pressureFactor(dev model.Device, corr Correlation) float64 {
	if override, ok := e.cfg.PressureOverrides[dev.Name]; ok {
		return override
	}
	if len(corr.Pressure) == 0 || dev.Properties.OutletPressureBar == nil {
		return 1.0
	}

	gauge := *dev.Properties.OutletPressureBar - atmBar
	var band *PressureBand
	for i := range corr.Pressure {
		if gauge > corr.Pressure[i].MinBarg {
			band = &corr.Pressure[i]
		}
	}
	if band == nil {
		return 1.0
	}

	logP := math.Log10(gauge)
	fp := math.Pow(10, band.C1+band.C2*logP+band.C3*logP*logP)
	if fp < 1.0 {
		return 1.0
	}
	return fp
}

// evalCorrelation evaluates the log-quadratic purchased-cost fit at size s.
func evalCorrelation(corr Correlation, s float64) float64 {
	logS := math.Log10(s)
	logC := corr.A + corr.B*logS + corr.C*logS*logS
	return math.Pow(10, logC)
}

// bareModuleFactor resolves the installed-cost multiplier and a short
// description of which model produced it.
func bareModuleFactor(corr Correlation, material string, fm float64) (float64, string, error) {
	if corr.UsesFixedBM() {
		factor, ok := corr.FixedBM[material]
		if !ok {
			return 0, "", fmt.Errorf("material %q for %s/%s: %w", material, corr.Category, corr.Subtype, common.ErrNoMaterialFactor)
		}
		return factor, fmt.Sprintf("(table, %s)", material), nil
	}
	factor := corr.B1 + corr.B2*fm
	return factor, fmt.Sprintf("(%.2f + %.2f*Fm)", corr.B1, corr.B2), nil
}

func isTurbineSubtype(subtype string) bool {
	return subtype == "turbine_axial" || subtype == "turbine_radial"
}

func isFanSubtype(subtype string) bool {
	switch subtype {
	case "fan_centrifugal_radial", "fan_centrifugal_backward", "fan_axial_tube", "fan_axial_vane":
		return true
	}
	return false
}
