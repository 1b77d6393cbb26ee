package cost

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/model"
)

// Multi-stage compressor handling. Each stage is costed independently from
// its own brake power and the device total is the sum over stages plus the
// intercoolers between them. A stage without a usable power reading is
// skipped with its own note and never fails the other stages.
const (
	// multiStageBMMultiplier inflates the per-stage bare-module factor to
	// cover the interstage piping and controls of an integrated machine.
	multiStageBMMultiplier = 1.2

	// Intercooler placeholder model: purchased = intercoolerBaseCost *
	// (p_avg/10)^intercoolerExponent at the reference index, installed with
	// intercoolerBM.
	intercoolerBaseCost = 10000.0
	intercoolerExponent = 0.6
	intercoolerBM       = 2.5
)

func (e *Engine) computeMultiStage(dev model.Device, b model.CostBreakdown) (model.CostBreakdown, error) {
	corr, ok := Lookup(model.CategoryCompressor, dev.Classification.Subtype)
	if !ok {
		return b, fmt.Errorf("%s/%s: %w", model.CategoryCompressor, dev.Classification.Subtype, common.ErrNoCorrelation)
	}

	material, _, err := e.materialFactor(dev, corr)
	if err != nil {
		return b, err
	}

	tableBM, ok := corr.FixedBM[material]
	if !ok {
		return b, fmt.Errorf("material %q for %s/%s: %w", material, corr.Category, corr.Subtype, common.ErrNoMaterialFactor)
	}
	stageBM := tableBM * multiStageBMMultiplier

	b.MaterialFactor = 1.0
	b.PressureFactor = 1.0
	b.BareModuleFactor = stageBM
	b.SizeUnit = string(corr.Basis)
	b.AddTrail(fmt.Sprintf("multi-stage compressor, %d stages, material=%s, stage BM = %.2f * %.2f = %.3f",
		len(dev.Properties.Stages), material, tableBM, multiStageBMMultiplier, stageBM))

	var totalPurchased, totalIndexAdjusted, totalBare, totalPower float64
	costedStages := 0

	for _, stage := range dev.Properties.Stages {
		if stage.PowerKW == nil {
			b.Notes = append(b.Notes, fmt.Sprintf("stage %d skipped: missing brake power", stage.Number))
			b.AddTrail(fmt.Sprintf("stage %d: no brake power reported, skipped", stage.Number))
			continue
		}

		power := *stage.PowerKW
		if power < 0 {
			b.TurbineFlag = true
			b.Notes = append(b.Notes, fmt.Sprintf("stage %d has negative power duty, flagged for turbine review", stage.Number))
			power = -power
		}
		totalPower += power

		if power < corr.SMin {
			b.Notes = append(b.Notes, fmt.Sprintf("stage %d %s", stage.Number, belowMinimumNote))
			b.AddTrail(fmt.Sprintf("stage %d: S=%.4f kW below fitted minimum %.4f; stage cost = 0", stage.Number, power, corr.SMin))
			continue
		}

		units := 1
		unitSize := power
		if power > corr.SMax {
			units = int(math.Ceil(power / corr.SMax))
			unitSize = power / float64(units)
			b.AddTrail(fmt.Sprintf("stage %d: S=%.4f kW exceeds fitted maximum %.4f; %d parallel units of %.4f each", stage.Number, power, corr.SMax, units, unitSize))
		}

		purchased := evalCorrelation(corr, unitSize) * float64(units)
		indexAdjusted := purchased * (e.cfg.TargetIndex / ReferenceIndex)
		bare := indexAdjusted * stageBM

		totalPurchased += purchased
		totalIndexAdjusted += indexAdjusted
		totalBare += bare
		costedStages++

		b.AddTrail(fmt.Sprintf("stage %d: S=%.4f kW purchased=%.2f index-adjusted=%.2f bare=%.2f", stage.Number, power, purchased, indexAdjusted, bare))
	}

	for i := 0; i < len(dev.Properties.Stages)-1; i++ {
		pAvg, ok := intercoolerPressure(dev.Properties.Stages[i], dev.Properties.Stages[i+1])
		if !ok {
			b.Notes = append(b.Notes, fmt.Sprintf("intercooler after stage %d skipped: missing stage pressures", dev.Properties.Stages[i].Number))
			continue
		}
		purchased := intercoolerBaseCost * math.Pow(pAvg/10.0, intercoolerExponent)
		indexAdjusted := purchased * (e.cfg.TargetIndex / ReferenceIndex)
		bare := indexAdjusted * intercoolerBM

		totalPurchased += purchased
		totalIndexAdjusted += indexAdjusted
		totalBare += bare

		b.AddTrail(fmt.Sprintf("intercooler after stage %d: p_avg=%.4f bar purchased=%.2f bare=%.2f", dev.Properties.Stages[i].Number, pAvg, purchased, bare))
	}

	if costedStages == 0 && totalPower == 0 {
		return b, fmt.Errorf("no stage reported brake power: %w", common.ErrMissingProperty)
	}

	b.SizeValue = totalPower
	b.PurchasedBase = totalPurchased
	b.IndexAdjusted = totalIndexAdjusted
	b.BareModule = decimal.NewFromFloat(totalBare).Round(2)
	b.AddTrail(fmt.Sprintf("device total over %d costed stages = %.2f", costedStages, totalBare))

	return b, nil
}

// intercoolerPressure sizes the intercooler between two stages from the
// mean of the upstream outlet and downstream inlet pressures.
func intercoolerPressure(upstream, downstream model.StageProperties) (float64, bool) {
	if upstream.OutletPressureBar == nil || downstream.InletPressureBar == nil {
		return 0, false
	}
	return (*upstream.OutletPressureBar + *downstream.InletPressureBar) / 2.0, true
}
