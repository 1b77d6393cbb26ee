package engine

import (
	"context"
	"fmt"

	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/sim"
	"github.com/phygon975/API-project/internal/units"
)

// extractor pulls a device's raw properties off the source and normalizes
// them into the engine's canonical units. Raw values without a unit label
// fall back to the model's active unit set.
type extractor struct {
	source  sim.Source
	unitSet string
}

// Extract builds the DeviceProperties for one classified block. Properties
// the block simply does not carry are left nil; the cost engine decides per
// category what was required. A property that is present but cannot be
// normalized (unknown unit label) is an extraction error and skips the
// device with that reason.
func (x *extractor) Extract(ctx context.Context, block string, category model.EquipmentCategory) (model.DeviceProperties, error) {
	var props model.DeviceProperties

	power, err := x.scalar(ctx, block, sim.PropPower, units.Power)
	if err != nil {
		return props, err
	}
	props.PowerKW = power

	duty, err := x.scalar(ctx, block, sim.PropDuty, units.Power)
	if err != nil {
		return props, err
	}
	props.DutyKW = duty

	pin, err := x.scalar(ctx, block, sim.PropInletPressure, units.Pressure)
	if err != nil {
		return props, err
	}
	props.InletPressureBar = pin

	pout, err := x.scalar(ctx, block, sim.PropOutletPressure, units.Pressure)
	if err != nil {
		return props, err
	}
	props.OutletPressureBar = pout

	area, err := x.scalar(ctx, block, sim.PropArea, units.Area)
	if err != nil {
		return props, err
	}
	props.AreaM2 = area

	volume, err := x.scalar(ctx, block, sim.PropVolume, units.Volume)
	if err != nil {
		return props, err
	}
	props.VolumeM3 = volume

	flow, err := x.scalar(ctx, block, sim.PropVolumeFlow, units.VolumeFlow)
	if err != nil {
		return props, err
	}
	props.FlowM3S = flow

	if category == model.CategoryCompressor {
		stages, err := x.stages(ctx, block)
		if err != nil {
			return props, err
		}
		props.Stages = stages
	}

	return props, nil
}

// scalar reads and normalizes one optional property.
func (x *extractor) scalar(ctx context.Context, block, key string, q units.Quantity) (*float64, error) {
	raw, ok, err := x.source.RawProperty(ctx, block, key)
	if err != nil {
		return nil, fmt.Errorf("reading %s of %s: %w", key, block, err)
	}
	if !ok {
		return nil, nil
	}

	unit := raw.Unit
	if unit == "" {
		unit = units.DefaultUnit(x.unitSet, q)
	}
	converted, err := units.Convert(raw.Value, unit, q)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s of %s: %w", key, block, err)
	}
	return &converted, nil
}

// stages reads the per-stage numbers of a multi-stage machine. A stage
// with an unreadable power is carried with a nil power so the cost engine
// can skip just that stage.
func (x *extractor) stages(ctx context.Context, block string) ([]model.StageProperties, error) {
	raw, ok, err := x.source.RawProperty(ctx, block, sim.PropStageCount)
	if err != nil {
		return nil, fmt.Errorf("reading stage count of %s: %w", block, err)
	}
	if !ok || raw.Value < 2 {
		return nil, nil
	}

	count := int(raw.Value)
	stages := make([]model.StageProperties, 0, count)
	for n := 1; n <= count; n++ {
		stage := model.StageProperties{Number: n}

		if power, err := x.scalar(ctx, block, sim.StagePropKey(sim.PropPower, n), units.Power); err == nil {
			stage.PowerKW = power
		}
		if pin, err := x.scalar(ctx, block, sim.StagePropKey(sim.PropInletPressure, n), units.Pressure); err == nil {
			stage.InletPressureBar = pin
		}
		if pout, err := x.scalar(ctx, block, sim.StagePropKey(sim.PropOutletPressure, n), units.Pressure); err == nil {
			stage.OutletPressureBar = pout
		}

		stages = append(stages, stage)
	}
	return stages, nil
}
