// Package sim defines the contract with the external process-simulation
// application and a file-backed implementation of it. The pipeline only
// ever sees this interface; the simulator itself is a black box.
package sim

import (
	"context"
	"strconv"
)

// RawValue is one numeric property as the simulator reports it: a value
// plus the unit label of the simulation's active unit set. Unit
// normalization happens downstream.
type RawValue struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// Source is the read-only view of one opened simulation model. A Source is
// acquired once at pipeline start and released once at pipeline end;
// acquisition failure is the only fatal error in the whole run.
type Source interface {
	// ListBlocks returns every block name in the model. Order is not
	// guaranteed and callers must not depend on it.
	ListBlocks(ctx context.Context) ([]string, error)

	// RecordType returns the simulator's authoritative model-type tag for
	// a block, with ok=false when the block does not declare one.
	RecordType(ctx context.Context, block string) (string, bool, error)

	// RawProperty returns one named numeric property of a block, with
	// ok=false when the block does not carry it.
	RawProperty(ctx context.Context, block, key string) (RawValue, bool, error)

	// ActiveUnitSet returns the identifier of the unit set the model's
	// values are expressed in (e.g. "SI", "ENG", "MET").
	ActiveUnitSet(ctx context.Context) (string, error)

	// Close releases the simulator connection.
	Close() error
}

// Property keys the pipeline asks sources for. These mirror the node names
// the simulator exposes per block.
const (
	PropPower          = "power"
	PropDuty           = "duty"
	PropInletPressure  = "pressure_in"
	PropOutletPressure = "pressure_out"
	PropArea           = "area"
	PropVolume         = "volume"
	PropVolumeFlow     = "volume_flow"
	PropStageCount     = "stage_count"
)

// StagePropKey builds the per-stage variant of a property key, e.g.
// stage 2 brake power is "power.2".
func StagePropKey(key string, stage int) string {
	return key + "." + strconv.Itoa(stage)
}
