package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/model"
)

// SaveCostResult upserts one device's cost breakdown for a run. Notes and
// the derivation trail are stored as JSON so the audit record round-trips
// exactly.
func (s *SQLiteStorage) SaveCostResult(ctx context.Context, runID int64, breakdown *model.CostBreakdown) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRunID(runID); err != nil {
		return err
	}
	if breakdown == nil {
		return fmt.Errorf("%w: breakdown", ErrNilParameter)
	}
	if err := validateString(breakdown.DeviceName, "device name"); err != nil {
		return err
	}

	notes, err := json.Marshal(breakdown.Notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	trail, err := json.Marshal(breakdown.Trail)
	if err != nil {
		return fmt.Errorf("failed to encode trail: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cost_results
		 (run_id, block, category, subtype, size_value, size_unit, purchased_base,
		  material_factor, pressure_factor, index_adjusted, bm_factor, bare_module,
		  turbine_flag, notes, trail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id, block) DO UPDATE SET
		   category = excluded.category,
		   subtype = excluded.subtype,
		   size_value = excluded.size_value,
		   size_unit = excluded.size_unit,
		   purchased_base = excluded.purchased_base,
		   material_factor = excluded.material_factor,
		   pressure_factor = excluded.pressure_factor,
		   index_adjusted = excluded.index_adjusted,
		   bm_factor = excluded.bm_factor,
		   bare_module = excluded.bare_module,
		   turbine_flag = excluded.turbine_flag,
		   notes = excluded.notes,
		   trail = excluded.trail`,
		runID, breakdown.DeviceName, string(breakdown.Category), breakdown.Subtype,
		breakdown.SizeValue, breakdown.SizeUnit, breakdown.PurchasedBase,
		breakdown.MaterialFactor, breakdown.PressureFactor, breakdown.IndexAdjusted,
		breakdown.BareModuleFactor, breakdown.BareModule.String(),
		breakdown.TurbineFlag, string(notes), string(trail))
	if err != nil {
		return fmt.Errorf("failed to save cost result for %s: %w", breakdown.DeviceName, err)
	}
	return nil
}

// SaveSkip records one device excluded from the run total.
func (s *SQLiteStorage) SaveSkip(ctx context.Context, runID int64, skip model.SkippedDevice) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRunID(runID); err != nil {
		return err
	}
	if err := validateString(skip.Name, "device name"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO skipped_devices (run_id, block, category, reason)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(run_id, block) DO UPDATE SET
		   category = excluded.category,
		   reason = excluded.reason`,
		runID, skip.Name, string(skip.Category), skip.Reason)
	if err != nil {
		return fmt.Errorf("failed to save skip for %s: %w", skip.Name, err)
	}
	return nil
}

// GetCostResults loads a run's cost breakdowns and skips, each ordered by
// block name.
func (s *SQLiteStorage) GetCostResults(ctx context.Context, runID int64) ([]model.CostBreakdown, []model.SkippedDevice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, nil, err
	}
	if err := validateRunID(runID); err != nil {
		return nil, nil, err
	}

	breakdowns, err := s.loadBreakdowns(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	skips, err := s.loadSkips(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	return breakdowns, skips, nil
}

func (s *SQLiteStorage) loadBreakdowns(ctx context.Context, runID int64) ([]model.CostBreakdown, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT block, category, subtype, size_value, size_unit, purchased_base,
		        material_factor, pressure_factor, index_adjusted, bm_factor,
		        bare_module, turbine_flag, notes, trail
		 FROM cost_results WHERE run_id = ? ORDER BY block`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cost results for run %d: %w", runID, err)
	}
	defer func() { _ = rows.Close() }()

	var breakdowns []model.CostBreakdown
	for rows.Next() {
		var (
			b          model.CostBreakdown
			category   string
			bareModule string
			notes      sql.NullString
			trail      sql.NullString
		)
		if err := rows.Scan(&b.DeviceName, &category, &b.Subtype, &b.SizeValue, &b.SizeUnit,
			&b.PurchasedBase, &b.MaterialFactor, &b.PressureFactor, &b.IndexAdjusted,
			&b.BareModuleFactor, &bareModule, &b.TurbineFlag, &notes, &trail); err != nil {
			return nil, fmt.Errorf("failed to scan cost result: %w", err)
		}
		b.Category = model.EquipmentCategory(category)

		b.BareModule, err = decimal.NewFromString(bareModule)
		if err != nil {
			return nil, fmt.Errorf("corrupt bare module cost %q: %v: %w", bareModule, err, common.ErrDatabaseCorrupted)
		}
		if notes.Valid && notes.String != "" {
			if err := json.Unmarshal([]byte(notes.String), &b.Notes); err != nil {
				return nil, fmt.Errorf("corrupt notes for %s: %v: %w", b.DeviceName, err, common.ErrDatabaseCorrupted)
			}
		}
		if trail.Valid && trail.String != "" {
			if err := json.Unmarshal([]byte(trail.String), &b.Trail); err != nil {
				return nil, fmt.Errorf("corrupt trail for %s: %v: %w", b.DeviceName, err, common.ErrDatabaseCorrupted)
			}
		}
		breakdowns = append(breakdowns, b)
	}
	return breakdowns, rows.Err()
}

func (s *SQLiteStorage) loadSkips(ctx context.Context, runID int64) ([]model.SkippedDevice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT block, category, reason FROM skipped_devices WHERE run_id = ? ORDER BY block`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skips for run %d: %w", runID, err)
	}
	defer func() { _ = rows.Close() }()

	var skips []model.SkippedDevice
	for rows.Next() {
		var (
			skip     model.SkippedDevice
			category string
		)
		if err := rows.Scan(&skip.Name, &category, &skip.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan skip: %w", err)
		}
		skip.Category = model.EquipmentCategory(category)
		skips = append(skips, skip)
	}
	return skips, rows.Err()
}
