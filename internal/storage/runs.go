package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/service"
)

// CreateRun inserts a new run row and returns its id.
func (s *SQLiteStorage) CreateRun(ctx context.Context, snapshot, unitSet string, costIndex float64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if snapshot == "" {
		snapshot = "unnamed"
	}
	if err := validateString(unitSet, "unitSet"); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (snapshot, unit_set, cost_index) VALUES (?, ?, ?)`,
		snapshot, unitSet, costIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

// CompleteRun stamps a run with its total and completion time.
func (s *SQLiteStorage) CompleteRun(ctx context.Context, runID int64, total decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRunID(runID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET total = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`,
		total.String(), runID)
	if err != nil {
		return fmt.Errorf("failed to complete run %d: %w", runID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check run update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %d: %w", runID, common.ErrNotFound)
	}
	return nil
}

// GetRun loads one run by id.
func (s *SQLiteStorage) GetRun(ctx context.Context, runID int64) (*service.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateRunID(runID); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, snapshot, unit_set, cost_index, total, started_at, completed_at
		 FROM runs WHERE id = ?`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", runID, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]service.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, snapshot, unit_set, cost_index, total, started_at, completed_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []service.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*service.Run, error) {
	var (
		run         service.Run
		total       sql.NullString
		startedAt   time.Time
		completedAt sql.NullTime
	)
	if err := row.Scan(&run.ID, &run.Snapshot, &run.UnitSet, &run.CostIndex, &total, &startedAt, &completedAt); err != nil {
		return nil, err
	}

	run.StartedAt = startedAt
	run.Total = decimal.Zero
	if total.Valid {
		parsed, err := decimal.NewFromString(total.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt total %q: %v: %w", total.String, err, common.ErrDatabaseCorrupted)
		}
		run.Total = parsed
	}
	if completedAt.Valid {
		run.CompletedAt = completedAt.Time
		run.Completed = true
	}
	return &run, nil
}
