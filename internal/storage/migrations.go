package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. A database that cannot reach it is a fatal setup error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Runs and classifications",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS runs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					snapshot TEXT NOT NULL,
					unit_set TEXT NOT NULL,
					cost_index REAL NOT NULL,
					total TEXT,
					started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					completed_at DATETIME
				)`,

				`CREATE TABLE IF NOT EXISTS classifications (
					run_id INTEGER NOT NULL,
					block TEXT NOT NULL,
					category TEXT NOT NULL,
					subtype TEXT,
					material TEXT,
					tier TEXT NOT NULL,
					status TEXT NOT NULL,
					confidence REAL DEFAULT 0,
					overridden INTEGER DEFAULT 0,
					classified_at DATETIME,
					PRIMARY KEY (run_id, block),
					FOREIGN KEY (run_id) REFERENCES runs(id)
				)`,
				`CREATE INDEX idx_classifications_run ON classifications(run_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Cost results with derivation trails",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS cost_results (
					run_id INTEGER NOT NULL,
					block TEXT NOT NULL,
					category TEXT NOT NULL,
					subtype TEXT,
					size_value REAL,
					size_unit TEXT,
					purchased_base REAL,
					material_factor REAL,
					pressure_factor REAL,
					index_adjusted REAL,
					bm_factor REAL,
					bare_module TEXT NOT NULL,
					turbine_flag INTEGER DEFAULT 0,
					notes TEXT,
					trail TEXT,
					PRIMARY KEY (run_id, block),
					FOREIGN KEY (run_id) REFERENCES runs(id)
				)`,
				`CREATE INDEX idx_cost_results_run ON cost_results(run_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Skipped devices",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS skipped_devices (
					run_id INTEGER NOT NULL,
					block TEXT NOT NULL,
					category TEXT NOT NULL,
					reason TEXT NOT NULL,
					PRIMARY KEY (run_id, block),
					FOREIGN KEY (run_id) REFERENCES runs(id)
				)`,
				`CREATE INDEX idx_skipped_devices_run ON skipped_devices(run_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database to the expected schema version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
