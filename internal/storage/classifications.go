package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/phygon975/API-project/internal/model"
)

// SaveClassifications writes all of a run's classification results in a
// single transaction. Results for delete-then-insert idempotence: saving
// twice for the same run replaces the earlier rows. Results without a
// timestamp are stamped here; the classifier itself never touches the
// clock.
func (s *SQLiteStorage) SaveClassifications(ctx context.Context, runID int64, results []model.ClassificationResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRunID(runID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM classifications WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("failed to clear classifications for run %d: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO classifications
		 (run_id, block, category, subtype, material, tier, status, confidence, overridden, classified_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare classification insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, r := range results {
		classifiedAt := r.ClassifiedAt
		if classifiedAt.IsZero() {
			classifiedAt = now
		}
		if _, err := stmt.ExecContext(ctx,
			runID, r.BlockName, string(r.Category), r.Subtype, r.Material,
			string(r.Tier), string(r.Status), r.Confidence, r.Overridden, classifiedAt,
		); err != nil {
			return fmt.Errorf("failed to save classification for %s: %w", r.BlockName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit classifications: %w", err)
	}
	return nil
}

// GetClassifications loads a run's classification results ordered by block
// name.
func (s *SQLiteStorage) GetClassifications(ctx context.Context, runID int64) ([]model.ClassificationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateRunID(runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT block, category, subtype, material, tier, status, confidence, overridden, classified_at
		 FROM classifications WHERE run_id = ? ORDER BY block`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load classifications for run %d: %w", runID, err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.ClassificationResult
	for rows.Next() {
		var (
			r        model.ClassificationResult
			category string
			tier     string
			status   string
		)
		if err := rows.Scan(&r.BlockName, &category, &r.Subtype, &r.Material,
			&tier, &status, &r.Confidence, &r.Overridden, &r.ClassifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		r.Category = model.EquipmentCategory(category)
		r.Tier = model.MatchTier(tier)
		r.Status = model.ReviewStatus(status)
		results = append(results, r)
	}
	return results, rows.Err()
}
