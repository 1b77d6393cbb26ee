// Package service defines the interfaces the pipeline stages are wired
// through, so storage, review front-ends and simulation sources stay
// swappable.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phygon975/API-project/internal/model"
)

// Run is one persisted estimation run.
type Run struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Snapshot    string
	UnitSet     string
	Total       decimal.Decimal
	ID          int64
	CostIndex   float64
	Completed   bool
}

// Storage is the persistence contract for runs and their per-device
// outcomes.
type Storage interface {
	// Run lifecycle.
	CreateRun(ctx context.Context, snapshot, unitSet string, costIndex float64) (int64, error)
	CompleteRun(ctx context.Context, runID int64, total decimal.Decimal) error
	GetRun(ctx context.Context, runID int64) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Per-device outcomes.
	SaveClassifications(ctx context.Context, runID int64, results []model.ClassificationResult) error
	GetClassifications(ctx context.Context, runID int64) ([]model.ClassificationResult, error)
	SaveCostResult(ctx context.Context, runID int64, breakdown *model.CostBreakdown) error
	SaveSkip(ctx context.Context, runID int64, skip model.SkippedDevice) error
	GetCostResults(ctx context.Context, runID int64) ([]model.CostBreakdown, []model.SkippedDevice, error)

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// OverrideRequest is one reviewer decision for one device. Zero-value
// fields mean "leave unchanged"; Accept commits the proposal as-is.
type OverrideRequest struct {
	Category model.EquipmentCategory
	Subtype  string
	Material string
	Accept   bool
}

// Prompter drives the interactive review phase. Implementations block on
// user input; the engine calls them sequentially, one device at a time.
type Prompter interface {
	// ReviewClassification shows one proposal and collects the reviewer's
	// decision. Returning Accept commits the proposal unchanged.
	ReviewClassification(ctx context.Context, result model.ClassificationResult) (OverrideRequest, error)

	// SelectSubtype is called after a category change invalidated the old
	// subtype; choices come from the cost table for the new category.
	SelectSubtype(ctx context.Context, result model.ClassificationResult, choices []string) (string, error)

	// ShowSummary presents the final per-category totals.
	ShowSummary(ctx context.Context, summary string) error
}
