// Package engine orchestrates the estimation pipeline: classify every
// block, run the review phase, normalize properties, cost each device, and
// aggregate the report. The pipeline is single-threaded and synchronous;
// every per-device problem is recorded on that device's result and never
// aborts the run. Only setup failures are fatal.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/phygon975/API-project/internal/classifier"
	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/cost"
	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/report"
	"github.com/phygon975/API-project/internal/service"
	"github.com/phygon975/API-project/internal/sim"
)

// Config holds the pipeline options that are not part of the cost engine's
// own configuration.
type Config struct {
	// OnDevice is called before each device is costed; the CLI hangs its
	// progress bar off it. Nil is fine.
	OnDevice func(name string, index, total int)

	// BulkReview replaces the per-device prompter loop with a single
	// whole-session review (the full-screen front-end). Only consulted
	// when Interactive is set.
	BulkReview func(ctx context.Context, results []model.ClassificationResult) (map[string]service.OverrideRequest, error)

	// Overrides are reviewer decisions supplied up front (command-line
	// flags, batch scripts). They are applied before any interactive
	// review; an unknown device name fails the run.
	Overrides map[string]service.OverrideRequest

	// SourceLabel names the simulation source in the persisted run.
	SourceLabel string

	// Interactive enables the review phase. When false every proposal is
	// committed untouched for unattended batch runs.
	Interactive bool
}

// Pipeline wires the stages together.
type Pipeline struct {
	source     sim.Source
	storage    service.Storage
	classifier *classifier.Classifier
	costEngine *cost.Engine
	prompter   service.Prompter
	cfg        Config
}

// New creates a pipeline. The prompter may be nil when Interactive is off.
func New(source sim.Source, storage service.Storage, cls *classifier.Classifier, costEngine *cost.Engine, prompter service.Prompter, cfg Config) (*Pipeline, error) {
	if source == nil {
		return nil, fmt.Errorf("pipeline needs a simulation source: %w", common.ErrSourceUnavailable)
	}
	if storage == nil {
		return nil, fmt.Errorf("pipeline needs storage: %w", common.ErrInvalidConfig)
	}
	if cfg.Interactive && prompter == nil {
		return nil, fmt.Errorf("interactive review needs a prompter: %w", common.ErrInvalidConfig)
	}
	return &Pipeline{
		source:     source,
		storage:    storage,
		classifier: cls,
		costEngine: costEngine,
		prompter:   prompter,
		cfg:        cfg,
	}, nil
}

// Run executes the whole pipeline and returns the aggregated report.
func (p *Pipeline) Run(ctx context.Context) (report.Report, error) {
	unitSet, err := p.source.ActiveUnitSet(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to read active unit set: %w", err)
	}

	blocks, err := p.source.ListBlocks(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to list blocks: %w", err)
	}
	// The source does not promise an order; sort so identical models give
	// identical runs.
	sorted := make([]string, len(blocks))
	copy(sorted, blocks)
	sort.Strings(sorted)

	slog.Info("Starting estimation run",
		"blocks", len(sorted),
		"unit_set", unitSet,
		"cost_index", p.costEngine.TargetIndex())

	runID, err := p.storage.CreateRun(ctx, p.cfg.SourceLabel, unitSet, p.costEngine.TargetIndex())
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to create run: %w", err)
	}

	session, err := p.Classify(ctx, sorted)
	if err != nil {
		return report.Report{}, err
	}

	if err := p.applyOverrides(ctx, session, p.cfg.Overrides); err != nil {
		return report.Report{}, err
	}

	if p.cfg.Interactive {
		if p.cfg.BulkReview != nil {
			decisions, err := p.cfg.BulkReview(ctx, session.Results())
			if err != nil {
				return report.Report{}, fmt.Errorf("review phase failed: %w", err)
			}
			if err := p.applyOverrides(ctx, session, decisions); err != nil {
				return report.Report{}, err
			}
		} else if err := session.ReviewAll(ctx, p.prompter); err != nil {
			return report.Report{}, fmt.Errorf("review phase failed: %w", err)
		}
	}

	// A category change whose subtype was never chosen must not slip into
	// the cost phase.
	for _, r := range session.Results() {
		if r.Status == model.StatusSubtypeRequired {
			return report.Report{}, fmt.Errorf("%s changed category but has no subtype: %w",
				r.BlockName, common.ErrSubtypeRequired)
		}
	}
	session.CommitAll()

	results := session.Results()
	if err := p.storage.SaveClassifications(ctx, runID, results); err != nil {
		return report.Report{}, fmt.Errorf("failed to save classifications: %w", err)
	}

	outcomes, err := p.costAll(ctx, runID, unitSet, results)
	if err != nil {
		return report.Report{}, err
	}

	r := report.Aggregate(results, outcomes, p.costEngine.TargetIndex())
	if err := p.storage.CompleteRun(ctx, runID, r.Total); err != nil {
		return report.Report{}, fmt.Errorf("failed to complete run: %w", err)
	}

	slog.Info("Run complete",
		"run_id", runID,
		"costed", countCosted(outcomes),
		"skipped", len(r.Skipped),
		"total", r.Total.StringFixed(2))

	return r, nil
}

// applyOverrides replays a set of named decisions against the session in
// block-name order.
func (p *Pipeline) applyOverrides(ctx context.Context, session *ReviewSession, overrides map[string]service.OverrideRequest) error {
	if len(overrides) == 0 {
		return nil
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := session.OverrideDevice(ctx, name, overrides[name]); err != nil {
			return fmt.Errorf("override failed: %w", err)
		}
	}
	return nil
}

// Classify proposes a classification for every block and opens a review
// session over them.
func (p *Pipeline) Classify(ctx context.Context, blocks []string) (*ReviewSession, error) {
	results := make([]model.ClassificationResult, 0, len(blocks))
	for _, name := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tag, _, err := p.source.RecordType(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read record type of %s: %w", name, err)
		}

		result := p.classifier.Classify(ctx, model.Block{Name: name, RecordType: tag})
		slog.Debug("Classified block",
			"block", name,
			"category", result.Category,
			"tier", result.Tier,
			"confidence", result.Confidence)
		results = append(results, result)
	}
	return NewReviewSession(results), nil
}

// costAll runs the cost engine over every committed, costable device.
func (p *Pipeline) costAll(ctx context.Context, runID int64, unitSet string, results []model.ClassificationResult) ([]report.Outcome, error) {
	x := &extractor{source: p.source, unitSet: unitSet}
	outcomes := make([]report.Outcome, 0, len(results))

	costable := 0
	for _, r := range results {
		if r.Category.Costable() {
			costable++
		}
	}

	idx := 0
	for _, result := range results {
		if !result.Category.Costable() {
			continue
		}
		idx++
		if p.cfg.OnDevice != nil {
			p.cfg.OnDevice(result.BlockName, idx, costable)
		}

		outcome, err := p.costOne(ctx, x, result)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)

		if outcome.Skip != nil {
			if err := p.storage.SaveSkip(ctx, runID, *outcome.Skip); err != nil {
				return nil, fmt.Errorf("failed to save skip for %s: %w", result.BlockName, err)
			}
			continue
		}
		if err := p.storage.SaveCostResult(ctx, runID, outcome.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to save cost result for %s: %w", result.BlockName, err)
		}
	}
	return outcomes, nil
}

// costOne turns one device into an outcome, converting recoverable errors
// into skips.
func (p *Pipeline) costOne(ctx context.Context, x *extractor, result model.ClassificationResult) (report.Outcome, error) {
	outcome := report.Outcome{Name: result.BlockName, Category: result.Category}

	props, err := x.Extract(ctx, result.BlockName, result.Category)
	if err != nil {
		// Extraction problems are per-device outcomes; only cancellation
		// stops the run here.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return outcome, err
		}
		outcome.Skip = &model.SkippedDevice{Name: result.BlockName, Category: result.Category, Reason: err.Error()}
		return outcome, nil
	}

	dev := model.Device{Name: result.BlockName, Classification: result, Properties: props}
	breakdown, err := p.costEngine.Compute(ctx, dev)
	if err != nil {
		if common.IsRecoverable(err) {
			slog.Debug("Device skipped", "device", result.BlockName, "reason", err)
			outcome.Skip = &model.SkippedDevice{Name: result.BlockName, Category: result.Category, Reason: err.Error()}
			return outcome, nil
		}
		return outcome, fmt.Errorf("costing %s failed: %w", result.BlockName, err)
	}

	outcome.Breakdown = &breakdown
	return outcome, nil
}

func countCosted(outcomes []report.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Breakdown != nil {
			n++
		}
	}
	return n
}
