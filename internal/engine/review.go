package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/cost"
	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/service"
)

// ReviewSession owns the classification results between the classifier and
// the cost engine and runs them through the override state machine:
//
//	Proposed --(accept / no change)--> Committed
//	Proposed --(category change)--> SubtypeSelectionRequired --(subtype)--> Committed
//
// A material change is recorded in whatever state the result is in. Once
// committed a result is immutable; the session hands copies downstream.
type ReviewSession struct {
	byName  map[string]*model.ClassificationResult
	results []*model.ClassificationResult
}

// NewReviewSession starts a session over freshly proposed results.
func NewReviewSession(results []model.ClassificationResult) *ReviewSession {
	s := &ReviewSession{
		byName:  make(map[string]*model.ClassificationResult, len(results)),
		results: make([]*model.ClassificationResult, 0, len(results)),
	}
	for i := range results {
		r := results[i]
		s.results = append(s.results, &r)
		s.byName[r.BlockName] = &r
	}
	return s
}

// Apply runs one reviewer decision against one result. It is the only code
// path that mutates a result. Edits are applied before Accept is honored:
// a decision carrying both a subtype and Accept commits the edited result,
// and a category change leaves the result awaiting a subtype no matter
// what else the request carries.
func Apply(result *model.ClassificationResult, req service.OverrideRequest) error {
	if result.Status == model.StatusCommitted {
		return fmt.Errorf("%s: %w", result.BlockName, common.ErrAlreadyCommitted)
	}

	if req.Material != "" && req.Material != result.Material {
		result.Material = req.Material
		result.Overridden = true
	}

	if req.Category != "" && req.Category != result.Category {
		if !req.Category.Valid() {
			return fmt.Errorf("unknown category %q: %w", req.Category, common.ErrInvalidConfig)
		}
		result.Category = req.Category
		result.Subtype = ""
		result.Overridden = true
		result.Status = model.StatusSubtypeRequired

		if req.Subtype != "" {
			return ChooseSubtype(result, req.Subtype)
		}
		// Accept never commits past a pending subtype selection.
		return nil
	}

	if req.Subtype != "" && req.Subtype != result.Subtype {
		result.Subtype = req.Subtype
		result.Overridden = true
	}

	if result.Status == model.StatusSubtypeRequired && result.Subtype == "" {
		return nil
	}

	result.Status = model.StatusCommitted
	return nil
}

// ChooseSubtype completes a category change. Only legal from the
// SubtypeSelectionRequired state.
func ChooseSubtype(result *model.ClassificationResult, subtype string) error {
	if result.Status != model.StatusSubtypeRequired {
		return fmt.Errorf("%s is not awaiting a subtype: %w", result.BlockName, common.ErrSubtypeRequired)
	}
	result.Subtype = subtype
	result.Status = model.StatusCommitted
	return nil
}

// OverrideDevice applies a decision to a device by name. An unknown name is
// the recoverable "device not found" case: the reviewer is told, nothing
// changes, and the session carries on.
func (s *ReviewSession) OverrideDevice(_ context.Context, name string, req service.OverrideRequest) error {
	result, ok := s.byName[name]
	if !ok {
		return common.NewUserError(
			fmt.Sprintf("device %q is not in the block list", name),
			fmt.Errorf("%s: %w", name, common.ErrDeviceNotFound),
		)
	}
	return Apply(result, req)
}

// ReviewAll drives the interactive loop: one round-trip per device, in
// block-name order so the operator sees a stable sequence.
func (s *ReviewSession) ReviewAll(ctx context.Context, prompter service.Prompter) error {
	ordered := make([]*model.ClassificationResult, len(s.results))
	copy(ordered, s.results)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].BlockName < ordered[j].BlockName })

	for _, result := range ordered {
		if err := ctx.Err(); err != nil {
			return err
		}
		if result.Status == model.StatusCommitted {
			continue
		}

		req, err := prompter.ReviewClassification(ctx, *result)
		if err != nil {
			return fmt.Errorf("review of %s failed: %w", result.BlockName, err)
		}
		if err := Apply(result, req); err != nil {
			return err
		}

		if result.Status == model.StatusSubtypeRequired {
			choices := cost.Subtypes(result.Category)
			subtype, err := prompter.SelectSubtype(ctx, *result, choices)
			if err != nil {
				return fmt.Errorf("subtype selection for %s failed: %w", result.BlockName, err)
			}
			if err := ChooseSubtype(result, subtype); err != nil {
				return err
			}
		}
	}
	return nil
}

// CommitAll commits every remaining proposal untouched; the unattended
// batch path.
func (s *ReviewSession) CommitAll() {
	for _, result := range s.results {
		if result.Status != model.StatusCommitted {
			result.Status = model.StatusCommitted
		}
	}
}

// Results returns value copies of every result, in the original block
// order.
func (s *ReviewSession) Results() []model.ClassificationResult {
	out := make([]model.ClassificationResult, len(s.results))
	for i, r := range s.results {
		out[i] = *r
	}
	return out
}
