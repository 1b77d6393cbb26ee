package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/service"
)

func proposedResult(name string, category model.EquipmentCategory, subtype string) model.ClassificationResult {
	return model.ClassificationResult{
		BlockName:  name,
		Category:   category,
		Subtype:    subtype,
		Tier:       model.TierPattern,
		Status:     model.StatusProposed,
		Confidence: 0.95,
	}
}

func TestApply_AcceptCommitsUnchanged(t *testing.T) {
	result := proposedResult("P-101", model.CategoryPump, "centrifugal")

	err := Apply(&result, service.OverrideRequest{Accept: true})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCommitted, result.Status)
	assert.Equal(t, model.CategoryPump, result.Category)
	assert.Equal(t, "centrifugal", result.Subtype)
	assert.False(t, result.Overridden)
}

func TestApply_CategoryChangeRequiresSubtype(t *testing.T) {
	result := proposedResult("E-201", model.CategoryHeatExchanger, "fixed_tube")

	err := Apply(&result, service.OverrideRequest{Category: model.CategoryPump})
	require.NoError(t, err)

	assert.Equal(t, model.StatusSubtypeRequired, result.Status)
	assert.Equal(t, model.CategoryPump, result.Category)
	assert.Empty(t, result.Subtype, "old subtype must be invalidated")
	assert.True(t, result.Overridden)

	// Costing is blocked until a subtype is chosen.
	require.NoError(t, ChooseSubtype(&result, "reciprocating"))
	assert.Equal(t, model.StatusCommitted, result.Status)
	assert.Equal(t, "reciprocating", result.Subtype)
}

func TestApply_CategoryChangeWithInlineSubtype(t *testing.T) {
	result := proposedResult("E-201", model.CategoryHeatExchanger, "fixed_tube")

	err := Apply(&result, service.OverrideRequest{Category: model.CategoryCompressor, Subtype: "reciprocating"})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCommitted, result.Status)
	assert.Equal(t, "reciprocating", result.Subtype)
}

func TestApply_AcceptWithSubtypeAppliesSubtype(t *testing.T) {
	// The CLI prompter answers a subtype pick as a single decision with
	// both the subtype and Accept set; the subtype must land.
	result := proposedResult("P-101", model.CategoryPump, "centrifugal")

	err := Apply(&result, service.OverrideRequest{Subtype: "reciprocating", Accept: true})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCommitted, result.Status)
	assert.Equal(t, "reciprocating", result.Subtype)
	assert.True(t, result.Overridden)
}

func TestApply_AcceptWithCategoryStillRequiresSubtype(t *testing.T) {
	result := proposedResult("E-201", model.CategoryHeatExchanger, "fixed_tube")

	err := Apply(&result, service.OverrideRequest{Category: model.CategoryPump, Accept: true})
	require.NoError(t, err)

	assert.Equal(t, model.StatusSubtypeRequired, result.Status)
	assert.Equal(t, model.CategoryPump, result.Category)
	assert.Empty(t, result.Subtype)
}

func TestApply_SubtypeOnlyChangeCommits(t *testing.T) {
	result := proposedResult("P-101", model.CategoryPump, "centrifugal")

	err := Apply(&result, service.OverrideRequest{Subtype: "reciprocating"})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCommitted, result.Status)
	assert.Equal(t, "reciprocating", result.Subtype)
	assert.True(t, result.Overridden)
}

func TestApply_MaterialChangeRecordedBeforeCommit(t *testing.T) {
	result := proposedResult("P-101", model.CategoryPump, "centrifugal")

	err := Apply(&result, service.OverrideRequest{Material: "SS", Accept: true})
	require.NoError(t, err)

	assert.Equal(t, "SS", result.Material)
	assert.Equal(t, model.StatusCommitted, result.Status)
	assert.True(t, result.Overridden)
}

func TestApply_CommittedIsImmutable(t *testing.T) {
	result := proposedResult("P-101", model.CategoryPump, "centrifugal")
	require.NoError(t, Apply(&result, service.OverrideRequest{Accept: true}))

	err := Apply(&result, service.OverrideRequest{Category: model.CategoryCompressor})
	assert.ErrorIs(t, err, common.ErrAlreadyCommitted)
	assert.Equal(t, model.CategoryPump, result.Category)
}

func TestApply_UnknownCategoryRejected(t *testing.T) {
	result := proposedResult("P-101", model.CategoryPump, "centrifugal")

	err := Apply(&result, service.OverrideRequest{Category: "Teleporter"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
	assert.Equal(t, model.StatusProposed, result.Status)
}

func TestChooseSubtype_OnlyFromSubtypeRequired(t *testing.T) {
	result := proposedResult("P-101", model.CategoryPump, "centrifugal")

	err := ChooseSubtype(&result, "reciprocating")
	assert.ErrorIs(t, err, common.ErrSubtypeRequired)
}

func TestOverrideDevice_UnknownNameIsRecoverable(t *testing.T) {
	session := NewReviewSession([]model.ClassificationResult{
		proposedResult("P-101", model.CategoryPump, "centrifugal"),
	})

	// A typo like "30PUMP" must not abort the session or touch any state.
	err := session.OverrideDevice(context.Background(), "30PUMP", service.OverrideRequest{Accept: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDeviceNotFound)
	assert.True(t, common.IsRecoverable(err))

	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Contains(t, userErr.UserMessage, "30PUMP")

	results := session.Results()
	assert.Equal(t, model.StatusProposed, results[0].Status)
}

func TestReviewSession_ReviewAllOneRoundTripPerDevice(t *testing.T) {
	session := NewReviewSession([]model.ClassificationResult{
		proposedResult("P-102", model.CategoryPump, "centrifugal"),
		proposedResult("C-101", model.CategoryCompressor, "centrifugal"),
		proposedResult("E-201", model.CategoryHeatExchanger, "fixed_tube"),
	})

	prompter := NewMockPrompter()
	prompter.Decisions["C-101"] = service.OverrideRequest{Material: "SS", Accept: true}
	prompter.Decisions["E-201"] = service.OverrideRequest{Category: model.CategoryPump}
	prompter.Subtypes["E-201"] = "reciprocating"

	err := session.ReviewAll(context.Background(), prompter)
	require.NoError(t, err)

	// Stable block-name order, exactly one visit each.
	assert.Equal(t, []string{"C-101", "E-201", "P-102"}, prompter.Reviewed)

	byName := make(map[string]model.ClassificationResult)
	for _, r := range session.Results() {
		byName[r.BlockName] = r
	}
	assert.Equal(t, model.StatusCommitted, byName["P-102"].Status)
	assert.Equal(t, "SS", byName["C-101"].Material)
	assert.Equal(t, model.CategoryPump, byName["E-201"].Category)
	assert.Equal(t, "reciprocating", byName["E-201"].Subtype)
	assert.Equal(t, model.StatusCommitted, byName["E-201"].Status)
}

func TestReviewSession_ReviewAllHonorsCancellation(t *testing.T) {
	session := NewReviewSession([]model.ClassificationResult{
		proposedResult("P-101", model.CategoryPump, "centrifugal"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := session.ReviewAll(ctx, NewMockPrompter())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReviewSession_CommitAll(t *testing.T) {
	session := NewReviewSession([]model.ClassificationResult{
		proposedResult("P-101", model.CategoryPump, "centrifugal"),
		proposedResult("C-101", model.CategoryCompressor, "centrifugal"),
	})

	session.CommitAll()

	for _, r := range session.Results() {
		assert.Equal(t, model.StatusCommitted, r.Status)
		assert.False(t, r.Overridden)
	}
}
