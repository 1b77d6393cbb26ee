package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/model"
)

func TestClassifyByRecordType(t *testing.T) {
	c := New()
	ctx := context.Background()

	tests := []struct {
		name         string
		block        model.Block
		wantCategory model.EquipmentCategory
		wantSubtype  string
	}{
		{
			name:         "pump tag",
			block:        model.Block{Name: "P-101", RecordType: "Pump"},
			wantCategory: model.CategoryPump,
			wantSubtype:  "centrifugal",
		},
		{
			name:         "rigorous column",
			block:        model.Block{Name: "anything", RecordType: "RadFrac"},
			wantCategory: model.CategoryDistillationColumn,
			wantSubtype:  "tray",
		},
		{
			name:         "multi-stage compressor",
			block:        model.Block{Name: "K-300", RecordType: "MCompr"},
			wantCategory: model.CategoryCompressor,
			wantSubtype:  "centrifugal",
		},
		{
			name:         "valve is ignored",
			block:        model.Block{Name: "V-1", RecordType: "Valve"},
			wantCategory: model.CategoryIgnored,
		},
		{
			name:         "misleading name loses to tag",
			block:        model.Block{Name: "REACTOR-7", RecordType: "Pump"},
			wantCategory: model.CategoryPump,
			wantSubtype:  "centrifugal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(ctx, tt.block)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantSubtype, got.Subtype)
			assert.Equal(t, model.TierTag, got.Tier)
			assert.GreaterOrEqual(t, got.Confidence, 0.95)
			assert.LessOrEqual(t, got.Confidence, 1.0)
			assert.Equal(t, model.StatusProposed, got.Status)
		})
	}
}

func TestClassifyByNamePattern(t *testing.T) {
	c := New()
	ctx := context.Background()

	tests := []struct {
		name         string
		blockName    string
		wantCategory model.EquipmentCategory
	}{
		{name: "exchanger prefix", blockName: "E-101", wantCategory: model.CategoryHeatExchanger},
		{name: "hx prefix", blockName: "HX2", wantCategory: model.CategoryHeatExchanger},
		{name: "column prefix", blockName: "COL-3", wantCategory: model.CategoryDistillationColumn},
		{name: "tower prefix", blockName: "T-201", wantCategory: model.CategoryDistillationColumn},
		{name: "reactor prefix", blockName: "R-1", wantCategory: model.CategoryReactor},
		{name: "pump prefix", blockName: "P-42", wantCategory: model.CategoryPump},
		{name: "compressor letter", blockName: "C-7", wantCategory: model.CategoryCompressor},
		{name: "compressor k", blockName: "K101", wantCategory: model.CategoryCompressor},
		{name: "vacuum prefix", blockName: "VAC-1", wantCategory: model.CategoryVacuumSystem},
		{name: "evaporator beats bare e prefix", blockName: "EVAP-2", wantCategory: model.CategoryEvaporator},
		{name: "flash prefix", blockName: "FL-1", wantCategory: model.CategoryEvaporator},
		{name: "separator prefix", blockName: "SEP-1", wantCategory: model.CategorySeparator},
		{name: "mixer prefix", blockName: "MIX-9", wantCategory: model.CategoryMixer},
		{name: "splitter prefix", blockName: "FS-2", wantCategory: model.CategorySplitter},
		{name: "valve prefix", blockName: "V-12", wantCategory: model.CategoryIgnored},
		{name: "lowercase names match", blockName: "p-101", wantCategory: model.CategoryPump},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(ctx, model.Block{Name: tt.blockName})
			assert.Equal(t, tt.wantCategory, got.Category, "block %q", tt.blockName)
			assert.Equal(t, model.TierPattern, got.Tier)
			assert.GreaterOrEqual(t, got.Confidence, 0.95)
		})
	}
}

func TestClassifyByKeyword(t *testing.T) {
	c := New()
	ctx := context.Background()

	tests := []struct {
		name         string
		blockName    string
		wantCategory model.EquipmentCategory
	}{
		{name: "reactor keyword", blockName: "MAIN-REACTOR", wantCategory: model.CategoryReactor},
		{name: "pump keyword lowercase", blockName: "feedpump", wantCategory: model.CategoryPump},
		{name: "column keyword", blockName: "CRUDE_TOWER", wantCategory: model.CategoryDistillationColumn},
		{name: "compressor keyword", blockName: "GAS-COMPRESSOR-A", wantCategory: model.CategoryCompressor},
		{name: "condenser keyword", blockName: "OVHD-CONDENSER", wantCategory: model.CategoryHeatExchanger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(ctx, model.Block{Name: tt.blockName})
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, model.TierKeyword, got.Tier)
			assert.GreaterOrEqual(t, got.Confidence, 0.85)
		})
	}
}

func TestClassifyUnknownFallback(t *testing.T) {
	c := New()
	got := c.Classify(context.Background(), model.Block{Name: "XYZZY-99"})

	assert.Equal(t, model.CategoryUnknown, got.Category)
	assert.Equal(t, model.TierNone, got.Tier)
	assert.Zero(t, got.Confidence)
	assert.True(t, got.Category.Valid())
}

func TestClassifyConfidenceBounds(t *testing.T) {
	c := New()
	ctx := context.Background()

	// The heat exchanger bonus must never push confidence past 1.0.
	tagged := c.Classify(ctx, model.Block{Name: "E-1", RecordType: "HeatX"})
	assert.Equal(t, 1.0, tagged.Confidence)

	pattern := c.Classify(ctx, model.Block{Name: "E-1"})
	assert.Equal(t, 1.0, pattern.Confidence)
}

func TestClassifyDeterminism(t *testing.T) {
	c := New()
	ctx := context.Background()

	blocks := []model.Block{
		{Name: "E-101", RecordType: "HeatX"},
		{Name: "EVAP-2"},
		{Name: "feedpump"},
		{Name: "XYZZY"},
	}

	first := make([]model.ClassificationResult, len(blocks))
	for i, b := range blocks {
		first[i] = c.Classify(ctx, b)
	}
	for run := 0; run < 10; run++ {
		for i, b := range blocks {
			// Whole-struct equality: Classify touches no clock, so two
			// passes over the same block are identical.
			assert.Equal(t, first[i], c.Classify(ctx, b))
		}
	}
}

func TestClassifyLeavesTimestampUnset(t *testing.T) {
	c := New()

	got := c.Classify(context.Background(), model.Block{Name: "P-101", RecordType: "Pump"})
	assert.True(t, got.ClassifiedAt.IsZero())
}

func TestNewWithRulesRejectsBadInput(t *testing.T) {
	_, err := NewWithRules([]model.ClassificationRule{
		{Category: model.CategoryPump, Patterns: []string{"("}},
	})
	require.Error(t, err)

	_, err = NewWithRules([]model.ClassificationRule{
		{Category: model.CategoryPump, RecordTypes: []string{"Pump"}},
		{Category: model.CategoryCompressor, RecordTypes: []string{"Pump"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestPriorityBreaksTiesWithinTierOnly(t *testing.T) {
	// A low-priority rule with a tag match must beat a high-priority rule
	// that only matches by keyword.
	rules := []model.ClassificationRule{
		{
			Category:    model.CategoryReactor,
			Keywords:    []string{"FEED"},
			Priority:    100,
			RecordTypes: []string{"RStoic"},
		},
		{
			Category:    model.CategoryPump,
			RecordTypes: []string{"Pump"},
			Priority:    1,
		},
	}
	c, err := NewWithRules(rules)
	require.NoError(t, err)

	got := c.Classify(context.Background(), model.Block{Name: "FEED-1", RecordType: "Pump"})
	assert.Equal(t, model.CategoryPump, got.Category)
	assert.Equal(t, model.TierTag, got.Tier)
}
