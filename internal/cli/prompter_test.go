package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phygon975/API-project/internal/model"
)

func proposal(name string, category model.EquipmentCategory, subtype string) model.ClassificationResult {
	return model.ClassificationResult{
		BlockName:  name,
		Category:   category,
		Subtype:    subtype,
		Tier:       model.TierPattern,
		Status:     model.StatusProposed,
		Confidence: 0.95,
	}
}

func TestPrompter_Accept(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("a\n"), &out)

	req, err := p.ReviewClassification(context.Background(), proposal("P-101", model.CategoryPump, "centrifugal"))
	require.NoError(t, err)

	assert.True(t, req.Accept)
	assert.Empty(t, req.Category)
	assert.Contains(t, out.String(), "P-101")
	assert.Contains(t, out.String(), "Pump")
}

func TestPrompter_AcceptIsCaseInsensitive(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("A\n"), &out)

	req, err := p.ReviewClassification(context.Background(), proposal("P-101", model.CategoryPump, "centrifugal"))
	require.NoError(t, err)
	assert.True(t, req.Accept)
}

func TestPrompter_InvalidChoiceReprompts(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("x\na\n"), &out)

	req, err := p.ReviewClassification(context.Background(), proposal("P-101", model.CategoryPump, "centrifugal"))
	require.NoError(t, err)
	assert.True(t, req.Accept)
	assert.Contains(t, out.String(), "Invalid choice")
}

func TestPrompter_ChangeSubtypeByNumber(t *testing.T) {
	var out bytes.Buffer
	// "s" opens the subtype list; "2" picks the second pump subtype.
	p := NewPrompter(strings.NewReader("s\n2\n"), &out)

	req, err := p.ReviewClassification(context.Background(), proposal("P-101", model.CategoryPump, "centrifugal"))
	require.NoError(t, err)

	assert.True(t, req.Accept)
	assert.Equal(t, "reciprocating", req.Subtype)
}

func TestPrompter_ChangeCategoryByName(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("c\nCompressor\n"), &out)

	req, err := p.ReviewClassification(context.Background(), proposal("E-201", model.CategoryHeatExchanger, "fixed_tube"))
	require.NoError(t, err)

	assert.False(t, req.Accept)
	assert.Equal(t, model.CategoryCompressor, req.Category)
}

func TestPrompter_MaterialThenAccept(t *testing.T) {
	var out bytes.Buffer
	// "m" then pick SS, then accept; one request carries both.
	p := NewPrompter(strings.NewReader("m\nSS\na\n"), &out)

	req, err := p.ReviewClassification(context.Background(), proposal("P-101", model.CategoryPump, "centrifugal"))
	require.NoError(t, err)

	assert.True(t, req.Accept)
	assert.Equal(t, "SS", req.Material)
	assert.Contains(t, out.String(), "Material set to SS")
}

func TestPrompter_SelectSubtype(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1\n"), &out)

	subtype, err := p.SelectSubtype(context.Background(),
		proposal("E-201", model.CategoryPump, ""),
		[]string{"centrifugal", "reciprocating"})
	require.NoError(t, err)
	assert.Equal(t, "centrifugal", subtype)
	assert.Contains(t, out.String(), "pick its subtype")
}

func TestPrompter_SelectSubtypeOutOfRangeReprompts(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("9\n2\n"), &out)

	subtype, err := p.SelectSubtype(context.Background(),
		proposal("E-201", model.CategoryPump, ""),
		[]string{"centrifugal", "reciprocating"})
	require.NoError(t, err)
	assert.Equal(t, "reciprocating", subtype)
	assert.Contains(t, out.String(), "Pick 1-2")
}

func TestPrompter_ContextCancellation(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ReviewClassification(ctx, proposal("P-101", model.CategoryPump, "centrifugal"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrompter_ShowSummary(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	err := p.ShowSummary(context.Background(), "Total bare module cost: 1000.00 USD")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Estimation Summary")
	assert.Contains(t, out.String(), "1000.00")
}
