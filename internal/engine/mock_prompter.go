package engine

import (
	"context"
	"fmt"

	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/service"
)

// MockPrompter is a scripted Prompter for tests and demos. Decisions are
// keyed by block name; anything without a script entry is accepted as
// proposed.
type MockPrompter struct {
	Decisions map[string]service.OverrideRequest
	Subtypes  map[string]string
	Reviewed  []string
	Summaries []string
}

// NewMockPrompter creates an empty scripted prompter that accepts
// everything.
func NewMockPrompter() *MockPrompter {
	return &MockPrompter{
		Decisions: make(map[string]service.OverrideRequest),
		Subtypes:  make(map[string]string),
	}
}

// ReviewClassification replays the scripted decision for the block.
func (m *MockPrompter) ReviewClassification(_ context.Context, result model.ClassificationResult) (service.OverrideRequest, error) {
	m.Reviewed = append(m.Reviewed, result.BlockName)
	if req, ok := m.Decisions[result.BlockName]; ok {
		return req, nil
	}
	return service.OverrideRequest{Accept: true}, nil
}

// SelectSubtype replays the scripted subtype, or falls back to the first
// choice.
func (m *MockPrompter) SelectSubtype(_ context.Context, result model.ClassificationResult, choices []string) (string, error) {
	if sub, ok := m.Subtypes[result.BlockName]; ok {
		return sub, nil
	}
	if len(choices) == 0 {
		return "", fmt.Errorf("no subtype choices for %s", result.BlockName)
	}
	return choices[0], nil
}

// ShowSummary records the rendered summary.
func (m *MockPrompter) ShowSummary(_ context.Context, summary string) error {
	m.Summaries = append(m.Summaries, summary)
	return nil
}
