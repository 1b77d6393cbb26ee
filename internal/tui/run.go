package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/service"
)

// ErrReviewAborted is returned when the operator quits the review screen
// without finishing; the run must not proceed on half-reviewed proposals.
var ErrReviewAborted = fmt.Errorf("review aborted")

// Run shows the review screen over the session's proposals and returns the
// operator's overrides keyed by block name. Devices absent from the map
// were accepted as proposed.
func Run(ctx context.Context, results []model.ClassificationResult) (map[string]service.OverrideRequest, error) {
	program := tea.NewProgram(
		NewModel(results),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("review screen failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("review screen returned unexpected model %T", final)
	}
	if m.Aborted() {
		return nil, ErrReviewAborted
	}
	return m.Decisions(), nil
}
