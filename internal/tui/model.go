// Package tui is the full-screen review front-end: every proposed
// classification on one screen, overrides applied with single keystrokes.
// It produces the same override requests the CLI prompter does; the
// pipeline cannot tell the two apart.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phygon975/API-project/internal/cost"
	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/service"
)

type mode int

const (
	modeBrowse mode = iota
	modePickCategory
	modePickSubtype
	modePickMaterial
)

// reviewItem pairs one proposal with the decision the operator has made so
// far. A nil decision means "accept as proposed".
type reviewItem struct {
	result   model.ClassificationResult
	decision *service.OverrideRequest
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4A9EFF"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	overrideStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).MarginTop(1)
)

// Model is the bubbletea model for the review screen.
type Model struct {
	keys    KeyMap
	items   []reviewItem
	choices []string
	cursor  int
	pick    int
	mode    mode
	done    bool
	aborted bool
}

// NewModel builds the review screen over the session's proposals.
func NewModel(results []model.ClassificationResult) Model {
	items := make([]reviewItem, len(results))
	for i, r := range results {
		items[i] = reviewItem{result: r}
	}
	return Model{keys: DefaultKeyMap(), items: items}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode != modeBrowse {
		return m.updatePicker(keyMsg)
	}
	return m.updateBrowse(keyMsg)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Done):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Accept):
		m.decision().Accept = true
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Category):
		m.choices = categoryNames()
		m.pick = 0
		m.mode = modePickCategory

	case key.Matches(msg, m.keys.Subtype):
		if choices := cost.Subtypes(m.current().effectiveCategory()); len(choices) > 0 {
			m.choices = choices
			m.pick = 0
			m.mode = modePickSubtype
		}

	case key.Matches(msg, m.keys.Material):
		item := m.current()
		if choices := cost.MaterialCodes(item.effectiveCategory(), item.effectiveSubtype()); len(choices) > 0 {
			m.choices = choices
			m.pick = 0
			m.mode = modePickMaterial
		}
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse

	case key.Matches(msg, m.keys.Up):
		if m.pick > 0 {
			m.pick--
		}

	case key.Matches(msg, m.keys.Down):
		if m.pick < len(m.choices)-1 {
			m.pick++
		}

	case key.Matches(msg, m.keys.Select):
		choice := m.choices[m.pick]
		d := m.decision()
		switch m.mode {
		case modePickCategory:
			d.Category = model.EquipmentCategory(choice)
			d.Subtype = ""
			// A category change invalidates the old subtype; go straight
			// to the subtype picker when the new category has any.
			if choices := cost.Subtypes(d.Category); len(choices) > 0 {
				m.choices = choices
				m.pick = 0
				m.mode = modePickSubtype
				return m, nil
			}
		case modePickSubtype:
			d.Subtype = choice
		case modePickMaterial:
			d.Material = choice
		case modeBrowse:
		}
		m.mode = modeBrowse
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Classification Review"))
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  %d devices", len(m.items))))
	b.WriteString("\n\n")

	for i, item := range m.items {
		prefix := "  "
		line := m.formatItem(item)
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
			line = cursorStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}

	if m.mode != modeBrowse {
		b.WriteString("\n" + titleStyle.Render(m.pickerTitle()) + "\n")
		for i, choice := range m.choices {
			if i == m.pick {
				b.WriteString(cursorStyle.Render("  > "+choice) + "\n")
			} else {
				b.WriteString("    " + choice + "\n")
			}
		}
		b.WriteString(helpStyle.Render("enter select · esc back"))
	} else {
		b.WriteString(helpStyle.Render("a accept · c category · s subtype · m material · d done · q abort"))
	}

	return b.String()
}

func (m Model) pickerTitle() string {
	switch m.mode {
	case modePickCategory:
		return "Pick category for " + m.current().result.BlockName
	case modePickSubtype:
		return "Pick subtype for " + m.current().result.BlockName
	case modePickMaterial:
		return "Pick material for " + m.current().result.BlockName
	default:
		return ""
	}
}

func (m Model) formatItem(item reviewItem) string {
	category := item.effectiveCategory()
	subtype := item.effectiveSubtype()
	if subtype == "" {
		subtype = "-"
	}

	line := fmt.Sprintf("%-14s %-18s %-16s", item.result.BlockName, category, subtype)
	if d := item.decision; d != nil {
		if d.Material != "" {
			line += " " + d.Material
		}
		if d.Accept || d.Category != "" || d.Subtype != "" || d.Material != "" {
			return line + " " + overrideStyle.Render("*")
		}
	}
	return line + fmt.Sprintf("  %.0f%%", item.result.Confidence*100)
}

func (m *Model) current() *reviewItem {
	return &m.items[m.cursor]
}

// decision lazily creates the override request of the item under the
// cursor.
func (m *Model) decision() *service.OverrideRequest {
	item := &m.items[m.cursor]
	if item.decision == nil {
		item.decision = &service.OverrideRequest{}
	}
	return item.decision
}

// Decisions returns the operator's overrides keyed by block name. Items
// without a decision were accepted as proposed and are absent.
func (m Model) Decisions() map[string]service.OverrideRequest {
	out := make(map[string]service.OverrideRequest)
	for _, item := range m.items {
		if item.decision != nil {
			out[item.result.BlockName] = *item.decision
		}
	}
	return out
}

// Aborted reports whether the operator quit without finishing the review.
func (m Model) Aborted() bool {
	return m.aborted
}

func (item reviewItem) effectiveCategory() model.EquipmentCategory {
	if item.decision != nil && item.decision.Category != "" {
		return item.decision.Category
	}
	return item.result.Category
}

func (item reviewItem) effectiveSubtype() string {
	if item.decision != nil && item.decision.Subtype != "" {
		return item.decision.Subtype
	}
	if item.decision != nil && item.decision.Category != "" {
		return ""
	}
	return item.result.Subtype
}

func categoryNames() []string {
	categories := model.AllCategories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return names
}
