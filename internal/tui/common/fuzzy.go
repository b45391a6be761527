package common

import (
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/justchokingaround/marquee/internal/tui/styles"
)

// FuzzySearch is an inline filter for list views
type FuzzySearch struct {
	input  textinput.Model
	active bool
	locked bool // filter applied but not editable
}

// NewFuzzySearch creates an inactive filter
func NewFuzzySearch() *FuzzySearch {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = ""
	ti.CharLimit = 100
	ti.TextStyle = styles.MetadataStyle
	ti.PlaceholderStyle = styles.MutedStyle

	return &FuzzySearch{input: ti}
}

// Activate starts a fresh filter and focuses its input
func (f *FuzzySearch) Activate() tea.Cmd {
	f.active = true
	f.locked = false
	f.input.SetValue("")
	f.input.Focus()
	return textinput.Blink
}

// Deactivate clears the filter
func (f *FuzzySearch) Deactivate() {
	f.active = false
	f.locked = false
	f.input.Blur()
	f.input.SetValue("")
}

// Lock keeps the filter applied but stops editing
func (f *FuzzySearch) Lock() {
	if f.active {
		f.locked = true
		f.input.Blur()
	}
}

// Unlock resumes editing the current query
func (f *FuzzySearch) Unlock() tea.Cmd {
	if !f.active {
		return nil
	}
	f.locked = false
	f.input.Focus()
	return textinput.Blink
}

func (f *FuzzySearch) IsActive() bool { return f.active }

// IsEditing reports whether keystrokes go to the filter input
func (f *FuzzySearch) IsEditing() bool { return f.active && !f.locked }

func (f *FuzzySearch) Query() string { return f.input.Value() }

// Update feeds a message to the input while editing
func (f *FuzzySearch) Update(msg tea.Msg) tea.Cmd {
	if !f.IsEditing() {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// View renders the filter line, empty when inactive
func (f *FuzzySearch) View() string {
	if !f.active {
		return ""
	}

	label := styles.MetadataStyle.Render("Filter: ")
	bar := styles.SubtitleStyle.Render("┃")

	if f.locked {
		hint := styles.MutedStyle.Render("  (/ to edit • esc to clear)")
		return label + bar + " " + styles.SubtitleStyle.Render(f.Query()) + hint
	}

	hint := styles.MutedStyle.Render("  (enter/esc to apply)")
	return label + bar + " " + f.input.View() + hint
}

// SetWidth sizes the filter input
func (f *FuzzySearch) SetWidth(width int) {
	f.input.Width = max(width-40, 10)
}

// Filter returns the indices of targets matching the query in their
// original order. Without a query every index is returned.
func (f *FuzzySearch) Filter(targets []string) []int {
	if !f.active || f.Query() == "" {
		indices := make([]int, len(targets))
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	matches := fuzzy.Find(f.Query(), targets)
	indices := make([]int, len(matches))
	for i, m := range matches {
		indices[i] = m.Index
	}
	slices.Sort(indices)
	return indices
}
