package searchbar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/marquee/internal/tui/common"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSearchbar_EnterSubmitsRawText(t *testing.T) {
	m := typeText(New(), "batman")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, common.PerformSearchMsg{Query: "batman"}, cmd())
}

func TestSearchbar_EmptySubmit(t *testing.T) {
	_, cmd := New().Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, common.PerformSearchMsg{Query: ""}, cmd())
}

func TestSearchbar_RecentCycling(t *testing.T) {
	m := typeText(New(), "dra")
	m.SetRecent([]string{"dune", "alien"})

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m, _ = m.Update(up)
	assert.Equal(t, "dune", m.GetValue())

	m, _ = m.Update(up)
	assert.Equal(t, "alien", m.GetValue())

	// past the oldest entry nothing changes
	m, _ = m.Update(up)
	assert.Equal(t, "alien", m.GetValue())

	m, _ = m.Update(down)
	m, _ = m.Update(down)
	assert.Equal(t, "dra", m.GetValue(), "draft restored")
}

func TestSearchbar_FocusAndView(t *testing.T) {
	m := New()
	m.SetRecent([]string{"dune"})
	assert.True(t, m.Focused())
	assert.Contains(t, m.View(), "recent: dune")

	m.Blur()
	assert.False(t, m.Focused())
	assert.NotContains(t, m.View(), "recent:")
}
