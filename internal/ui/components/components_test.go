package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestMenu_SkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { fired = "one"; return nil }},
		{Label: "off2", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { fired = "two"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected, "stays on last")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "two", fired)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)
}

func TestMenu_ViewShowsHintForSelected(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Go", Hint: "beginner"}, {Label: "SQL", Hint: "advanced"}})
	v := m.View()
	assert.Contains(t, v, "beginner")
	assert.NotContains(t, v, "advanced")
}

func TestScoreBar_Width(t *testing.T) {
	for _, score := range []int{0, 42, 100, 150} {
		bar := ScoreBar("Avg", score, 40)
		assert.Equal(t, 40, lipgloss.Width(bar), "score %d", score)
	}
	assert.True(t, strings.HasSuffix(ScoreBar("", 75, 30), " 75%"))
}

func TestTextInput_Take(t *testing.T) {
	in := NewTextInput("Ask", 100)
	in.SetValue("  hello  ")
	assert.Equal(t, "hello", in.Take())
	assert.Empty(t, in.Value())
}
