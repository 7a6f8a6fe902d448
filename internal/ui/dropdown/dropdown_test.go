package dropdown

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func options() []string { return []string{"None", "Circle", "Square"} }

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSetSelected(t *testing.T) {
	m := New("Shape", options())
	require.Equal(t, 0, m.Selected())

	m = m.SetSelected(2)
	require.Equal(t, 2, m.Selected())

	m = m.SetSelected(10)
	require.Equal(t, 2, m.Selected(), "out of range ignored")
	m = m.SetSelected(-1)
	require.Equal(t, 2, m.Selected())
}

func TestUpdate_MovesWithinBounds(t *testing.T) {
	m := New("Shape", options())

	m, _ = m.Update(key("up"))
	require.Equal(t, 0, m.Selected())

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	require.Equal(t, 2, m.Selected())

	m, _ = m.Update(key("k"))
	require.Equal(t, 1, m.Selected())

	m, _ = m.Update(key("G"))
	require.Equal(t, 2, m.Selected())
	m, _ = m.Update(key("g"))
	require.Equal(t, 0, m.Selected())
}

func TestView_MarksSelection(t *testing.T) {
	view := New("Shape", options()).SetSelected(1).View()

	require.Contains(t, view, "Shape")
	lines := strings.Split(view, "\n")
	var marked []string
	for _, l := range lines {
		if strings.Contains(l, ">") {
			marked = append(marked, l)
		}
	}
	require.Len(t, marked, 1)
	require.Contains(t, marked[0], "Circle")
}

func TestView_WidthFitsLongestOption(t *testing.T) {
	view := New("T", []string{"a", "Gradient"}).View()
	// border (2) + longest option + indicator column
	require.Equal(t, len("Gradient")+2+2, lipgloss.Width(view))

	fixed := New("T", []string{"a"}).SetWidth(20).View()
	require.Equal(t, 22, lipgloss.Width(fixed))
}
