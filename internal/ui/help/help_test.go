package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/polyslot/internal/keys"
)

func TestSections_CoverEveryBinding(t *testing.T) {
	km := keys.DefaultKeyMap()
	n := 0
	for _, s := range Sections(km) {
		n += len(s.Bindings)
	}
	require.Equal(t, len(km.FullHelp()[0])+len(km.FullHelp()[1])+len(km.FullHelp()[2]), n)
}

func TestView_ListsBindings(t *testing.T) {
	m := New(keys.DefaultKeyMap()).SetSize(100, 30)
	view := m.View()

	require.Contains(t, view, "Keybindings")
	require.Contains(t, view, "Navigation")
	require.Contains(t, view, "ctrl+s")
	require.Contains(t, view, "Press f1 or esc to close")
	require.Len(t, strings.Split(view, "\n"), 30)
}

func TestView_SkipsDisabledBindings(t *testing.T) {
	km := keys.DefaultKeyMap()
	km.Reload.SetEnabled(false)

	view := New(km).SetSize(100, 30).View()
	require.NotContains(t, view, km.Reload.Help().Desc)
}

func TestOverlay_KeepsBackgroundSize(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 100)+"\n", 30), "\n")
	out := New(keys.DefaultKeyMap()).SetSize(100, 30).Overlay(bg)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 30)
	require.Equal(t, strings.Repeat(".", 100), lines[0])
	for _, l := range lines {
		require.Equal(t, 100, lipgloss.Width(l))
	}
}
