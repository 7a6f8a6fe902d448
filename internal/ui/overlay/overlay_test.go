package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_Center(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	result := Place(Config{Width: 5, Height: 3, Position: Center}, "X", bg)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "AAXAA", lines[1])
	assert.Equal(t, "AAAAA", lines[0])
}

func TestPlace_Top(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	result := Place(Config{Width: 5, Height: 3, Position: Top, PadY: 1}, "XX", bg)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AAAAA", lines[0])
	assert.Equal(t, "AXXAA", lines[1])
}

func TestPlace_Bottom(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA\nAAAAA"
	result := Place(Config{Width: 5, Height: 4, Position: Bottom, PadY: 1}, "XXX", bg)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AAAAA", lines[1])
	assert.Equal(t, "AXXXA", lines[2])
	assert.Equal(t, "AAAAA", lines[3])
}

func TestPlace_Anchor(t *testing.T) {
	bg := "AAAAAA\nAAAAAA\nAAAAAA\nAAAAAA"
	result := Place(Config{Width: 6, Height: 4, Position: Anchor, X: 1, Y: 1}, "XX\nYY", bg)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AAAAAA", lines[0])
	assert.Equal(t, "AXXAAA", lines[1])
	assert.Equal(t, "AYYAAA", lines[2])
	assert.Equal(t, "AAAAAA", lines[3])
}

func TestPlace_AnchorClampedIntoViewport(t *testing.T) {
	bg := "AAAA\nAAAA\nAAAA"
	result := Place(Config{Width: 4, Height: 3, Position: Anchor, X: 3, Y: 2}, "XX\nYY", bg)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AAAA", lines[0])
	assert.Equal(t, "AAXX", lines[1])
	assert.Equal(t, "AAYY", lines[2])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	result := Place(Config{Width: 4, Height: 3, Position: Anchor, X: 2, Y: 2}, "X", "AB")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "AB", lines[0])
	assert.Equal(t, "  X ", lines[2])
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("AAAA")
	result := Place(Config{Width: 4, Height: 1, Position: Anchor, X: 1}, "X", styled)

	assert.Equal(t, 4, lipgloss.Width(result))
	assert.Contains(t, result, "X")
}
