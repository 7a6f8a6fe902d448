// Package overlay composes a foreground block over a rendered background
// without clearing it, for dropdowns and the app's floating panels.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Anchor places the overlay's top-left corner at (X, Y), shifted left
	// or up as needed to keep it inside the viewport.
	Anchor
	// Bottom places the overlay at the bottom center, PadY rows up.
	Bottom
)

// Config controls overlay rendering behavior.
type Config struct {
	Width    int
	Height   int
	Position Position
	// X and Y are the anchor cell for Anchor.
	X, Y int
	// PadY is the distance from the top edge for Top and from the bottom
	// edge for Bottom.
	PadY int
}

// Place renders fg on top of bg. Both may carry ANSI styling, which is
// preserved on either side of the overlay.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	startX, startY := position(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bgLines[y] = splice(bgLines[y], fgLine, startX)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of line starting at x with fg.
func splice(line, fg string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	end := x + ansi.StringWidth(fg)
	if end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + fg + right
}

func position(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	case Anchor:
		x = min(cfg.X, cfg.Width-fgWidth)
		y = min(cfg.Y, cfg.Height-fgHeight)
	default:
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
