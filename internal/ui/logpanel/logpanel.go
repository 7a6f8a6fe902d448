// Package logpanel shows recent debug log entries over the editor.
package logpanel

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/ui/overlay"
	"github.com/zjrosen/polyslot/internal/ui/styles"
)

const (
	maxViewportHeight = 20
	minViewportHeight = 3
	maxBoxWidth       = 140
	minBoxWidth       = 30
	// chrome is the rows around the viewport: border, title, two dividers
	// and the hint line.
	chrome = 6
)

var levelKeys = []struct {
	key   string
	label string
	level log.Level
}{
	{"d", "Debug", log.LevelDebug},
	{"i", "Info", log.LevelInfo},
	{"w", "Warn", log.LevelWarn},
	{"e", "Error", log.LevelError},
}

// Model is the log panel state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden panel showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Visible reports whether the panel is showing.
func (m Model) Visible() bool { return m.visible }

// MinLevel is the lowest level shown.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Toggle shows or hides the panel.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
	return m
}

// SetSize updates the screen dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.refresh()
	return m
}

// Update handles keys while visible and new entries at any time. The
// second result reports whether the panel closed.
func (m Model) Update(msg tea.Msg) (Model, bool) {
	switch msg := msg.(type) {
	case log.Event:
		if m.visible && msg.Payload.Level >= m.minLevel {
			m.refresh()
			m.viewport.GotoBottom()
		}
		return m, false

	case tea.KeyMsg:
		if !m.visible {
			return m, false
		}
		k := msg.String()
		for _, lk := range levelKeys {
			if k == lk.key {
				m.minLevel = lk.level
				m.refresh()
				return m, false
			}
		}
		switch k {
		case "c":
			log.ClearHistory()
			m.refresh()
		case "j", "down":
			m.viewport.ScrollDown(1)
		case "k", "up":
			m.viewport.ScrollUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		case "esc", "ctrl+x":
			m.visible = false
			return m, true
		}
	}
	return m, false
}

// View renders the panel box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1).
		Render("Logs")
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", w))

	body := strings.Join([]string{title, divider, m.viewport.View(), divider, m.hint()}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(w).
		Render(body)
}

// Overlay renders the panel centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := max(min(maxViewportHeight, m.height-chrome), minViewportHeight)
	w := m.boxWidth() - 2
	m.viewport = viewport.New(w, h)
	m.viewport.SetContent(m.content(w))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	var lines []string
	for _, e := range log.Recent(1000) {
		if e.Level < m.minLevel {
			continue
		}
		lines = append(lines, colorize(e, width))
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

func colorize(e log.Entry, width int) string {
	line := e.Line
	if ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width-1, "…")
	}
	var c lipgloss.TerminalColor
	switch e.Level {
	case log.LevelError:
		c = styles.StatusErrorColor
	case log.LevelWarn:
		c = styles.StatusWarningColor
	case log.LevelInfo:
		c = styles.LinkColor
	default:
		c = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(c).Render(line)
}

func (m Model) hint() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	hints := []string{muted.Render("[c] Clear")}
	for _, lk := range levelKeys {
		st := muted
		if lk.level == m.minLevel {
			st = active
		}
		hints = append(hints, st.Render("["+lk.key+"] "+lk.label))
	}
	return strings.Join(hints, "  ")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, maxBoxWidth), minBoxWidth)
}
