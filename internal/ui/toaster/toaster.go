// Package toaster shows short status notices (saved, reloaded, errors)
// over the bottom of the editor.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/polyslot/internal/ui/overlay"
	"github.com/zjrosen/polyslot/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	// seq identifies the toast a DismissMsg was scheduled for, so an old
	// timer does not hide a newer toast.
	seq int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast, replacing any visible one.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message is the text of the visible toast.
func (m Model) Message() string { return m.message }

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var mark string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.StatusErrorColor)
		mark = "✗ "
	case StyleInfo:
		style = style.BorderForeground(styles.LinkColor)
		mark = "i "
	case StyleWarn:
		style = style.BorderForeground(styles.StatusWarningColor)
		mark = "! "
	default:
		style = style.BorderForeground(styles.StatusSuccessColor)
		mark = "✓ "
	}
	return style.Render(mark + m.message)
}

// Overlay renders the toast bottom-center over bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg signals that the toast should be dismissed.
type DismissMsg struct {
	seq int
}

// Update hides the toast when its own DismissMsg arrives.
func (m Model) Update(msg DismissMsg) Model {
	if msg.seq == m.seq {
		return m.Hide()
	}
	return m
}

// ScheduleDismiss returns a command that dismisses the current toast
// after d.
func (m Model) ScheduleDismiss(d time.Duration) tea.Cmd {
	seq := m.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}
