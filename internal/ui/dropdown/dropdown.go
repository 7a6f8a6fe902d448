// Package dropdown is the option list a canvas popup opens over the
// document view.
package dropdown

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/polyslot/internal/ui/styles"
)

// Model holds the dropdown state.
type Model struct {
	title    string
	options  []string
	selected int
	width    int
}

// New creates a dropdown with the given title and options.
func New(title string, options []string) Model {
	return Model{title: title, options: options}
}

// SetSelected sets the highlighted index. Out-of-range values are ignored.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
	}
	return m
}

// SetWidth fixes the inner width of the box. Zero sizes it to the options.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// Selected is the highlighted index.
func (m Model) Selected() int { return m.selected }

// Options returns the options.
func (m Model) Options() []string { return m.options }

// Update moves the highlight. Committing and cancelling are up to the
// owner, which sees enter and esc before the dropdown does.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down", "ctrl+n":
			if m.selected < len(m.options)-1 {
				m.selected++
			}
		case "k", "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
		case "home", "g":
			m.selected = 0
		case "end", "G":
			m.selected = max(len(m.options)-1, 0)
		}
	}
	return m, nil
}

// View renders the dropdown box (without positioning).
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = lipgloss.Width(m.title) + 2
		for _, opt := range m.options {
			width = max(width, lipgloss.Width(opt)+2)
		}
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1)
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width)))

	for i, opt := range m.options {
		b.WriteString("\n")
		if i == m.selected {
			b.WriteString(styles.SelectionIndicatorStyle.Render(">") + lipgloss.NewStyle().Bold(true).Render(opt))
		} else {
			b.WriteString(" " + opt)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(b.String())
}
