// Package help renders the keybinding overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/polyslot/internal/keys"
	"github.com/zjrosen/polyslot/internal/ui/overlay"
	"github.com/zjrosen/polyslot/internal/ui/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Section is a titled column of bindings.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Sections groups km the way the overlay shows it.
func Sections(km keys.KeyMap) []Section {
	return []Section{
		{Title: "Navigation", Bindings: []key.Binding{km.Up, km.Down}},
		{Title: "Editing", Bindings: []key.Binding{km.Enter, km.Toggle, km.Left, km.Right, km.Escape, km.Docs}},
		{Title: "General", Bindings: []key.Binding{km.Save, km.Reload, km.Help, km.Logs, km.Quit}},
	}
}

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	width  int
	height int
}

// New creates a help view for km.
func New(km keys.KeyMap) Model {
	return Model{keys: km}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box centered in an empty screen.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderContent())
}

// Overlay renders the help box centered over background.
func (m Model) Overlay(background string) string {
	if background == "" {
		return m.View()
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.renderContent(), background)
}

func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	sections := Sections(m.keys)
	cols := make([]string, len(sections))
	for i, sec := range sections {
		var col strings.Builder
		col.WriteString(sectionStyle.Render(sec.Title))
		col.WriteString("\n")
		for _, b := range sec.Bindings {
			if !b.Enabled() {
				continue
			}
			col.WriteString(renderBinding(b))
		}
		if i < len(sections)-1 {
			cols[i] = columnStyle.Render(col.String())
		} else {
			cols[i] = col.String()
		}
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	boxWidth := lipgloss.Width(columns) + 4
	closeKey := m.keys.Help.Help().Key
	body := contentStyle.Render(columns + "\n" + footerStyle.Render("Press "+closeKey+" or esc to close"))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(dividerStyle.Render(strings.Repeat("─", boxWidth)))
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
