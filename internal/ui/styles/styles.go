// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Values
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Type names
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Empty slots

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor          = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (used for ">" prefix in the dropdown)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// Controls
	ControlLabelColor      = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#8C8C8C"}
	ControlLabelFocusColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	ControlFocusBgColor    = lipgloss.AdaptiveColor{Light: "#DDE7F7", Dark: "#1A5276"}
	PopupValueColor        = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
	LinkColor              = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#8C8C8C"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	LabelStyle        = lipgloss.NewStyle().Foreground(ControlLabelColor)
	LabelFocusedStyle = lipgloss.NewStyle().Foreground(ControlLabelFocusColor).Bold(true)
	ValueStyle        = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	ValueFocusedStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Background(ControlFocusBgColor)
	PopupStyle        = lipgloss.NewStyle().Foreground(PopupValueColor)
	PopupFocusedStyle = lipgloss.NewStyle().Foreground(PopupValueColor).Background(ControlFocusBgColor).Bold(true)
	PlaceholderStyle  = lipgloss.NewStyle().Foreground(TextPlaceholderColor).Italic(true)
	MessageStyle      = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	HintStyle         = lipgloss.NewStyle().Foreground(TextMutedColor)
	LinkStyle         = lipgloss.NewStyle().Foreground(LinkColor).Underline(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	StatusWarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
