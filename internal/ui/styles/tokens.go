// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderFocus     ColorToken = "border.focus"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"

	// Controls
	TokenControlLabel      ColorToken = "control.label"
	TokenControlLabelFocus ColorToken = "control.label.focus"
	TokenControlFocusBg    ColorToken = "control.focus.bg"
	TokenPopupValue        ColorToken = "popup.value"
	TokenLink              ColorToken = "link"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextPlaceholder,

		TokenBorderDefault,
		TokenBorderFocus,
		TokenBorderHighlight,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenSelectionIndicator,

		TokenControlLabel,
		TokenControlLabelFocus,
		TokenControlFocusBg,
		TokenPopupValue,
		TokenLink,

		TokenOverlayTitle,
		TokenOverlayBorder,
	}
}
