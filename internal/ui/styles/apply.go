// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Same color for both modes once a theme is chosen.
	set := func(token ColorToken, dst *lipgloss.AdaptiveColor) {
		if c, ok := colors[token]; ok {
			*dst = lipgloss.AdaptiveColor{Light: c, Dark: c}
		}
	}

	set(TokenTextPrimary, &TextPrimaryColor)
	set(TokenTextSecondary, &TextSecondaryColor)
	set(TokenTextMuted, &TextMutedColor)
	set(TokenTextPlaceholder, &TextPlaceholderColor)

	set(TokenBorderDefault, &BorderDefaultColor)
	set(TokenBorderFocus, &BorderFocusColor)
	set(TokenBorderHighlight, &BorderHighlightFocusColor)

	set(TokenStatusSuccess, &StatusSuccessColor)
	set(TokenStatusWarning, &StatusWarningColor)
	set(TokenStatusError, &StatusErrorColor)

	set(TokenSelectionIndicator, &SelectionIndicatorColor)

	set(TokenControlLabel, &ControlLabelColor)
	set(TokenControlLabelFocus, &ControlLabelFocusColor)
	set(TokenControlFocusBg, &ControlFocusBgColor)
	set(TokenPopupValue, &PopupValueColor)
	set(TokenLink, &LinkColor)

	set(TokenOverlayTitle, &OverlayTitleColor)
	set(TokenOverlayBorder, &OverlayBorderColor)
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	LabelStyle = lipgloss.NewStyle().Foreground(ControlLabelColor)
	LabelFocusedStyle = lipgloss.NewStyle().Foreground(ControlLabelFocusColor).Bold(true)
	ValueStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	ValueFocusedStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Background(ControlFocusBgColor)
	PopupStyle = lipgloss.NewStyle().Foreground(PopupValueColor)
	PopupFocusedStyle = lipgloss.NewStyle().Foreground(PopupValueColor).Background(ControlFocusBgColor).Bold(true)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor).Italic(true)
	MessageStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	LinkStyle = lipgloss.NewStyle().Foreground(LinkColor).Underline(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	StatusWarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
