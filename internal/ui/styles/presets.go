// Package styles contains Lip Gloss style definitions.
package styles

import (
	"maps"
	"slices"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// PresetNames returns the preset names sorted.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// DefaultPreset holds the dark values of the built-in colors.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default polyslot theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextPlaceholder: "#777777",

		TokenBorderDefault:   "#696969",
		TokenBorderFocus:     "#FFFFFF",
		TokenBorderHighlight: "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator: "#FFFFFF",

		TokenControlLabel:      "#8C8C8C",
		TokenControlLabelFocus: "#FFFFFF",
		TokenControlFocusBg:    "#1A5276",
		TokenPopupValue:        "#CBA6F7",
		TokenLink:              "#89B4FA",

		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CDD6F4", // text
		TokenTextSecondary:   "#BAC2DE", // subtext1
		TokenTextMuted:       "#6C7086", // overlay0
		TokenTextPlaceholder: "#585B70", // surface2

		TokenBorderDefault:   "#6C7086", // overlay0
		TokenBorderFocus:     "#CDD6F4", // text
		TokenBorderHighlight: "#89B4FA", // blue

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenSelectionIndicator: "#CDD6F4", // text

		TokenControlLabel:      "#A6ADC8", // subtext0
		TokenControlLabelFocus: "#CDD6F4", // text
		TokenControlFocusBg:    "#45475A", // surface1
		TokenPopupValue:        "#CBA6F7", // mauve
		TokenLink:              "#89B4FA", // blue

		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#F8F8F2", // foreground
		TokenTextSecondary:   "#F8F8F2", // foreground
		TokenTextMuted:       "#6272A4", // comment
		TokenTextPlaceholder: "#6272A4", // comment

		TokenBorderDefault:   "#6272A4", // comment
		TokenBorderFocus:     "#F8F8F2", // foreground
		TokenBorderHighlight: "#BD93F9", // purple

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		TokenSelectionIndicator: "#F8F8F2", // foreground

		TokenControlLabel:      "#6272A4", // comment
		TokenControlLabelFocus: "#F8F8F2", // foreground
		TokenControlFocusBg:    "#44475A", // current line
		TokenPopupValue:        "#FF79C6", // pink
		TokenLink:              "#8BE9FD", // cyan

		TokenOverlayTitle:  "#F8F8F2", // foreground
		TokenOverlayBorder: "#6272A4", // comment
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4", // snow storm 3
		TokenTextSecondary:   "#E5E9F0", // snow storm 2
		TokenTextMuted:       "#4C566A", // polar night 4
		TokenTextPlaceholder: "#4C566A", // polar night 4

		TokenBorderDefault:   "#4C566A", // polar night 4
		TokenBorderFocus:     "#ECEFF4", // snow storm 3
		TokenBorderHighlight: "#88C0D0", // frost 2

		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		TokenSelectionIndicator: "#ECEFF4", // snow storm 3

		TokenControlLabel:      "#D8DEE9", // snow storm 1
		TokenControlLabelFocus: "#ECEFF4", // snow storm 3
		TokenControlFocusBg:    "#434C5E", // polar night 3
		TokenPopupValue:        "#B48EAD", // aurora purple
		TokenLink:              "#88C0D0", // frost 2

		TokenOverlayTitle:  "#ECEFF4", // snow storm 3
		TokenOverlayBorder: "#4C566A", // polar night 4
	},
}

// HighContrastPreset avoids muted colors entirely.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#FFFFFF",
		TokenTextPlaceholder: "#CCCCCC",

		TokenBorderDefault:   "#FFFFFF",
		TokenBorderFocus:     "#FFFF00",
		TokenBorderHighlight: "#00FFFF",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenSelectionIndicator: "#FFFF00",

		TokenControlLabel:      "#FFFFFF",
		TokenControlLabelFocus: "#FFFF00",
		TokenControlFocusBg:    "#0000AA",
		TokenPopupValue:        "#00FFFF",
		TokenLink:              "#00FFFF",

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",
	},
}
