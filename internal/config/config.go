// Package config provides configuration types, defaults, and persistence for polyslot.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/tracing"
	"github.com/zjrosen/polyslot/internal/ui/styles"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration options for polyslot.
type Config struct {
	// Document is opened when no path is given on the command line.
	Document string         `mapstructure:"document"`
	Debug    bool           `mapstructure:"debug"`
	Registry RegistryConfig `mapstructure:"registry"`
	UI       UIConfig       `mapstructure:"ui"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// RegistryConfig controls how the editor registry is built.
type RegistryConfig struct {
	// StrictLabels turns a label registered twice for one base type into a
	// startup error instead of letting the later editor win.
	StrictLabels bool `mapstructure:"strict_labels"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	IndentWidth int  `mapstructure:"indent_width"`
	LabelWidth  int  `mapstructure:"label_width"`
	ShowHelp    bool `mapstructure:"show_help"`
	Mouse       bool `mapstructure:"mouse"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens. Both nested YAML and
	// quoted dot notation work:
	//   colors:
	//     popup:
	//       value: "#FF0000"
	//     "control.label": "#888888"
	Colors map[string]any `mapstructure:"colors"`
}

// WatchConfig controls reloading the document when it changes on disk.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// TracingConfig holds OpenTelemetry configuration.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Exporter is "none", "file", "stdout" or "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/polyslot/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// Styles converts the theme section for styles.ApplyTheme.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// Tracing converts the tracing section for tracing.NewProvider, filling
// the default trace file.
func (t TracingConfig) Tracing() tracing.Config {
	cfg := tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     t.FilePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	}
	if cfg.Exporter == "file" && cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	return cfg
}

// DefaultTracesFilePath returns ~/.config/polyslot/traces/traces.jsonl, or
// an empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "polyslot", "traces", "traces.jsonl")
}

// ConfigPaths lists where a config file is looked for, in order: the
// project directory first, then the user config directory.
func ConfigPaths() []string {
	paths := []string{filepath.Join(".polyslot", "config.yaml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "polyslot", "config.yaml"))
	}
	return paths
}

// FindConfig returns the first existing path from ConfigPaths, or "".
func FindConfig() string {
	for _, p := range ConfigPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	return errors.Join(
		ValidateUI(c.UI),
		ValidateTheme(c.Theme),
		ValidateWatch(c.Watch),
		ValidateTracing(c.Tracing),
	)
}

// ValidateUI checks layout widths. Zero means default.
func ValidateUI(ui UIConfig) error {
	if ui.IndentWidth < 0 || ui.IndentWidth > 8 {
		return fmt.Errorf("%w: ui.indent_width must be between 0 and 8, got %d", ErrInvalid, ui.IndentWidth)
	}
	if ui.LabelWidth < 0 || ui.LabelWidth > 60 {
		return fmt.Errorf("%w: ui.label_width must be between 0 and 60, got %d", ErrInvalid, ui.LabelWidth)
	}
	return nil
}

// ValidateTheme checks the preset name. Colors are checked when applied.
func ValidateTheme(theme ThemeConfig) error {
	if theme.Preset != "" && !slices.Contains(styles.PresetNames(), theme.Preset) {
		return fmt.Errorf("%w: theme.preset %q is not one of %v", ErrInvalid, theme.Preset, styles.PresetNames())
	}
	return nil
}

// ValidateWatch checks the debounce interval.
func ValidateWatch(watch WatchConfig) error {
	if watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must not be negative, got %s", ErrInvalid, watch.Debounce)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("%w: tracing.sample_rate must be between 0.0 and 1.0, got %v", ErrInvalid, t.SampleRate)
	}

	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("%w: tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", ErrInvalid, t.Exporter)
	}

	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("%w: tracing.otlp_endpoint is required when exporter is \"otlp\"", ErrInvalid)
	}
	return nil
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			IndentWidth: 2,
			LabelWidth:  18,
			ShowHelp:    true,
			Mouse:       true,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 300 * time.Millisecond,
		},
		Tracing: TracingConfig{
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# polyslot configuration

# Document opened when no path is given on the command line
# document: scene.yaml

# Write a debug log to polyslot-debug.log
debug: false

registry:
  # Fail at startup when two editors claim the same label for one type
  # instead of letting the later one win
  strict_labels: false

ui:
  indent_width: 2   # Columns per nesting level
  label_width: 18   # Column where values start
  show_help: true   # Show key help under the editor
  mouse: true       # Click to focus fields and open choosers

# Theme configuration
theme:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default polyslot theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   popup.value: "#89B4FA"
  #   control.label: "#A6ADC8"

# Reload the document when another program changes it
watch:
  enabled: true
  debounce: 300ms

# OpenTelemetry tracing of registry builds and document load/save
tracing:
  enabled: false
  exporter: file          # none, file, stdout, otlp
  # file_path: ~/.config/polyslot/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
