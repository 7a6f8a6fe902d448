package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// loadConfigFromYAML reads yaml the way the root command does.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0644))

	// "::" lets dotted keys like "popup.value" stay whole in theme.colors
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, 2, cfg.UI.IndentWidth)
	require.Equal(t, 18, cfg.UI.LabelWidth)
	require.True(t, cfg.UI.ShowHelp)
	require.True(t, cfg.Watch.Enabled)
	require.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	require.False(t, cfg.Registry.StrictLabels)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())

	want := Defaults()
	require.Equal(t, want.UI, cfg.UI)
	require.Equal(t, want.Watch, cfg.Watch)
	require.Equal(t, want.Tracing, cfg.Tracing)
	require.Equal(t, want.Registry, cfg.Registry)
	require.Empty(t, cfg.Document)
}

func TestLoad_Overrides(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
document: shapes.yaml
registry:
  strict_labels: true
ui:
  label_width: 24
watch:
  debounce: 1s
`)

	require.Equal(t, "shapes.yaml", cfg.Document)
	require.True(t, cfg.Registry.StrictLabels)
	require.Equal(t, 24, cfg.UI.LabelWidth)
	require.Equal(t, 2, cfg.UI.IndentWidth, "unset keys keep defaults")
	require.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"indent too wide", func(c *Config) { c.UI.IndentWidth = 9 }, "ui.indent_width"},
		{"negative label width", func(c *Config) { c.UI.LabelWidth = -1 }, "ui.label_width"},
		{"unknown preset", func(c *Config) { c.Theme.Preset = "solarized" }, `theme.preset "solarized"`},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "tracing.sample_rate"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, "tracing.exporter"},
		{"otlp endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
			c.Tracing.OTLPEndpoint = ""
		}, "tracing.otlp_endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestValidate_KnownPreset(t *testing.T) {
	cfg := Defaults()
	cfg.Theme.Preset = "nord"
	require.NoError(t, cfg.Validate())
}

func TestTracingConfig_FillsDefaultFile(t *testing.T) {
	tc := Defaults().Tracing
	tc.Enabled = true

	out := tc.Tracing()
	require.True(t, out.Enabled)
	require.Equal(t, "polyslot", out.ServiceName)
	if home, err := os.UserHomeDir(); err == nil {
		require.Equal(t, filepath.Join(home, ".config", "polyslot", "traces", "traces.jsonl"), out.FilePath)
	}

	tc.FilePath = "/tmp/t.jsonl"
	require.Equal(t, "/tmp/t.jsonl", tc.Tracing().FilePath)
}

func TestConfigPaths(t *testing.T) {
	paths := ConfigPaths()
	require.NotEmpty(t, paths)
	require.Equal(t, filepath.Join(".polyslot", "config.yaml"), paths[0])
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	require.Empty(t, FindConfig())

	require.NoError(t, WriteDefaultConfig(filepath.Join(".polyslot", "config.yaml")))
	require.Equal(t, filepath.Join(".polyslot", "config.yaml"), FindConfig())
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
