package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/polyslot/internal/config"
)

// execute runs the root command in a fresh temp directory with its own
// config file and returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgFile = ""
		editorsBase = ""
		initForce = false
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// workspace changes into a temp dir and returns the config path to pass
// with --config.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return filepath.Join(dir, "polyslot.yaml")
}

func TestEditors_ListsEveryBase(t *testing.T) {
	configPath := workspace(t)

	out, err := execute(t, "editors", "--config", configPath)
	require.NoError(t, err)

	var got map[string][]editorJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Contains(t, got, "scene.Shape")
	require.Contains(t, got, "scene.Fill")

	var labels []string
	for _, e := range got["scene.Shape"] {
		labels = append(labels, e.Label)
	}
	require.Equal(t, []string{"Circle", "Polygon", "Rectangle", "Square"}, labels)

	polygon := got["scene.Shape"][1]
	require.False(t, polygon.Auto)
	require.Equal(t, "*scene.PolygonEditor", polygon.Editor)
	require.Equal(t, "*scene.Polygon", polygon.Type)

	circle := got["scene.Shape"][0]
	require.True(t, circle.Auto)
	require.NotEmpty(t, circle.DocURL)
}

func TestEditors_FilterByBase(t *testing.T) {
	configPath := workspace(t)

	out, err := execute(t, "editors", "--config", configPath, "--base", "scene.Fill")
	require.NoError(t, err)

	var got map[string][]editorJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Len(t, got["scene.Fill"], 2)
}

func TestEditors_UnknownBase(t *testing.T) {
	configPath := workspace(t)

	_, err := execute(t, "editors", "--config", configPath, "--base", "scene.Sound")
	require.ErrorContains(t, err, `no editors registered for base type "scene.Sound"`)
}

func TestEditors_InvalidConfig(t *testing.T) {
	configPath := workspace(t)
	require.NoError(t, os.WriteFile(configPath, []byte("ui:\n  indent_width: 99\n"), 0o644))

	_, err := execute(t, "editors", "--config", configPath)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestInit_WritesDocumentAndConfig(t *testing.T) {
	configPath := workspace(t)

	out, err := execute(t, "init", "--config", configPath)
	require.NoError(t, err)
	require.Contains(t, out, "wrote scene.yaml")

	doc, err := os.ReadFile("scene.yaml")
	require.NoError(t, err)
	require.Contains(t, string(doc), "name: sunset")

	conf, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(conf), "document: scene.yaml")
	require.Contains(t, string(conf), "indent_width", "default config written first")

	_, err = execute(t, "init", "--config", configPath)
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--config", configPath, "--force")
	require.NoError(t, err)
}

func TestResolve(t *testing.T) {
	configPath := workspace(t)
	_, err := execute(t, "init", "--config", configPath)
	require.NoError(t, err)

	out, err := execute(t, "resolve", "--config", configPath, "scene.yaml", "Layers[0].Shape.Value.Radius")
	require.NoError(t, err)
	require.Equal(t, "2\n", out)

	out, err = execute(t, "resolve", "--config", configPath, "scene.yaml", "Layers[0].Fill")
	require.NoError(t, err)
	require.Contains(t, out, "editor: Gradient")

	_, err = execute(t, "resolve", "--config", configPath, "scene.yaml", "Layers[9]")
	require.Error(t, err)

	_, err = execute(t, "resolve", "--config", configPath, "missing.yaml", "Name")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTheme_ListAndSet(t *testing.T) {
	configPath := workspace(t)

	out, err := execute(t, "theme", "--config", configPath)
	require.NoError(t, err)
	require.Contains(t, out, "* default")
	require.Contains(t, out, "  dracula")

	_, err = execute(t, "theme", "--config", configPath, "dracula")
	require.NoError(t, err)
	conf, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(conf), "preset: dracula")

	out, err = execute(t, "theme", "--config", configPath)
	require.NoError(t, err)
	require.Contains(t, out, "* dracula")

	_, err = execute(t, "theme", "--config", configPath, "solarized")
	require.ErrorContains(t, err, `unknown theme preset "solarized"`)
}

func TestVersion(t *testing.T) {
	configPath := workspace(t)

	out, err := execute(t, "version", "--config", configPath)
	require.NoError(t, err)
	require.Contains(t, out, "polyslot "+rootCmd.Version)
}

func TestDocumentPath(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	cfg = config.Defaults()
	_, err := documentPath(nil)
	require.ErrorIs(t, err, ErrNoDocument)

	cfg.Document = "from-config.yaml"
	path, err := documentPath(nil)
	require.NoError(t, err)
	require.Equal(t, "from-config.yaml", path)

	path, err = documentPath([]string{"arg.yaml"})
	require.NoError(t, err)
	require.Equal(t, "arg.yaml", path)
}
