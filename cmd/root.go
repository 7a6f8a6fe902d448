// Package cmd wires the polyslot command line.
package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/polyslot/internal/app"
	"github.com/zjrosen/polyslot/internal/browser"
	"github.com/zjrosen/polyslot/internal/config"
	"github.com/zjrosen/polyslot/internal/document"
	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/registry"
	"github.com/zjrosen/polyslot/internal/scene"
	"github.com/zjrosen/polyslot/internal/tracing"
	"github.com/zjrosen/polyslot/internal/ui/styles"
	"github.com/zjrosen/polyslot/internal/watcher"
)

func init() {
	// Query the terminal background before bubbletea owns stdin, so the
	// OSC 11 reply does not land in a text input.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// ErrNoDocument is returned when neither an argument nor the config names a
// document to open.
var ErrNoDocument = errors.New("no document given: pass a path or run 'polyslot init'")

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
	// configUsed is the file the config was read from, or where init
	// should create one.
	configUsed string
)

var rootCmd = &cobra.Command{
	Use:   "polyslot [document]",
	Short: "A terminal editor for documents with polymorphic slots",
	Long: `polyslot edits YAML documents whose fields hold interface values.

Each slot shows a chooser listing every editor registered for the slot's
type. Picking one rebuilds the slot with that editor's concrete type and
draws its fields in place.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .polyslot/config.yaml, then ~/.config/polyslot/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false,
		"write debug logs to polyslot-debug.log")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the document when it changes on disk")
}

func initConfig() {
	// "::" lets dotted keys like "popup.value" stay whole in theme.colors
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetEnvPrefix("POLYSLOT")
	_ = v.BindEnv("debug")
	_ = v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	configUsed = cfgFile
	if configUsed == "" {
		configUsed = config.FindConfig()
	}
	if configUsed == "" {
		configUsed = config.ConfigPaths()[0]
	}

	cfg = config.Defaults()
	v.SetConfigFile(configUsed)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		// A missing file just means defaults.
		log.Debug(log.CatConfig, "config not read", "path", configUsed, "error", err.Error())
	}
	if err := v.Unmarshal(&cfg); err != nil {
		log.ErrorErr(log.CatConfig, "config unmarshal failed", err, "path", configUsed)
	}
}

// setup starts the ambient services every command shares and returns the
// editor registry. The returned cleanup must run before exit.
func setup(ctx context.Context) (*registry.Registry, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration in %s: %w", configUsed, err)
	}

	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	if cfg.Debug {
		closeLog, err := log.InitWithTeaLog("polyslot-debug.log", "polyslot")
		if err != nil {
			return nil, nil, fmt.Errorf("opening debug log: %w", err)
		}
		cleanups = append(cleanups, closeLog)
	}

	provider, err := tracing.NewProvider(cfg.Tracing.Tracing())
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("starting tracing: %w", err)
	}
	cleanups = append(cleanups, func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatConfig, "tracing shutdown failed", err)
		}
	})

	reg, err := registry.Load(ctx, registry.Strict(cfg.Registry.StrictLabels))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("building editor registry: %w", err)
	}
	return reg, cleanup, nil
}

// documentPath picks the document from args, falling back to the config.
func documentPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Document != "" {
		return cfg.Document, nil
	}
	return "", ErrNoDocument
}

func runApp(cmd *cobra.Command, args []string) error {
	path, err := documentPath(args)
	if err != nil {
		return err
	}

	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	ctx := cmd.Context()
	reg, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	doc := &scene.Scene{}
	if err := document.Load(ctx, path, doc, reg); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	model := app.New(ctx, cfg, reg, path, doc, browser.System{})

	noWatch, _ := cmd.Flags().GetBool("no-watch")
	if cfg.Watch.Enabled && !noWatch {
		w, err := watcher.New(watcher.Config{Path: path, DebounceDur: cfg.Watch.Debounce})
		if err == nil {
			changes, startErr := w.Start()
			if startErr == nil {
				model = model.WithWatcher(w, changes)
			} else {
				_ = w.Stop()
				err = startErr
			}
		}
		if err != nil {
			// The editor works without reloads.
			log.Warn(log.CatWatcher, "watcher disabled", "path", path, "error", err.Error())
		}
	}

	zone.NewGlobal()
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
