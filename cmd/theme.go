package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/polyslot/internal/config"
	"github.com/zjrosen/polyslot/internal/ui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme [preset]",
	Short: "List theme presets or save one to the config",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			current := cfg.Theme.Preset
			if current == "" {
				current = "default"
			}
			for _, name := range styles.PresetNames() {
				mark := "  "
				if name == current {
					mark = "* "
				}
				if _, err := fmt.Fprintln(out, mark+name); err != nil {
					return err
				}
			}
			return nil
		}

		name := args[0]
		if _, ok := styles.Presets[name]; !ok {
			return fmt.Errorf("unknown theme preset %q (available: %s)", name, strings.Join(styles.PresetNames(), ", "))
		}
		if err := config.SaveThemePreset(configUsed, name); err != nil {
			return fmt.Errorf("updating config: %w", err)
		}
		_, err := fmt.Fprintf(out, "theme set to %s in %s\n", name, configUsed)
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "polyslot", rootCmd.Version)
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(versionCmd)
}
