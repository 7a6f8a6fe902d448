package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/polyslot/internal/config"
	"github.com/zjrosen/polyslot/internal/document"
	"github.com/zjrosen/polyslot/internal/scene"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [document]",
	Short: "Write an example document and point the config at it",
	Long: `Write the example scene to a document (default scene.yaml) and record it
as the default document in the config file, creating the config if needed.

Afterwards plain 'polyslot' opens the example.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "scene.yaml"
		if len(args) > 0 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := document.Save(cmd.Context(), path, scene.Example()); err != nil {
			return err
		}

		if _, err := os.Stat(configUsed); errors.Is(err, os.ErrNotExist) {
			if err := config.WriteDefaultConfig(configUsed); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
		}
		if err := config.SaveDocument(configUsed, path); err != nil {
			return fmt.Errorf("updating config: %w", err)
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\nconfig %s now opens it by default\n", path, configUsed)
		return err
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing document")
	rootCmd.AddCommand(initCmd)
}
