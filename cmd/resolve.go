package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/polyslot/internal/document"
	"github.com/zjrosen/polyslot/internal/resolver"
	"github.com/zjrosen/polyslot/internal/scene"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve DOCUMENT PATH",
	Short: "Print the value at a field path",
	Long: `Load a document and print the value found at a field path as YAML.

Paths use Go field names joined by dots, with [n] for list elements.
Slot contents live under .Value.

Examples:
  polyslot resolve scene.yaml Name
  polyslot resolve scene.yaml 'Layers[0].Shape.Value.Radius'
  polyslot resolve scene.yaml 'Layers[1].Fill'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		reg, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		doc := &scene.Scene{}
		if err := document.Load(ctx, args[0], doc, reg); err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}

		path, err := resolver.Parse(args[1])
		if err != nil {
			return err
		}
		v, err := resolver.Lookup(doc, path)
		if err != nil {
			return err
		}

		data, err := document.Encode(v)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
