package cmd

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/zjrosen/polyslot/internal/editor"
	"github.com/zjrosen/polyslot/internal/registry"
)

var editorsBase string

// editorJSON is one registry entry as printed by the editors command.
type editorJSON struct {
	Label  string `json:"label"`
	Type   string `json:"type"`
	Editor string `json:"editor"`
	Auto   bool   `json:"auto"`
	DocURL string `json:"doc_url,omitempty"`
}

var editorsCmd = &cobra.Command{
	Use:   "editors",
	Short: "List the registered slot editors as JSON",
	Long: `List every registered editor as JSON, grouped by the slot type it serves.

Examples:
  # Every base type
  polyslot editors

  # Only editors for scene.Shape slots
  polyslot editors --base scene.Shape

  # Labels only
  polyslot editors | jq '.["scene.Fill"][].label'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := editorsByBase(reg, editorsBase)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	editorsCmd.Flags().StringVarP(&editorsBase, "base", "b", "", "Only list editors for this base type (e.g., scene.Shape)")
	rootCmd.AddCommand(editorsCmd)
}

func editorsByBase(reg *registry.Registry, only string) (map[string][]editorJSON, error) {
	out := make(map[string][]editorJSON)
	for _, base := range reg.Bases() {
		if only != "" && base.String() != only {
			continue
		}
		part := reg.Lookup(base)
		list := make([]editorJSON, 0, part.Len())
		for _, e := range part.Entries() {
			_, auto := e.Editor.(*editor.Auto)
			list = append(list, editorJSON{
				Label:  e.Label,
				Type:   e.Type.String(),
				Editor: reflect.TypeOf(e.Editor).String(),
				Auto:   auto,
				DocURL: e.DocURL,
			})
		}
		out[base.String()] = list
	}
	if only != "" && len(out) == 0 {
		return nil, fmt.Errorf("no editors registered for base type %q", only)
	}
	return out, nil
}
