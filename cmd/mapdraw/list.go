// ABOUTME: Shape list command
// ABOUTME: Prints every stored line and circle with its index

package main

import (
	"fmt"

	"github.com/harper/mapdraw/internal/editor"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all drawn shapes",
	Long: `List stored lines and circles. Indices are the ones remove expects.

Examples:
  mapdraw list
  mapdraw list --kind circle`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := editor.Load(commandContext(cmd), engine)
		if err != nil {
			return fmt.Errorf("failed to load shapes: %w", err)
		}

		lines, circles := ed.Lines(), ed.Circles()
		if kindStr, _ := cmd.Flags().GetString("kind"); kindStr != "" {
			kind, err := models.ParseKind(kindStr)
			if err != nil {
				return err
			}
			if kind == models.KindLine {
				circles = nil
			} else {
				lines = nil
			}
		}

		if len(ed.Lines())+len(ed.Circles()) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No shapes drawn yet. Use 'mapdraw edit' or 'mapdraw add' to create one.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatShapes(lines, circles))
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("kind", "k", "", "only list one kind (line or circle)")

	rootCmd.AddCommand(listCmd)
}
