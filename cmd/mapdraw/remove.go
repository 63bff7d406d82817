// ABOUTME: Shape remove command
// ABOUTME: Deletes one line or circle by index and syncs the deletion

package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/mapdraw/internal/editor"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/ui"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <line|circle> <index>",
	Aliases: []string{"rm"},
	Short:   "Remove a shape by index",
	Long: `Remove a line or circle. Use 'mapdraw list' to see indices; later
shapes of the same kind shift down by one.

Examples:
  mapdraw remove circle 0
  mapdraw rm line 2 --confirm`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index: %w", err)
		}

		ctx := commandContext(cmd)
		ed, err := editor.Load(ctx, engine)
		if err != nil {
			return fmt.Errorf("failed to load shapes: %w", err)
		}
		if !ed.Select(kind, index) {
			return fmt.Errorf("no %s at index %d", kind, index)
		}

		skip, _ := cmd.Flags().GetBool("confirm")
		target := ed.Lines()
		if kind == models.KindCircle {
			target = ed.Circles()
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatShape(index, target[index]))
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Remove %s %d?", kind, index), skip) {
			return nil
		}

		_, change := ed.DeleteSelected()
		if err := save(cmd, ed, change); err != nil {
			return fmt.Errorf("failed to delete %s: %w", kind, err)
		}

		color.Green("✓ Removed %s %d", kind, index)
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}
