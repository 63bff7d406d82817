// ABOUTME: Import command for restoring data from YAML backup
// ABOUTME: Restores documents under their original ids

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harper/mapdraw/internal/backup"
	"github.com/harper/mapdraw/internal/docstore"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import shapes from a YAML backup",
	Long: `Import lines and circles from a YAML backup file.

This restores data from a backup created with 'mapdraw backup'. Documents
keep their ids, so importing the same backup twice does not duplicate
shapes. Other shapes already in the backend are left alone.

Examples:
  mapdraw import shapes.yaml
  mapdraw import ~/backups/mapdraw-20241214.yaml --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename) //nolint:gosec // user-supplied path is the point
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		skip, _ := cmd.Flags().GetBool("confirm")
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Import shapes from '%s'?", filename), skip) {
			return nil
		}

		ctx := commandContext(cmd)
		n, err := backup.ImportFromYAML(ctx, store, data)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		total, _ := docstore.Count(ctx, store, docstore.Collections...)

		color.Green("Import complete")
		fmt.Fprintf(cmd.OutOrStdout(), "  %d shapes imported, %d in %s\n", n, total, cfg.GetBackend())

		return nil
	},
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(importCmd)
}
