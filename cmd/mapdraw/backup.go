// ABOUTME: Backup command for exporting data to YAML
// ABOUTME: Creates portable backup files for moving shapes between machines

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/mapdraw/internal/backup"
	"github.com/harper/mapdraw/internal/docstore"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a YAML backup of all shapes",
	Long: `Create a YAML backup file containing every stored line and circle.

The backup file can be used to:
- Migrate data between machines
- Restore after data loss
- Import into a fresh backend

Examples:
  mapdraw backup --output shapes.yaml
  mapdraw backup -o ~/backups/mapdraw-$(date +%Y%m%d).yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		ctx := commandContext(cmd)

		data, err := backup.ExportToYAML(ctx, store)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		if output == "" {
			output = fmt.Sprintf("mapdraw-%s.yaml", time.Now().Format("20060102-150405"))
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for backup files
			return fmt.Errorf("failed to write backup: %w", err)
		}

		lines, _ := docstore.Count(ctx, store, docstore.CollectionLines)
		circles, _ := docstore.Count(ctx, store, docstore.CollectionCircles)

		color.Green("Backup created: %s", output)
		fmt.Fprintf(cmd.OutOrStdout(), "  %d lines, %d circles\n", lines, circles)

		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "output file (default: mapdraw-YYYYMMDD-HHMMSS.yaml)")

	rootCmd.AddCommand(backupCmd)
}
