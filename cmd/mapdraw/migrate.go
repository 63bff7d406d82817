// ABOUTME: Migration command for copying shapes between storage backends
// ABOUTME: Copies every document under its id and leaves the config untouched

package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/harper/mapdraw/internal/config"
	"github.com/harper/mapdraw/internal/docstore"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate shapes between storage backends",
	Long: `Copy all lines and circles from the currently configured backend to a
different backend.

Does NOT update the config file; verify the migration was successful, then
set "backend" in config.json.

Examples:
  mapdraw migrate --to badger
  mapdraw migrate --to sqlite --data-dir ~/mapdraw-sqlite
  mapdraw migrate --to charm --force`,
	RunE: runMigrate,
}

var (
	migrateTo      string
	migrateDataDir string
	migrateForce   bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (sqlite, badger, charm, redis)")
	migrateCmd.Flags().StringVar(&migrateDataDir, "target-dir", "", "target data directory (defaults to current data dir)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow writing into a non-empty target")
	_ = migrateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	sourceBackend := cfg.GetBackend()

	if !slices.Contains(config.Backends, migrateTo) || migrateTo == config.BackendMemory {
		return fmt.Errorf("invalid target backend %q", migrateTo)
	}
	if migrateTo == sourceBackend && migrateDataDir == "" {
		return fmt.Errorf("target backend %q is the same as the current backend", migrateTo)
	}

	target := *cfg
	target.Backend = migrateTo
	if migrateDataDir != "" {
		target.DataDir = config.ExpandPath(migrateDataDir)
	}

	dst, err := target.OpenStore(ctx, logger)
	if err != nil {
		return fmt.Errorf("open target storage (%s): %w", migrateTo, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: closing target storage: %v\n", cerr)
		}
	}()

	existing, err := docstore.Count(ctx, dst, docstore.Collections...)
	if err != nil {
		return fmt.Errorf("check target: %w", err)
	}
	if existing > 0 && !migrateForce {
		return fmt.Errorf("target %s already holds %d documents; use --force to merge", migrateTo, existing)
	}

	out := cmd.OutOrStdout()
	color.Yellow("Migrating shapes:")
	fmt.Fprintf(out, "  Source:  %s (%s)\n", sourceBackend, cfg.GetDataDir())
	fmt.Fprintf(out, "  Target:  %s (%s)\n", migrateTo, target.GetDataDir())
	fmt.Fprintln(out)

	summary, err := docstore.Copy(ctx, store, dst, docstore.Collections...)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	color.Green("Migration complete!")
	fmt.Fprintf(out, "  Lines:   %d\n", summary[docstore.CollectionLines])
	fmt.Fprintf(out, "  Circles: %d\n", summary[docstore.CollectionCircles])
	fmt.Fprintln(out)
	color.Yellow("Note: config.json was NOT updated. To switch to the new backend, edit:")
	fmt.Fprintf(out, "  %s\n", config.GetConfigPath())
	fmt.Fprintf(out, "  Set \"backend\": %q\n", migrateTo)

	return nil
}
