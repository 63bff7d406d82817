// ABOUTME: Sync subcommand for backend status and Charm cloud sync
// ABOUTME: Provides status, pull, link, unlink, reset, and wipe commands

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/client"
	"github.com/fatih/color"
	"github.com/harper/mapdraw/internal/config"
	"github.com/harper/mapdraw/internal/docstore"
	"github.com/harper/mapdraw/internal/docstore/charmkv"
	"github.com/harper/mapdraw/internal/docstore/sqlitedb"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Inspect the backend and manage Charm cloud sync",
	Long: `Every edit is written to the configured backend as soon as it is made.
With the charm backend, every write is also backed up to Charm Cloud using
SSH key authentication.

Commands:
  status  - Show backend, shape counts, and Charm user
  pull    - Pull changes made on other devices (charm backend)
  link    - Link this device to your Charm account
  unlink  - Unlink this device from your account
  reset   - Rebuild the local Charm database from the cloud (charm backend)
  wipe    - Permanently delete every shape from the backend

Examples:
  mapdraw sync status
  mapdraw sync link
  mapdraw sync reset --confirm`,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Backend:    %s\n", cfg.GetBackend())
		fmt.Fprintf(out, "Data dir:   %s\n", cfg.GetDataDir())
		if db, ok := store.(*sqlitedb.SQLiteDB); ok {
			fmt.Fprintf(out, "Database:   %s\n", db.Path())
		}

		counts, err := shapeCounts(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Lines:      %d\n", counts[docstore.CollectionLines])
		fmt.Fprintf(out, "Circles:    %d\n", counts[docstore.CollectionCircles])

		if cfg.GetBackend() != config.BackendCharm {
			return nil
		}

		fmt.Fprintf(out, "Charm Host: %s\n", cfg.GetCharmHost())
		fmt.Fprintf(out, "Database:   %s\n", charmkv.DBName)

		cc, err := client.NewClientWithDefaults()
		if err != nil {
			color.Yellow("\nStatus: Not connected")
			fmt.Fprintln(out, "Run 'mapdraw sync link' to connect your account.")
			return nil
		}
		user, err := cc.ID()
		if err != nil {
			color.Yellow("\nStatus: Not linked")
			fmt.Fprintln(out, "Run 'mapdraw sync link' to connect your account.")
			return nil
		}

		fmt.Fprintf(out, "\nUser ID: %s\n", user)
		color.Green("Status: Connected")
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull shapes changed on other devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmStore("pull")
		if err != nil {
			return err
		}
		if err := c.Sync(); err != nil {
			return fmt.Errorf("failed to sync: %w", err)
		}
		counts, err := shapeCounts(cmd)
		if err != nil {
			return err
		}
		color.Green("✓ Synced with %s", cfg.GetCharmHost())
		fmt.Fprintln(cmd.OutOrStdout(), formatCounts(counts))
		return nil
	},
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to your Charm account",
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Starting Charm link process...")

		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to run 'charm link': %w\nMake sure the charm CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked successfully")
		fmt.Println("Set \"backend\": \"charm\" in the config to sync shapes.")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:         "unlink",
	Short:       "Unlink this device from your Charm account",
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Unlinking device from Charm...")

		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to run 'charm unlink': %w", err)
		}

		color.Green("\n✓ Device unlinked")
		fmt.Println("Local data is preserved. Sync is disabled.")
		return nil
	},
}

var resetConfirm bool

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Rebuild the local Charm database from the cloud",
	Long: `Delete the local copy of the shape database and rebuild it from the
backups on Charm Cloud. Use this when the local database is corrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmStore("reset")
		if err != nil {
			return err
		}
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete the local shape database and rebuild it from the cloud?", resetConfirm) {
			return nil
		}

		if err := c.Reset(); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
		counts, err := shapeCounts(cmd)
		if err != nil {
			return err
		}
		color.Green("✓ Database rebuilt from cloud")
		fmt.Fprintln(cmd.OutOrStdout(), formatCounts(counts))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Permanently delete every shape",
	Long: `Permanently delete every line and circle from the configured backend.

This CANNOT be undone. With the charm backend the deletions are synced, so
the shapes disappear from every linked device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		counts, err := shapeCounts(cmd)
		if err != nil {
			return err
		}
		if counts.Total() == 0 {
			fmt.Fprintln(out, "Nothing to wipe.")
			return nil
		}

		fmt.Fprintf(out, "This will PERMANENTLY DELETE %s from the %s backend.\n", formatCounts(counts), cfg.GetBackend())
		fmt.Fprint(out, "Type 'wipe' to confirm: ")
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(response) != "wipe" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}

		removed, err := docstore.Clear(commandContext(cmd), store, docstore.Collections...)
		if err != nil {
			return fmt.Errorf("wipe stopped after %s: %w", formatCounts(removed), err)
		}
		color.Green("✓ Removed %s", formatCounts(removed))
		return nil
	},
}

// charmStore returns the open charm store, or an error naming the action
// when another backend is configured.
func charmStore(action string) (*charmkv.Client, error) {
	c, ok := store.(*charmkv.Client)
	if !ok {
		return nil, fmt.Errorf("sync %s needs the charm backend (current: %s)", action, cfg.GetBackend())
	}
	return c, nil
}

// shapeCounts counts the stored documents per collection.
func shapeCounts(cmd *cobra.Command) (docstore.Summary, error) {
	ctx := commandContext(cmd)
	counts := make(docstore.Summary, len(docstore.Collections))
	for _, coll := range docstore.Collections {
		n, err := docstore.Count(ctx, store, coll)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", coll, err)
		}
		counts[coll] = n
	}
	return counts, nil
}

func formatCounts(counts docstore.Summary) string {
	return fmt.Sprintf("%d lines and %d circles", counts[docstore.CollectionLines], counts[docstore.CollectionCircles])
}

func runCharm(arg string) error {
	c := exec.Command("charm", arg)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func init() {
	syncResetCmd.Flags().BoolVar(&resetConfirm, "confirm", false, "skip confirmation prompt")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncPullCmd)
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	rootCmd.AddCommand(syncCmd)
}
