// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads config, sets up logging, and opens the document store

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harper/mapdraw/internal/config"
	"github.com/harper/mapdraw/internal/docstore"
	"github.com/harper/mapdraw/internal/editor"
	"github.com/harper/mapdraw/internal/logging"
	"github.com/harper/mapdraw/internal/sync"
	"github.com/harper/mapdraw/internal/ui"
	"github.com/spf13/cobra"
)

// Command annotations read by the root hooks.
const (
	// annotationNoStore marks commands that never touch the document store.
	annotationNoStore = "mapdraw/no-store"
	// annotationLogFile marks commands that own the terminal, so logs go to
	// a file instead of stderr.
	annotationLogFile = "mapdraw/log-file"
)

var (
	cfg       *config.Config
	store     docstore.Store
	engine    *sync.Engine
	logger    = log.New(io.Discard)
	logCloser io.Closer

	backendFlag  string
	dataDirFlag  string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "mapdraw",
	Short: "Draw polygons and circles on a map",
	Long: `
███╗   ███╗ █████╗ ██████╗ ██████╗ ██████╗  █████╗ ██╗    ██╗
████╗ ████║██╔══██╗██╔══██╗██╔══██╗██╔══██╗██╔══██╗██║    ██║
██╔████╔██║███████║██████╔╝██║  ██║██████╔╝███████║██║ █╗ ██║
██║╚██╔╝██║██╔══██║██╔═══╝ ██║  ██║██╔══██╗██╔══██║██║███╗██║
██║ ╚═╝ ██║██║  ██║██║     ██████╔╝██║  ██║██║  ██║╚███╔███╔╝
╚═╝     ╚═╝╚═╝  ╚═╝╚═╝     ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝ ╚══╝╚══╝

       Sketch areas on a map and keep them in sync

Examples:
  mapdraw edit
  mapdraw add circle -22.9519 -43.2105 --radius 300
  mapdraw search "Cristo Redentor"
  mapdraw list`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if err := setupLogging(cmd); err != nil {
			return err
		}

		if cmd.Annotations[annotationNoStore] == "true" {
			return nil
		}
		return openStore(commandContext(cmd))
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeAll()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend (sqlite, badger, charm, redis, memory)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
}

func applyFlags(c *config.Config) {
	if backendFlag != "" {
		c.Backend = backendFlag
	}
	if dataDirFlag != "" {
		c.DataDir = dataDirFlag
	}
	if logLevelFlag != "" {
		c.LogLevel = logLevelFlag
	}
}

func setupLogging(cmd *cobra.Command) error {
	if cmd.Annotations[annotationLogFile] != "true" {
		logger = logging.New(os.Stderr, cfg.GetLogLevel())
		return nil
	}

	l, closer, err := logging.OpenFile(cfg.LogPath(), cfg.GetLogLevel())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logger, logCloser = l, closer
	return nil
}

func openStore(ctx context.Context) error {
	var err error
	store, err = cfg.OpenStore(ctx, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.GetBackend(), err)
	}
	engine, err = sync.NewEngine(store, logger)
	if err != nil {
		return err
	}
	logger.Debug("store opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
	return nil
}

func closeAll() error {
	var firstErr error
	if store != nil {
		firstErr = store.Close()
		store, engine = nil, nil
	}
	if logCloser != nil {
		if err := logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		logCloser = nil
	}
	return firstErr
}

// commandContext returns the command's context, or a background one when
// the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// save syncs the kinds touched by change and prints one summary per pass.
func save(cmd *cobra.Command, ed *editor.Editor, change editor.Change) error {
	results := ed.Flush(commandContext(cmd), engine, change)
	for _, res := range results {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSyncResult(res))
	}
	if n := editor.Failures(results); n > 0 {
		return fmt.Errorf("%d store operations failed", n)
	}
	return nil
}

// confirm asks a yes/no question on stdin unless skip is set.
func confirm(in io.Reader, out io.Writer, prompt string, skip bool) bool {
	if skip {
		return true
	}
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response == "y" || response == "yes" {
		return true
	}
	fmt.Fprintln(out, "Cancelled.")
	return false
}
