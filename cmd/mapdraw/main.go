// ABOUTME: Entry point for the mapdraw CLI
// ABOUTME: Runs the root command with a context cancelled on SIGINT/SIGTERM

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
