// ABOUTME: MCP serve command
// ABOUTME: Starts the MCP server for AI agent integration

package main

import (
	"github.com/harper/mapdraw/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Long: `Serve the Model Context Protocol over stdio.

Tools: list_shapes, add_line, add_circle, delete_shape, search_address.
Resources: mapdraw://shapes and mapdraw://shapes.geojson.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(engine, cfg.Geocoder(logger), logger)
		if err != nil {
			return err
		}
		return server.Serve(commandContext(cmd))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
