// ABOUTME: Interactive map editor command
// ABOUTME: Opens the terminal editor on the configured or given map view

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/tui"
	"github.com/spf13/cobra"
)

var (
	editLat  float64
	editLng  float64
	editZoom int
)

var editCmd = &cobra.Command{
	Use:     "edit",
	Aliases: []string{"e"},
	Short:   "Open the interactive map editor",
	Long: `Open the map editor in the terminal.

Right-drag draws a closed line, shift+right-drag (or press c first) draws a
circle, a left click selects a shape and d deletes it. Press / to search for
an address. Every change is saved to the configured backend.

Logs are written to the data directory while the editor is open.

Examples:
  mapdraw edit
  mapdraw edit --lat -22.9519 --lng -43.2105 --zoom 16`,
	Annotations: map[string]string{annotationLogFile: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		center := cfg.GetCenter()
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			center = models.Point{Lat: editLat, Lng: editLng}
			if err := center.Validate(); err != nil {
				return fmt.Errorf("invalid center: %w", err)
			}
		}
		zoom := cfg.GetZoom()
		if cmd.Flags().Changed("zoom") {
			zoom = editZoom
		}

		err := tui.Run(commandContext(cmd), tui.Options{
			Engine:     engine,
			Geocoder:   cfg.Geocoder(logger),
			Logger:     logger,
			Center:     center,
			Zoom:       zoom,
			SearchZoom: cfg.GetSearchZoom(),
			TileURL:    cfg.GetTileURL(),
		})
		if err != nil {
			return fmt.Errorf("editor: %w", err)
		}
		color.New(color.Faint).Printf("Log: %s\n", cfg.LogPath())
		return nil
	},
}

func init() {
	editCmd.Flags().Float64Var(&editLat, "lat", 0, "initial center latitude")
	editCmd.Flags().Float64Var(&editLng, "lng", 0, "initial center longitude")
	editCmd.Flags().IntVarP(&editZoom, "zoom", "z", 0, "initial zoom level (0-19)")

	rootCmd.AddCommand(editCmd)
}
