// ABOUTME: Export command for GeoJSON, markdown, and YAML output
// ABOUTME: Writes to stdout or a file

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harper/mapdraw/internal/backup"
	"github.com/harper/mapdraw/internal/editor"
	"github.com/harper/mapdraw/internal/geojson"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export shapes in various formats",
	Long: `Export drawn shapes as GeoJSON, Markdown, or YAML.

GeoJSON writes lines as Polygons and circles as Points with a radius
property; --circle-segments turns circles into polygon outlines instead.

Examples:
  mapdraw export --format geojson
  mapdraw export --format geojson --circle-segments 64 --output shapes.geojson
  mapdraw export --format markdown`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		segments, _ := cmd.Flags().GetInt("circle-segments")
		output, _ := cmd.Flags().GetString("output")
		ctx := commandContext(cmd)

		var data []byte
		switch format {
		case "geojson":
			ed, err := editor.Load(ctx, engine)
			if err != nil {
				return fmt.Errorf("failed to load shapes: %w", err)
			}
			fc := geojson.FromShapes(ed.Lines(), ed.Circles(), geojson.Options{CircleSegments: segments})
			data, err = geojson.Marshal(fc, true)
			if err != nil {
				return fmt.Errorf("failed to encode geojson: %w", err)
			}
		case "markdown":
			ed, err := editor.Load(ctx, engine)
			if err != nil {
				return fmt.Errorf("failed to load shapes: %w", err)
			}
			data = backup.ExportToMarkdown(ed.Lines(), ed.Circles())
		case "yaml":
			var err error
			data, err = backup.ExportToYAML(ctx, store)
			if err != nil {
				return fmt.Errorf("failed to export yaml: %w", err)
			}
		default:
			return fmt.Errorf("unsupported format: %s (use 'geojson', 'markdown', or 'yaml')", format)
		}

		if output == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // exports are meant to be shared
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		color.Green("✓ Exported to %s", output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "geojson", "output format (geojson, markdown, yaml)")
	exportCmd.Flags().Int("circle-segments", 0, "export circles as polygons with this many segments")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
