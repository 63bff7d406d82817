// ABOUTME: Shape add commands
// ABOUTME: Adds closed lines and circles without opening the editor

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/mapdraw/internal/editor"
	"github.com/harper/mapdraw/internal/geocode"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Add a line or circle",
}

var addLineCmd = &cobra.Command{
	Use:   "line <lat,lng> <lat,lng> <lat,lng>...",
	Short: "Add a closed line through three or more points",
	Long: `Add a closed line. The last point connects back to the first.

Examples:
  mapdraw add line -22.90,-43.17 -22.91,-43.17 -22.91,-43.18`,
	Args: cobra.MinimumNArgs(models.MinLinePoints),
	RunE: func(cmd *cobra.Command, args []string) error {
		points := make([]models.Point, len(args))
		for i, arg := range args {
			p, err := parsePoint(arg)
			if err != nil {
				return fmt.Errorf("point %d: %w", i+1, err)
			}
			points[i] = p
		}

		ctx := commandContext(cmd)
		ed, err := editor.Load(ctx, engine)
		if err != nil {
			return fmt.Errorf("failed to load shapes: %w", err)
		}
		_, change, err := ed.AddLine(points)
		if err != nil {
			return fmt.Errorf("invalid line: %w", err)
		}
		if err := save(cmd, ed, change); err != nil {
			return fmt.Errorf("failed to save line: %w", err)
		}

		lines := ed.Lines()
		color.Green("✓ Added line")
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatShape(len(lines)-1, lines[len(lines)-1]))
		return nil
	},
}

var addCircleCmd = &cobra.Command{
	Use:   "circle [<lat> <lng>] --radius <meters>",
	Short: "Add a circle",
	Long: `Add a circle around a coordinate or a geocoded address.

Examples:
  mapdraw add circle -22.9519 -43.2105 --radius 300
  mapdraw add circle --address "Maracanã, Rio de Janeiro" -r 500`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		radius, _ := cmd.Flags().GetFloat64("radius")
		address, _ := cmd.Flags().GetString("address")
		ctx := commandContext(cmd)

		var center models.Point
		switch {
		case address != "" && len(args) > 0:
			return errors.New("give either coordinates or --address, not both")
		case address != "":
			results, err := cfg.Geocoder(logger).Search(ctx, address)
			if err != nil {
				return fmt.Errorf("%s: %w", geocode.NoticeFailed, err)
			}
			if len(results) == 0 {
				return errors.New(geocode.NoticeNoResults)
			}
			center = results[0].Point()
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSearchResult(results[0], ""))
		case len(args) == 2:
			p, err := parsePoint(args[0] + "," + args[1])
			if err != nil {
				return err
			}
			center = p
		default:
			return errors.New("need <lat> <lng> or --address")
		}

		ed, err := editor.Load(ctx, engine)
		if err != nil {
			return fmt.Errorf("failed to load shapes: %w", err)
		}
		_, change, err := ed.AddCircle(center, radius)
		if err != nil {
			return fmt.Errorf("invalid circle: %w", err)
		}
		if err := save(cmd, ed, change); err != nil {
			return fmt.Errorf("failed to save circle: %w", err)
		}

		circles := ed.Circles()
		color.Green("✓ Added circle")
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatShape(len(circles)-1, circles[len(circles)-1]))
		return nil
	},
}

// parsePoint reads "lat,lng".
func parsePoint(s string) (models.Point, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return models.Point{}, fmt.Errorf("expected lat,lng, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid longitude: %w", err)
	}
	p := models.Point{Lat: lat, Lng: lng}
	if err := p.Validate(); err != nil {
		return models.Point{}, err
	}
	return p, nil
}

func init() {
	addCircleCmd.Flags().Float64P("radius", "r", 0, "radius in meters")
	addCircleCmd.Flags().String("address", "", "geocode this address for the center")
	_ = addCircleCmd.MarkFlagRequired("radius")

	addCmd.AddCommand(addLineCmd)
	addCmd.AddCommand(addCircleCmd)
	rootCmd.AddCommand(addCmd)
}
