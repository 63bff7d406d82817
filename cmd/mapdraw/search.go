// ABOUTME: Address search command
// ABOUTME: Geocodes free text and prints matches with their map tile

package main

import (
	"fmt"
	"strings"

	"github.com/harper/mapdraw/internal/geo"
	"github.com/harper/mapdraw/internal/geocode"
	"github.com/harper/mapdraw/internal/ui"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search <address...>",
	Aliases: []string{"s"},
	Short:   "Look up an address",
	Long: `Search for an address or place name. The first match is where the
editor would jump to.

Examples:
  mapdraw search "Cristo Redentor"
  mapdraw search Copacabana --limit 3`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		search := geocode.NewSearch(cfg.GetSearchZoom())
		req, ok := search.Begin(strings.Join(args, " "))
		if !ok {
			return fmt.Errorf("query is required")
		}

		results, err := cfg.Geocoder(logger).Search(commandContext(cmd), req.Query)
		out := search.Resolve(req, results, err)
		if err != nil {
			return fmt.Errorf("%s: %w", out.Notice, err)
		}
		if out.Notice != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out.Notice)
			return nil
		}

		for i, r := range results {
			if limit > 0 && i == limit {
				break
			}
			vp := geo.NewViewport(r.Point(), out.Zoom, 0, 0)
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSearchResult(r, vp.TileURL(cfg.GetTileURL())))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("limit", "n", 5, "maximum results to show (0 for all)")

	rootCmd.AddCommand(searchCmd)
}
