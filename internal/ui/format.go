// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable CLI output for shapes, searches, and sync passes

package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harper/mapdraw/internal/geocode"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/sync"
)

var faint = color.New(color.Faint)

// FormatPoint formats a coordinate pair.
func FormatPoint(p models.Point) string {
	return fmt.Sprintf("(%.4f, %.4f)", p.Lat, p.Lng)
}

// FormatDistance formats meters with an SI prefix, e.g. "1.5 km".
func FormatDistance(meters float64) string {
	return humanize.SIWithDigits(meters, 1, "m")
}

// FormatShape formats one shape with its index for listing.
func FormatShape(index int, s models.Shape) string {
	var body string
	switch s.Kind {
	case models.KindLine:
		first := "-"
		if len(s.Points) > 0 {
			first = FormatPoint(s.Points[0])
		}
		body = fmt.Sprintf("%s %s from %s",
			color.GreenString("line"),
			fmt.Sprintf("%d points", len(s.Points)),
			first)
	case models.KindCircle:
		body = fmt.Sprintf("%s %s around %s",
			color.BlueString("circle"),
			FormatDistance(s.Radius),
			FormatPoint(s.Center))
	default:
		return faint.Sprint("(invalid shape)")
	}

	return fmt.Sprintf("  [%d] %s %s", index, body, formatRemoteID(s.RemoteID))
}

func formatRemoteID(id string) string {
	if id == "" {
		return color.YellowString("(not synced)")
	}
	return faint.Sprint(id)
}

// FormatShapes lists lines then circles under headings.
func FormatShapes(lines, circles []models.Shape) string {
	if len(lines) == 0 && len(circles) == 0 {
		return faint.Sprint("No shapes drawn.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Lines (%d)\n", len(lines)))
	for i, l := range lines {
		sb.WriteString(FormatShape(i, l))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Circles (%d)\n", len(circles)))
	for i, c := range circles {
		sb.WriteString(FormatShape(i, c))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatSearchResult formats a geocoding match with the tile under it.
func FormatSearchResult(r geocode.Result, tileURL string) string {
	out := fmt.Sprintf("%s %s", color.CyanString(r.DisplayName), faint.Sprint(FormatPoint(r.Point())))
	if tileURL != "" {
		out += "\n  " + faint.Sprint(tileURL)
	}
	return out
}

// FormatSyncResult summarizes one sync pass.
func FormatSyncResult(res sync.Result) string {
	summary := fmt.Sprintf("%s: %d created, %d replaced, %d deleted",
		res.Kind.Collection(), len(res.Created), res.Replaced, len(res.Deleted))
	if res.Failures > 0 {
		return summary + color.RedString(" (%d failed)", res.Failures)
	}
	return summary
}
