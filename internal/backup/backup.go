// ABOUTME: Export and import functionality for drawn shapes
// ABOUTME: Supports YAML backup of store documents and markdown export

package backup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/harper/mapdraw/internal/docstore"
	"github.com/harper/mapdraw/internal/models"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

const toolName = "mapdraw"

// Backup represents the YAML backup format.
type Backup struct {
	Version    string         `yaml:"version"`
	ExportedAt time.Time      `yaml:"exported_at"`
	Tool       string         `yaml:"tool"`
	Lines      []LineBackup   `yaml:"lines"`
	Circles    []CircleBackup `yaml:"circles"`
}

// LineBackup represents a line document in the backup format.
type LineBackup struct {
	ID     string         `yaml:"id"`
	Points []models.Point `yaml:"points"`
}

// CircleBackup represents a circle document in the backup format.
type CircleBackup struct {
	ID     string       `yaml:"id"`
	Center models.Point `yaml:"center"`
	Radius float64      `yaml:"radius"`
}

// ExportToYAML exports every readable document in the store. Documents
// that do not decode as shapes are left out.
func ExportToYAML(ctx context.Context, store docstore.Store) ([]byte, error) {
	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       toolName,
		Lines:      []LineBackup{},
		Circles:    []CircleBackup{},
	}

	lines, err := load(ctx, store, models.KindLine)
	if err != nil {
		return nil, err
	}
	for _, s := range lines {
		backup.Lines = append(backup.Lines, LineBackup{ID: s.RemoteID, Points: s.Points})
	}

	circles, err := load(ctx, store, models.KindCircle)
	if err != nil {
		return nil, err
	}
	for _, s := range circles {
		backup.Circles = append(backup.Circles, CircleBackup{ID: s.RemoteID, Center: s.Center, Radius: s.Radius})
	}

	return yaml.Marshal(backup)
}

func load(ctx context.Context, store docstore.Store, kind models.Kind) ([]models.Shape, error) {
	docs, err := store.List(ctx, kind.Collection())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Collection(), err)
	}
	shapes := make([]models.Shape, 0, len(docs))
	for _, doc := range docs {
		s, err := models.DecodeDocument(kind, doc.ID, doc.Data)
		if err != nil {
			continue
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// ImportFromYAML restores documents under their original ids. Restoring
// the same backup twice leaves the store unchanged. Returns the number of
// documents written.
func ImportFromYAML(ctx context.Context, store docstore.Store, data []byte) (int, error) {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}

	if backup.Tool != toolName {
		return 0, fmt.Errorf("wrong tool: %s (expected %s)", backup.Tool, toolName)
	}

	// Validate everything before writing anything
	shapes := make([]models.Shape, 0, len(backup.Lines)+len(backup.Circles))
	for _, lb := range backup.Lines {
		s := models.NewLine(lb.Points)
		s.RemoteID = lb.ID
		shapes = append(shapes, s)
	}
	for _, cb := range backup.Circles {
		s := models.NewCircle(cb.Center, cb.Radius)
		s.RemoteID = cb.ID
		shapes = append(shapes, s)
	}
	for _, s := range shapes {
		if s.RemoteID == "" {
			return 0, fmt.Errorf("%s without id in backup", s.Kind)
		}
		if err := s.Validate(); err != nil {
			return 0, fmt.Errorf("%s %s: %w", s.Kind, s.RemoteID, err)
		}
	}

	written := 0
	for _, s := range shapes {
		body, err := models.EncodeDocument(s)
		if err != nil {
			return written, err
		}
		if err := store.Replace(ctx, s.Kind.Collection(), s.RemoteID, body); err != nil {
			return written, fmt.Errorf("restore %s %s: %w", s.Kind, s.RemoteID, err)
		}
		written++
	}
	return written, nil
}

// ExportToMarkdown renders the shapes as markdown tables.
func ExportToMarkdown(lines, circles []models.Shape) []byte {
	var sb strings.Builder

	now := time.Now().UTC()
	sb.WriteString(fmt.Sprintf("# Map Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(lines) == 0 && len(circles) == 0 {
		sb.WriteString("No shapes drawn.\n")
		return []byte(sb.String())
	}

	sb.WriteString("## Lines\n\n")
	if len(lines) == 0 {
		sb.WriteString("No lines drawn.\n\n")
	} else {
		sb.WriteString("| # | Points | First point | ID |\n")
		sb.WriteString("|---|--------|-------------|----|\n")
		for i, l := range lines {
			first := "-"
			if len(l.Points) > 0 {
				first = fmt.Sprintf("(%.4f, %.4f)", l.Points[0].Lat, l.Points[0].Lng)
			}
			sb.WriteString(fmt.Sprintf("| %d | %d | %s | %s |\n", i, len(l.Points), first, orDash(l.RemoteID)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Circles\n\n")
	if len(circles) == 0 {
		sb.WriteString("No circles drawn.\n")
	} else {
		sb.WriteString("| # | Center | Radius | ID |\n")
		sb.WriteString("|---|--------|--------|----|\n")
		for i, c := range circles {
			center := fmt.Sprintf("(%.4f, %.4f)", c.Center.Lat, c.Center.Lng)
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", i, center, humanize.SIWithDigits(c.Radius, 1, "m"), orDash(c.RemoteID)))
		}
	}

	return []byte(sb.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
