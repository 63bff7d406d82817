// ABOUTME: Background work for the map editor as bubbletea commands
// ABOUTME: Hydration, sync passes, and address searches report back as messages

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/mapdraw/internal/geocode"
	"github.com/harper/mapdraw/internal/sync"
)

// Geocoder resolves free-text addresses.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Result, error)
}

type hydratedMsg struct {
	snap sync.Snapshot
	err  error
}

type syncDoneMsg struct {
	pass sync.Pass
	res  sync.Result
}

type searchDoneMsg struct {
	req     geocode.Request
	results []geocode.Result
	err     error
}

func hydrateCmd(ctx context.Context, engine *sync.Engine) tea.Cmd {
	return func() tea.Msg {
		snap, err := engine.Hydrate(ctx)
		return hydratedMsg{snap: snap, err: err}
	}
}

func syncCmd(ctx context.Context, engine *sync.Engine, pass sync.Pass) tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{pass: pass, res: engine.Run(ctx, pass)}
	}
}

func searchCmd(ctx context.Context, g Geocoder, req geocode.Request) tea.Cmd {
	return func() tea.Msg {
		results, err := g.Search(ctx, req.Query)
		return searchDoneMsg{req: req, results: results, err: err}
	}
}
