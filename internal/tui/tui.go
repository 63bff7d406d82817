// ABOUTME: Entry point for the terminal map editor
// ABOUTME: Runs the bubbletea program with mouse motion and focus reporting

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/mapdraw/internal/sync"
)

// flushTimeout bounds the final sync after the program exits.
const flushTimeout = 10 * time.Second

// Run opens the editor and blocks until the user quits. Shapes changed
// since the last completed pass are flushed once more before returning.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		flushCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
		m.flush(flushCtx)
		stop()
	}
	return err
}

// flush runs a final synchronous pass per kind. Shapes whose create is
// still in flight are skipped by BeginSync.
func (m Model) flush(ctx context.Context) {
	if m.engine == nil || !m.hydrated {
		return
	}
	for _, kind := range sync.Kinds {
		res := m.ed.Shapes().SyncNow(ctx, m.engine, kind)
		m.logger.Debug("final sync", "collection", kind.Collection(), "created", len(res.Created), "failures", res.Failures)
	}
}
