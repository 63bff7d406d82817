// ABOUTME: Bubbletea model of the terminal map editor
// ABOUTME: Maps keys and mouse events onto the editor, search, and sync passes

package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/harper/mapdraw/internal/editor"
	"github.com/harper/mapdraw/internal/geo"
	"github.com/harper/mapdraw/internal/geocode"
	"github.com/harper/mapdraw/internal/models"
	"github.com/harper/mapdraw/internal/sync"
)

const (
	headerHeight = 1
	footerHeight = 1
	searchWidth  = 34

	panCols = 4
	panRows = 2

	deleteLabel = "[Delete selected]"
)

// Options configures the editor.
type Options struct {
	Engine     *sync.Engine
	Geocoder   Geocoder
	Logger     *log.Logger
	Center     models.Point
	Zoom       int
	SearchZoom int
	TileURL    string
}

// Model is the bubbletea model. All editor state is owned by Update.
type Model struct {
	ctx      context.Context
	engine   *sync.Engine
	geocoder Geocoder
	logger   *log.Logger
	tileURL  string

	ed     *editor.Editor
	vp     geo.Viewport
	search *geocode.Search
	input  textinput.Model

	// cancelSearch aborts the in-flight address lookup.
	cancelSearch context.CancelFunc

	width  int
	height int

	hydrated   bool
	circleMode bool
	syncing    map[models.Kind]bool
	dirty      map[models.Kind]bool

	// notice is a modal message shown until dismissed.
	notice string
	status string
}

// New builds the model. The context bounds every background call.
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	in := textinput.New()
	in.Placeholder = "Search address"
	in.Prompt = "/ "
	in.Width = searchWidth - 3
	in.CharLimit = 200

	return Model{
		ctx:      ctx,
		engine:   opts.Engine,
		geocoder: opts.Geocoder,
		logger:   logger,
		tileURL:  opts.TileURL,
		ed:       editor.New(),
		vp:       geo.NewViewport(opts.Center, opts.Zoom, 0, 0),
		search:   geocode.NewSearch(opts.SearchZoom),
		input:    in,
		syncing:  make(map[models.Kind]bool),
		dirty:    make(map[models.Kind]bool),
		status:   "Loading shapes...",
	}
}

// Editor exposes the underlying editor.
func (m Model) Editor() *editor.Editor {
	return m.ed
}

// Viewport returns the current map view.
func (m Model) Viewport() geo.Viewport {
	return m.vp
}

// Notice returns the modal message, if one is showing.
func (m Model) Notice() string {
	return m.notice
}

func (m Model) Init() tea.Cmd {
	return hydrateCmd(m.ctx, m.engine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-headerHeight-footerHeight)
		return m, nil

	case hydratedMsg:
		m.hydrated = true
		if msg.err != nil {
			m.logger.Error("hydrate failed", "err", msg.err)
			m.status = "Could not load saved shapes"
			return m, nil
		}
		m.ed.Seed(msg.snap)
		m.status = fmt.Sprintf("Loaded %d lines and %d circles", len(msg.snap.Lines), len(msg.snap.Circles))
		return m, nil

	case syncDoneMsg:
		return m.syncDone(msg)

	case searchDoneMsg:
		return m.searchDone(msg)

	case tea.BlurMsg:
		cmd := m.apply(m.ed.HandlePointer(editor.PointerEvent{Type: editor.PointerLeave}))
		return m, cmd

	case tea.MouseMsg:
		return m.mouse(msg)

	case tea.KeyMsg:
		return m.key(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.notice != "" {
		switch msg.String() {
		case "enter", "esc", " ", "q":
			m.notice = ""
		}
		return m, nil
	}

	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			return m.submitSearch()
		case "esc":
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		if m.search.Busy() {
			return m, nil
		}
		cmd := m.input.Focus()
		return m, cmd
	case "esc":
		if m.search.Busy() {
			m.endSearch()
			m.search.Cancel()
			m.status = "Search cancelled"
			return m, nil
		}
		cmd := m.apply(m.ed.ClearSelection())
		return m, cmd
	case "d", "delete", "backspace":
		cmd := m.deleteSelected()
		return m, cmd
	case "c":
		m.circleMode = !m.circleMode
		if m.circleMode {
			m.status = "Circle mode: right-drag draws circles"
		} else {
			m.status = "Line mode: right-drag draws lines"
		}
		return m, nil
	case "s":
		cmd := m.syncAll()
		return m, cmd
	case "left", "h":
		m.vp.Pan(-panCols, 0)
	case "right", "l":
		m.vp.Pan(panCols, 0)
	case "up", "k":
		m.vp.Pan(0, -panRows)
	case "down", "j":
		m.vp.Pan(0, panRows)
	case "+", "=":
		m.vp.SetZoom(m.vp.Zoom + 1)
	case "-", "_":
		m.vp.SetZoom(m.vp.Zoom - 1)
	}
	return m, nil
}

func (m Model) mouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.notice != "" {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.notice = ""
		}
		return m, nil
	}

	if msg.Action == tea.MouseActionPress && msg.Y < headerHeight {
		return m.headerClick(msg)
	}

	inMap := m.inMap(msg.X, msg.Y)
	if !m.hydrated {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp && inMap:
		m.vp.SetZoom(m.vp.Zoom + 1)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown && inMap:
		m.vp.SetZoom(m.vp.Zoom - 1)
		return m, nil
	}

	if !inMap {
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionRelease {
			cmd := m.apply(m.ed.HandlePointer(editor.PointerEvent{Type: editor.PointerLeave}))
			return m, cmd
		}
		return m, nil
	}

	pos := m.pointAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.input.Blur()
			cmd := m.apply(m.ed.Click(pos))
			return m, cmd
		}
		cmd := m.apply(m.ed.HandlePointer(editor.PointerEvent{
			Type:   editor.PointerDown,
			Pos:    pos,
			Button: button(msg.Button),
			Shift:  msg.Shift || m.circleMode,
		}))
		return m, cmd
	case tea.MouseActionMotion:
		cmd := m.apply(m.ed.HandlePointer(editor.PointerEvent{Type: editor.PointerMove, Pos: pos}))
		return m, cmd
	case tea.MouseActionRelease:
		cmd := m.apply(m.ed.HandlePointer(editor.PointerEvent{
			Type:   editor.PointerUp,
			Pos:    pos,
			Button: button(msg.Button),
		}))
		return m, cmd
	}
	return m, nil
}

func (m Model) headerClick(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	switch {
	case msg.X < searchWidth:
		if m.search.Busy() {
			return m, nil
		}
		cmd := m.input.Focus()
		return m, cmd
	case msg.X > searchWidth && msg.X <= searchWidth+len(deleteLabel):
		cmd := m.deleteSelected()
		return m, cmd
	}
	return m, nil
}

func button(b tea.MouseButton) editor.Button {
	switch b {
	case tea.MouseButtonLeft:
		return editor.ButtonLeft
	case tea.MouseButtonMiddle:
		return editor.ButtonMiddle
	case tea.MouseButtonRight:
		return editor.ButtonRight
	default:
		return editor.ButtonNone
	}
}

func (m Model) inMap(x, y int) bool {
	return x >= 0 && x < m.vp.Width && y >= headerHeight && y < headerHeight+m.vp.Height
}

func (m Model) pointAt(x, y int) models.Point {
	return m.vp.FromCell(x, y-headerHeight)
}

func (m *Model) deleteSelected() tea.Cmd {
	removed, change := m.ed.DeleteSelected()
	if change.Has(editor.ChangeLines) || change.Has(editor.ChangeCircles) {
		m.status = fmt.Sprintf("Deleted %s", removed.Kind)
	}
	return m.apply(change)
}

// apply starts a sync pass for every kind whose committed shapes changed.
func (m *Model) apply(change editor.Change) tea.Cmd {
	var cmds []tea.Cmd
	for _, kind := range change.Kinds() {
		cmds = append(cmds, m.requestSync(kind))
	}
	return tea.Batch(cmds...)
}

func (m *Model) syncAll() tea.Cmd {
	var cmds []tea.Cmd
	for _, kind := range sync.Kinds {
		cmds = append(cmds, m.requestSync(kind))
	}
	return tea.Batch(cmds...)
}

// requestSync keeps at most one pass per kind in flight. A change arriving
// during a pass is picked up by a follow-up pass.
func (m *Model) requestSync(kind models.Kind) tea.Cmd {
	if m.engine == nil {
		return nil
	}
	if m.syncing[kind] {
		m.dirty[kind] = true
		return nil
	}
	m.syncing[kind] = true
	pass := m.ed.Shapes().BeginSync(kind)
	return syncCmd(m.ctx, m.engine, pass)
}

func (m Model) syncDone(msg syncDoneMsg) (tea.Model, tea.Cmd) {
	kind := msg.pass.Kind
	m.ed.Shapes().EndSync(msg.pass, msg.res)
	m.syncing[kind] = false

	if msg.res.Failures > 0 {
		m.status = fmt.Sprintf("Sync of %s had %d failures (see log)", kind.Collection(), msg.res.Failures)
	}

	if m.dirty[kind] {
		m.dirty[kind] = false
		cmd := m.requestSync(kind)
		return m, cmd
	}
	return m, nil
}

func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	req, ok := m.search.Begin(m.input.Value())
	if !ok || m.geocoder == nil {
		return m, nil
	}
	m.input.Blur()
	m.logger.Debug("search submitted", "query", req.Query, "generation", req.Generation)
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelSearch = cancel
	return m, searchCmd(ctx, m.geocoder, req)
}

// endSearch releases the context of the in-flight lookup.
func (m *Model) endSearch() {
	if m.cancelSearch != nil {
		m.cancelSearch()
		m.cancelSearch = nil
	}
}

func (m Model) searchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	out := m.search.Resolve(msg.req, msg.results, msg.err)
	switch {
	case out.Stale:
		return m, nil
	case msg.err != nil:
		m.logger.Error("address search failed", "query", msg.req.Query, "err", msg.err)
	}

	m.endSearch()
	if out.Notice != "" {
		m.notice = out.Notice
		return m, nil
	}
	m.vp.SetView(*out.Center, out.Zoom)
	m.status = out.Result.DisplayName
	return m, nil
}
