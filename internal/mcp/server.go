// ABOUTME: MCP server initialization and configuration
// ABOUTME: Exposes the shape collection and address search to AI agents

package mcp

import (
	"context"
	"fmt"
	stdsync "sync"

	"github.com/charmbracelet/log"
	"github.com/harper/mapdraw/internal/editor"
	"github.com/harper/mapdraw/internal/geocode"
	docsync "github.com/harper/mapdraw/internal/sync"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Geocoder resolves free-text addresses.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Result, error)
}

// Server wraps the MCP server with the sync engine and geocoder.
type Server struct {
	mcp      *mcp.Server
	engine   *docsync.Engine
	geocoder Geocoder
	logger   *log.Logger

	// mu serializes load, mutate, and flush so concurrent tool calls do not
	// interleave passes.
	mu stdsync.Mutex
}

// NewServer creates MCP server with all capabilities. The geocoder may be
// nil, in which case search_address reports an error.
func NewServer(engine *docsync.Engine, geocoder Geocoder, logger *log.Logger) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("sync engine is required")
	}
	if logger == nil {
		logger = log.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mapdraw",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		engine:   engine,
		geocoder: geocoder,
		logger:   logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// edit loads the current shapes, applies fn, and syncs whatever fn changed.
func (s *Server) edit(ctx context.Context, fn func(*editor.Editor) (editor.Change, error)) (*editor.Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ed, err := editor.Load(ctx, s.engine)
	if err != nil {
		return nil, fmt.Errorf("failed to load shapes: %w", err)
	}
	change, err := fn(ed)
	if err != nil {
		return nil, err
	}
	if n := editor.Failures(ed.Flush(ctx, s.engine, change)); n > 0 {
		return nil, fmt.Errorf("failed to save changes: %d remote operations failed", n)
	}
	return ed, nil
}

func (s *Server) load(ctx context.Context) (*editor.Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ed, err := editor.Load(ctx, s.engine)
	if err != nil {
		return nil, fmt.Errorf("failed to load shapes: %w", err)
	}
	return ed, nil
}
