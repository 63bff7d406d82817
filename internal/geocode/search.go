// ABOUTME: Address search controller with busy flag and generation counter
// ABOUTME: Turns geocoding responses into view changes or user notices

package geocode

import (
	"strings"

	"github.com/harper/mapdraw/internal/models"
)

// SearchZoom is the zoom level applied when a search succeeds.
const SearchZoom = 17

const (
	NoticeFailed    = "Address search failed."
	NoticeNoResults = "No results found."
)

// Request identifies one submitted search.
type Request struct {
	Query      string
	Generation uint64
}

// Outcome is what the map should do after a search resolves.
type Outcome struct {
	// Center is set when the view should move.
	Center *models.Point
	Zoom   int
	// Result is the match the view moved to.
	Result *Result
	// Notice is a message for the user, empty on success.
	Notice string
	// Stale means the response belongs to a superseded request.
	Stale bool
}

// Search tracks whether a lookup is in flight. At most one runs at a time
// and only the latest generation may change the view.
type Search struct {
	Zoom       int
	busy       bool
	generation uint64
}

// NewSearch returns an idle controller that zooms to zoom on success.
func NewSearch(zoom int) *Search {
	if zoom <= 0 {
		zoom = SearchZoom
	}
	return &Search{Zoom: zoom}
}

// Busy reports whether a lookup is in flight.
func (s *Search) Busy() bool {
	return s.busy
}

// Begin starts a search. Blank queries and queries submitted while busy
// are dropped.
func (s *Search) Begin(query string) (Request, bool) {
	query = strings.TrimSpace(query)
	if query == "" || s.busy {
		return Request{}, false
	}
	s.busy = true
	s.generation++
	return Request{Query: query, Generation: s.generation}, true
}

// Resolve applies the response of req.
func (s *Search) Resolve(req Request, results []Result, err error) Outcome {
	if req.Generation != s.generation {
		return Outcome{Stale: true}
	}
	s.busy = false

	switch {
	case err != nil:
		return Outcome{Notice: NoticeFailed}
	case len(results) == 0:
		return Outcome{Notice: NoticeNoResults}
	}

	first := results[0]
	center := first.Point()
	return Outcome{Center: &center, Zoom: s.Zoom, Result: &first}
}

// Cancel abandons the in-flight lookup, if any.
func (s *Search) Cancel() {
	s.busy = false
	s.generation++
}
