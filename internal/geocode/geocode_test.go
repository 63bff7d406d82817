// ABOUTME: Tests for the geocoding client and search controller
// ABOUTME: Uses httptest servers in place of Nominatim

package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harper/mapdraw/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSearch(t *testing.T) {
	var gotPath, gotQuery, gotFormat, gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lat":"-22.9519","lon":"-43.2105","display_name":"Cristo Redentor, Rio de Janeiro"},
			{"lat":"1.5","lon":"2.5","display_name":"Elsewhere"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	results, err := c.Search(context.Background(), "Cristo Redentor")
	require.NoError(t, err)

	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "Cristo Redentor", gotQuery)
	assert.Equal(t, "json", gotFormat)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, DefaultAcceptLanguage, gotLang)

	require.Len(t, results, 2)
	assert.Equal(t, -22.9519, results[0].Lat)
	assert.Equal(t, -43.2105, results[0].Lon)
	assert.Equal(t, "Cristo Redentor, Rio de Janeiro", results[0].DisplayName)
	assert.Equal(t, models.Point{Lat: -22.9519, Lng: -43.2105}, results[0].Point())
}

func TestClientSearch_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL).Search(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClientSearch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, `oops`, "unexpected status"},
		{"bad json", http.StatusOK, `{`, "decode"},
		{"bad latitude", http.StatusOK, `[{"lat":"north","lon":"1"}]`, "latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Search(context.Background(), "q")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearch_BeginRules(t *testing.T) {
	s := NewSearch(0)
	assert.Equal(t, SearchZoom, s.Zoom)

	_, ok := s.Begin("   ")
	assert.False(t, ok, "blank query sends nothing")
	assert.False(t, s.Busy())

	req, ok := s.Begin("  Copacabana ")
	require.True(t, ok)
	assert.Equal(t, "Copacabana", req.Query)
	assert.True(t, s.Busy())

	_, ok = s.Begin("Ipanema")
	assert.False(t, ok, "second search while busy is dropped")
}

func TestSearch_ResolveSuccess(t *testing.T) {
	s := NewSearch(17)
	req, _ := s.Begin("Cristo Redentor")

	out := s.Resolve(req, []Result{{Lat: -22.95, Lon: -43.21, DisplayName: "Cristo"}, {Lat: 1, Lon: 1}}, nil)
	require.NotNil(t, out.Center)
	assert.Equal(t, models.Point{Lat: -22.95, Lng: -43.21}, *out.Center)
	assert.Equal(t, 17, out.Zoom)
	assert.Empty(t, out.Notice)
	assert.False(t, s.Busy())
}

func TestSearch_ResolveFailures(t *testing.T) {
	s := NewSearch(17)

	req, _ := s.Begin("x")
	out := s.Resolve(req, nil, errors.New("network down"))
	assert.Nil(t, out.Center)
	assert.Equal(t, NoticeFailed, out.Notice)
	assert.False(t, s.Busy())

	req, _ = s.Begin("y")
	out = s.Resolve(req, nil, nil)
	assert.Nil(t, out.Center)
	assert.Equal(t, NoticeNoResults, out.Notice)
	assert.False(t, s.Busy())
}

func TestSearch_StaleAfterCancel(t *testing.T) {
	s := NewSearch(17)
	old, _ := s.Begin("old")
	s.Cancel()
	assert.False(t, s.Busy())

	cur, ok := s.Begin("new")
	require.True(t, ok)

	out := s.Resolve(old, []Result{{Lat: 1, Lon: 1}}, nil)
	assert.True(t, out.Stale)
	assert.Nil(t, out.Center)
	assert.True(t, s.Busy(), "stale responses leave the current search running")

	out = s.Resolve(cur, []Result{{Lat: 2, Lon: 2}}, nil)
	assert.False(t, out.Stale)
	require.NotNil(t, out.Center)
	assert.Equal(t, 2.0, out.Center.Lat)
}
