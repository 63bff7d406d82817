// ABOUTME: Nominatim-compatible geocoding client
// ABOUTME: Resolves free-text addresses to coordinates over HTTP

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/mapdraw/internal/models"
)

const (
	// DefaultBaseURL is the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultUserAgent identifies the app as Nominatim's usage policy asks.
	DefaultUserAgent = "mapdraw/1.0"
	// DefaultAcceptLanguage matches the locale of the default map centre.
	DefaultAcceptLanguage = "pt-BR"

	defaultTimeout = 10 * time.Second
)

// Result is one geocoding match.
type Result struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Point returns the result as a map coordinate.
func (r Result) Point() models.Point {
	return models.Point{Lat: r.Lat, Lng: r.Lon}
}

// place is the wire shape of a Nominatim result; coordinates are strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client talks to a Nominatim-compatible search endpoint.
type Client struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	HTTPClient     *http.Client
	Logger         *log.Logger
}

// NewClient returns a client for baseURL with default headers.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		UserAgent:      DefaultUserAgent,
		AcceptLanguage: DefaultAcceptLanguage,
		HTTPClient:     &http.Client{Timeout: defaultTimeout},
		Logger:         log.Default(),
	}
}

// Search issues one lookup and returns every match in response order.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	u := c.BaseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", c.AcceptLanguage)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	logger := c.Logger
	if logger == nil {
		logger = log.Default()
	}

	t0 := time.Now()
	logger.Debug("geocode request", "query", query)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("geocode request: unexpected status %s", resp.Status)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	results := make([]Result, 0, len(places))
	for _, p := range places {
		lat, err := strconv.ParseFloat(p.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("parse latitude %q: %w", p.Lat, err)
		}
		lon, err := strconv.ParseFloat(p.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("parse longitude %q: %w", p.Lon, err)
		}
		results = append(results, Result{Lat: lat, Lon: lon, DisplayName: p.DisplayName})
	}

	logger.Debug("geocode response", "query", query, "results", len(results), "duration_ms", time.Since(t0).Milliseconds())
	return results, nil
}
