// ABOUTME: mapdraw configuration management with backend selection
// ABOUTME: Layers config.json, .env, and MAPDRAW_* variables, and opens the document store

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/harper/mapdraw/internal/docstore"
	"github.com/harper/mapdraw/internal/docstore/badgerdb"
	"github.com/harper/mapdraw/internal/docstore/charmkv"
	"github.com/harper/mapdraw/internal/docstore/redisdb"
	"github.com/harper/mapdraw/internal/docstore/sqlitedb"
	"github.com/harper/mapdraw/internal/geo"
	"github.com/harper/mapdraw/internal/geocode"
	"github.com/harper/mapdraw/internal/models"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists every accepted backend name.
var Backends = []string{BackendSQLite, BackendBadger, BackendCharm, BackendRedis, BackendMemory}

// Defaults for the map view and tiles.
const (
	DefaultCenterLat = -22.9068
	DefaultCenterLng = -43.1729
	DefaultZoom      = 13
	DefaultTileURL   = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultLogLevel  = "info"

	envPrefix = "MAPDRAW_"
)

// Config stores mapdraw configuration.
type Config struct {
	// Backend selects the document store: sqlite (default), badger, charm,
	// redis, or memory.
	Backend string `json:"backend,omitempty" env:"BACKEND"`

	// DataDir is the root directory for local data. SQLite puts mapdraw.db
	// here, badger its badger/ directory, and the editor its log file.
	// Supports ~ expansion. Defaults to ~/.local/share/mapdraw.
	DataDir string `json:"data_dir,omitempty" env:"DATA_DIR"`

	CharmHost string `json:"charm_host,omitempty" env:"CHARM_HOST"`
	RedisURL  string `json:"redis_url,omitempty" env:"REDIS_URL"`

	GeocoderURL    string `json:"geocoder_url,omitempty" env:"GEOCODER_URL"`
	UserAgent      string `json:"user_agent,omitempty" env:"USER_AGENT"`
	AcceptLanguage string `json:"accept_language,omitempty" env:"ACCEPT_LANGUAGE"`

	TileURL string `json:"tile_url,omitempty" env:"TILE_URL"`

	// CenterLat and CenterLng are the initial map centre. Both zero means
	// the default centre.
	CenterLat  float64 `json:"center_lat,omitempty" env:"CENTER_LAT"`
	CenterLng  float64 `json:"center_lng,omitempty" env:"CENTER_LNG"`
	Zoom       int     `json:"zoom,omitempty" env:"ZOOM"`
	SearchZoom int     `json:"search_zoom,omitempty" env:"SEARCH_ZOOM"`

	LogLevel string `json:"log_level,omitempty" env:"LOG_LEVEL"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Backend:    BackendSQLite,
		CenterLat:  DefaultCenterLat,
		CenterLng:  DefaultCenterLng,
		Zoom:       DefaultZoom,
		SearchZoom: geocode.SearchZoom,
		TileURL:    DefaultTileURL,
	}
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetCenter returns the initial map centre.
func (c *Config) GetCenter() models.Point {
	if c.CenterLat == 0 && c.CenterLng == 0 {
		return models.Point{Lat: DefaultCenterLat, Lng: DefaultCenterLng}
	}
	return models.Point{Lat: c.CenterLat, Lng: c.CenterLng}
}

// GetZoom returns the initial zoom level.
func (c *Config) GetZoom() int {
	if c.Zoom == 0 {
		return DefaultZoom
	}
	return c.Zoom
}

// GetSearchZoom returns the zoom applied after a successful search.
func (c *Config) GetSearchZoom() int {
	if c.SearchZoom == 0 {
		return geocode.SearchZoom
	}
	return c.SearchZoom
}

// GetTileURL returns the tile URL template.
func (c *Config) GetTileURL() string {
	if c.TileURL == "" {
		return DefaultTileURL
	}
	return c.TileURL
}

// GetLogLevel returns the log level name.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// GetCharmHost returns the charm server, falling back to CHARM_HOST.
func (c *Config) GetCharmHost() string {
	if c.CharmHost != "" {
		return c.CharmHost
	}
	return charmkv.DefaultConfig().CharmHost
}

// LogPath is where the editor writes its log while it owns the terminal.
func (c *Config) LogPath() string {
	return filepath.Join(c.GetDataDir(), "mapdraw.log")
}

// Geocoder builds a geocoding client from the configuration.
func (c *Config) Geocoder(logger *log.Logger) *geocode.Client {
	client := geocode.NewClient(c.GeocoderURL)
	if c.UserAgent != "" {
		client.UserAgent = c.UserAgent
	}
	if c.AcceptLanguage != "" {
		client.AcceptLanguage = c.AcceptLanguage
	}
	if logger != nil {
		client.Logger = logger
	}
	return client
}

// Validate rejects configurations that cannot start the editor.
func (c *Config) Validate() error {
	backend := c.GetBackend()
	known := false
	for _, b := range Backends {
		if b == backend {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	if backend == BackendRedis && c.RedisURL == "" {
		return errors.New("redis backend requires redis_url")
	}
	if z := c.GetZoom(); z < geo.MinZoom || z > geo.MaxZoom {
		return fmt.Errorf("zoom %d out of range [%d, %d]", z, geo.MinZoom, geo.MaxZoom)
	}
	if z := c.GetSearchZoom(); z < geo.MinZoom || z > geo.MaxZoom {
		return fmt.Errorf("search zoom %d out of range [%d, %d]", z, geo.MinZoom, geo.MaxZoom)
	}
	if err := c.GetCenter().Validate(); err != nil {
		return fmt.Errorf("center: %w", err)
	}
	return nil
}

// defaultDataDir returns the default XDG data directory for mapdraw.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mapdraw")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// OpenStore creates the document store for the configured backend.
func (c *Config) OpenStore(ctx context.Context, logger *log.Logger) (docstore.Store, error) {
	dataDir := c.GetDataDir()

	switch c.GetBackend() {
	case BackendSQLite:
		return sqlitedb.New(filepath.Join(dataDir, sqlitedb.DBFilename))
	case BackendBadger:
		return badgerdb.Open(filepath.Join(dataDir, badgerdb.DirName), logger)
	case BackendCharm:
		return charmkv.NewClient(&charmkv.Config{CharmHost: c.GetCharmHost(), AutoSync: true})
	case BackendRedis:
		if c.RedisURL == "" {
			return nil, errors.New("redis backend requires redis_url")
		}
		return redisdb.Open(ctx, c.RedisURL)
	case BackendMemory:
		return docstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "mapdraw", "config.json")
}

// LoadEnvFile loads a .env file into the process environment without
// overriding variables that are already set. A missing file is fine.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from MAPDRAW_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Load reads config from disk, writing the default on first run, then
// applies .env and MAPDRAW_* overrides.
func Load() (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from XDG config dir
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

// atomicWrite replaces path with data via a temp file in the same directory.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user config directory
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
