// ABOUTME: Charm KV document store with one short-lived connection per call
// ABOUTME: Reads fall back to read-only mode while another process holds the lock

package charmkv

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/charm/kv"
	"github.com/harper/mapdraw/internal/docstore"
)

const (
	// DBName is the name of the Charm KV database for map shapes.
	DBName = "mapdraw"

	// DefaultCharmHost is the default Charm server to use.
	DefaultCharmHost = "charm.2389.dev"
)

// Client implements docstore.Store over Charm KV.
// It does NOT hold a persistent connection. Each operation opens the
// database, performs the operation, and closes it, so the editor and an
// MCP server can share the database.
type Client struct {
	dbName   string
	autoSync bool
}

// Compile-time check that Client implements docstore.Store.
var _ docstore.Store = (*Client)(nil)

// Config holds client configuration options.
type Config struct {
	// CharmHost is the Charm server to use (default: charm.2389.dev).
	CharmHost string
	// AutoSync pulls cloud changes before every list.
	AutoSync bool
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = DefaultCharmHost
	}
	return &Config{
		CharmHost: host,
		AutoSync:  true,
	}
}

// NewClient creates a new client with the given config.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Set CHARM_HOST before any KV operations
	if err := os.Setenv("CHARM_HOST", cfg.CharmHost); err != nil {
		return nil, err
	}

	return &Client{
		dbName:   DBName,
		autoSync: cfg.AutoSync,
	}, nil
}

func key(collection, id string) []byte {
	return []byte(collection + ":" + id)
}

// List returns all documents of a collection sorted by id. A locked
// database is read in read-only mode without pulling cloud changes.
func (c *Client) List(_ context.Context, collection string) ([]docstore.Document, error) {
	if err := docstore.ValidateCollection(collection); err != nil {
		return nil, err
	}
	prefix := []byte(collection + ":")
	docs := []docstore.Document{}

	err := c.read(func(k *kv.KV) error {
		keys, err := k.Keys()
		if err != nil {
			return fmt.Errorf("list keys: %w", err)
		}

		for _, key := range keys {
			if !bytes.HasPrefix(key, prefix) {
				continue
			}
			data, err := k.Get(key)
			if err != nil {
				return fmt.Errorf("get document %s: %w", key, err)
			}
			docs = append(docs, docstore.Document{
				ID:   string(bytes.TrimPrefix(key, prefix)),
				Data: data,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Create stores a document under a new id.
func (c *Client) Create(ctx context.Context, collection string, data []byte) (string, error) {
	id := docstore.NewID()
	if err := c.Replace(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Replace writes the document, creating it if absent. Every commit is
// backed up to the Charm server.
func (c *Client) Replace(_ context.Context, collection, id string, data []byte) error {
	if err := docstore.ValidateCollection(collection); err != nil {
		return err
	}
	return c.write(func(k *kv.KV) error {
		if err := k.Set(key(collection, id), data); err != nil {
			return fmt.Errorf("set document: %w", err)
		}
		return nil
	})
}

// Delete removes the document.
func (c *Client) Delete(_ context.Context, collection, id string) error {
	if err := docstore.ValidateCollection(collection); err != nil {
		return err
	}
	return c.write(func(k *kv.KV) error {
		if err := k.Delete(key(collection, id)); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		return nil
	})
}

// write opens the database with write access for the duration of fn.
func (c *Client) write(fn func(k *kv.KV) error) error {
	k, err := kv.OpenWithDefaults(c.dbName)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.dbName, err)
	}
	defer func() { _ = k.Close() }()
	return fn(k)
}

// read opens the database for fn, falling back to read-only access when
// another process holds the lock.
func (c *Client) read(fn func(k *kv.KV) error) error {
	k, err := kv.OpenWithDefaultsFallback(c.dbName)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.dbName, err)
	}
	defer func() { _ = k.Close() }()
	if c.autoSync && !k.IsReadOnly() {
		if err := k.Sync(); err != nil {
			return fmt.Errorf("pull %s: %w", c.dbName, err)
		}
	}
	return fn(k)
}

// Sync pulls changes from the charm server.
func (c *Client) Sync() error {
	return c.write(func(k *kv.KV) error {
		return k.Sync()
	})
}

// Reset deletes the local database and rebuilds it from the charm server.
func (c *Client) Reset() error {
	return c.write(func(k *kv.KV) error {
		return k.Reset()
	})
}

// Close is a no-op. Connections are closed after each operation.
func (c *Client) Close() error {
	return nil
}
