// ABOUTME: Badger document store implementation
// ABOUTME: Embedded key-value persistence with collection-prefixed keys

package badgerdb

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
	"github.com/harper/mapdraw/internal/docstore"
)

// DirName is the badger directory created inside the data directory.
const DirName = "badger"

// DB implements docstore.Store on top of badger.
type DB struct {
	db *badger.DB
}

// Compile-time check that DB implements Store.
var _ docstore.Store = (*DB)(nil)

// Open opens (or creates) a badger database in dir. A nil logger silences
// badger's own output.
func Open(dir string, logger *log.Logger) (*DB, error) {
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	opts := badger.DefaultOptions(dir)
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &DB{db: db}, nil
}

func key(collection, id string) []byte {
	return []byte(collection + ":" + id)
}

// List returns all documents of a collection in key order.
func (d *DB) List(_ context.Context, collection string) ([]docstore.Document, error) {
	if err := docstore.ValidateCollection(collection); err != nil {
		return nil, err
	}
	prefix := []byte(collection + ":")
	docs := []docstore.Document{}

	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			k := item.KeyCopy(nil)
			val, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read %s: %w", k, err)
			}
			docs = append(docs, docstore.Document{
				ID:   string(bytes.TrimPrefix(k, prefix)),
				Data: val,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Create stores a document under a new id.
func (d *DB) Create(ctx context.Context, collection string, data []byte) (string, error) {
	id := docstore.NewID()
	if err := d.Replace(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Replace writes the document, creating it if absent.
func (d *DB) Replace(_ context.Context, collection, id string, data []byte) error {
	if err := docstore.ValidateCollection(collection); err != nil {
		return err
	}
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(collection, id), data)
	})
	if err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

// Delete removes the document.
func (d *DB) Delete(_ context.Context, collection, id string) error {
	if err := docstore.ValidateCollection(collection); err != nil {
		return err
	}
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(collection, id))
	})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Close flushes and closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// badgerLogger routes badger's internal messages through the app logger.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Errorf(format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warnf(format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debugf(format, args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debugf(format, args...)
}
