//go:generate go run go.uber.org/mock/mockgen -source=kv.go -destination=kvmock/mock_kv.go -package=kvmock

// Package kv provides the flat string key-value store that messages are persisted to,
// with in-memory, Badger and SQLite backends.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown kv backend")

// Entry is one key/value pair.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Store is a flat string to string store.
type Store interface {
	// Entries returns every entry. Order is whatever the backend yields.
	Entries(ctx context.Context) ([]Entry, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Backend returns the backend name.
	Backend() string

	// Close releases the store.
	Close() error
}

// Open opens the named backend. path is ignored by the memory backend; for badger it
// is a directory, for sqlite a database file.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendBadger:
		return NewBadgerStore(path)
	case BackendSQLite, "":
		return NewSQLiteStore(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
