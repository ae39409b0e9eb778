// Package kv provides the single-key persistence backends the tracker stores
// its state in. A value is always read and written whole.
package kv

import (
	"context"
	"fmt"
)

// Store is a minimal key/value store. Get returns (nil, nil) when the key
// is absent. Put replaces the whole value in one write.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backends.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Open opens the named backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(path)
	case BackendBolt:
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
