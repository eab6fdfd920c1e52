// Package kv provides the durable key-value backends that the store snapshots
// its full state into. Backends hold opaque payloads under string keys; the
// store owns serialization.
package kv

import (
	"context"
	"errors"
)

// Driver identifies a concrete durable backend implementation.
type Driver string

const (
	// DriverMemory represents the in-memory implementation (tests / ephemeral).
	DriverMemory Driver = "memory"
	// DriverSQLite represents the embedded sqlite file implementation.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres represents a PostgreSQL server implementation.
	DriverPostgres Driver = "postgres"
	// DriverS3 represents an S3 / MinIO compatible implementation.
	DriverS3 Driver = "s3"
)

// ErrCapacityExceeded is returned by Save when the backend rejects a payload
// for size reasons. The store treats it as a non-fatal warning.
var ErrCapacityExceeded = errors.New("kv: capacity exceeded")

// Store is a minimal abstraction over durable backends. Load reports ok=false
// when the key has never been written; that is not an error.
type Store interface {
	Load(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Save(ctx context.Context, key string, payload []byte) error
	Driver() Driver
}
