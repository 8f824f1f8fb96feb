package backend

import (
	"context"

	"maeum/internal/amqp"
	"maeum/internal/core"
)

// Store is the record store contract shared by every backend.
type Store interface {
	// Load returns every record ordered by date. It never fails; problems
	// with the underlying storage degrade to an empty list.
	Load(ctx context.Context) []core.Record

	// Upsert saves rec, replacing the record with the same date and keeping
	// its weather when rec carries none. Only write failures are returned.
	Upsert(ctx context.Context, rec core.Record) error
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the store, the optional event publisher and a
// cleanup function releasing both.
type BackendResult struct {
	Store     Store
	Publisher *amqp.Client
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// JSON specific
	RecordsFile string

	// SQLite specific
	SQLiteDBPath string

	// Record-saved events, optional for every backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	JSONBackend   BackendType = "json"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case JSONBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
