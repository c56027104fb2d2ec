// Package sink persists typed tables into databases.
//
// Backends register themselves under a kind from an init function:
//
//	sqlite     modernc.org/sqlite
//	postgres   github.com/jackc/pgx/v5
//	mysql      github.com/go-sql-driver/mysql
//	sqlserver  github.com/microsoft/go-mssqldb
//	mongodb    go.mongodb.org/mongo-driver/v2
//
// Open selects a backend by kind and connects it with the given DSN.
package sink

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
)

// ErrUnsupportedKind is returned by Open for a kind nobody registered.
var ErrUnsupportedKind = errors.New("jsontools: unsupported sink kind")

// Config selects and connects a backend.
type Config struct {
	Kind string
	DSN  string
}

// Writer stores a table under a name.
type Writer interface {
	// WriteTable creates or reuses the table called name according to policy
	// and inserts every row of table. It returns the number of rows written.
	// The name is sanitized with model.SanitizeTableName.
	WriteTable(ctx context.Context, name string, table *model.Table, policy model.CollisionPolicy) (int64, error)
	// Close releases the connection.
	Close() error
}

// Factory connects a backend.
type Factory func(ctx context.Context, cfg Config) (Writer, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind. It panics if kind is empty,
// f is nil or kind is already registered.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if kind == "" {
		panic("sink: Register called with empty kind")
	}
	if f == nil {
		panic("sink: Register called with nil factory")
	}
	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("sink: factory already registered for kind=%q", kind))
	}
	factories[kind] = f
}

// Open connects the backend registered under cfg.Kind.
func Open(ctx context.Context, cfg Config) (Writer, error) {
	if cfg.Kind == "" {
		return nil, fmt.Errorf("%w: empty kind", ErrUnsupportedKind)
	}

	mu.RLock()
	f := factories[cfg.Kind]
	mu.RUnlock()

	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, cfg.Kind)
	}
	return f(ctx, cfg)
}

// Kinds lists the registered backend kinds in sorted order.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
