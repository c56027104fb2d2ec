// Package logger builds the structured logger used by the command line tool,
// the file watcher and the MCP server.
package logger

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Well-known keys attached to every command logger.
const (
	RootCommandKey = "root"
	SubCommandKey  = "cmd"
	FileKey        = "file"
	TableKey       = "table"
)

// New returns a JSON logger writing one object per line to w.
// Verbose enables V(1) messages.
func New(w io.Writer, verbose bool) logr.Logger {
	if w == nil {
		return logr.Discard()
	}

	verbosity := 0
	if verbose {
		verbosity = 1
	}

	var mu sync.Mutex
	return funcr.NewJSON(func(obj string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, obj)
	}, funcr.Options{
		LogTimestamp: true,
		Verbosity:    verbosity,
	})
}

// WithValues adds key/value pairs to lgr.
func WithValues(lgr logr.Logger, kv ...any) logr.Logger {
	return lgr.WithValues(kv...)
}

// WithLogger stores lgr in ctx.
func WithLogger(ctx context.Context, lgr logr.Logger) context.Context {
	return logr.NewContext(ctx, lgr)
}

// FromContext returns the logger stored in ctx, or a logger that drops
// everything.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}
