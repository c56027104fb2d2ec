package jsontools

import (
	"context"
	"io"

	"github.com/damian-dev1/json-tools-and-utilities/sink"
)

// Document is one repaired and decoded input.
type Document struct {
	// Name is the table name derived from the input.
	Name string
	// Path is the input path, empty for reader inputs.
	Path string
	// Repair holds the repaired text and the applied steps.
	Repair *RepairResult
	// Value is the decoded document after the optional select expression.
	Value any

	separator string
}

// Separator returns the separator used to flatten the document.
func (d *Document) Separator() string {
	if d.separator == "" {
		return DefaultSeparator
	}
	return d.separator
}

// Table builds the typed table of the document.
func (d *Document) Table(ctx context.Context) (*Table, error) {
	return BuildTable(ctx, d.Value, d.Separator())
}

// Export writes the document to w. The separator of opts is replaced by the
// one the document was loaded with.
func (d *Document) Export(ctx context.Context, w io.Writer, opts ExportOptions) error {
	return Export(ctx, w, d.Value, opts.WithSeparator(d.Separator()))
}

// Store writes the document as a table named after it.
func (d *Document) Store(ctx context.Context, w sink.Writer, policy CollisionPolicy) (int64, error) {
	return ToTable(ctx, w, d.Value, d.Separator(), d.Name, policy)
}
