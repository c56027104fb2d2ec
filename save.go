package jsontools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/damian-dev1/json-tools-and-utilities/sink"
	"github.com/spf13/afero"
)

// StoreResult reports how many rows were written to one table.
type StoreResult struct {
	Table string
	Rows  int64
}

// StoreDocuments writes every document as its own table through w. All
// tables are built before the first write, so a document that cannot be
// tabulated leaves the sink untouched.
func StoreDocuments(ctx context.Context, w sink.Writer, docs []*Document, policy CollisionPolicy) ([]StoreResult, error) {
	tables := make([]*namedTable, 0, len(docs))
	for _, doc := range docs {
		table, err := doc.Table(ctx)
		if err != nil {
			return nil, NewErrorContext("store", doc.Path).WithTable(doc.Name).Error(err)
		}
		tables = append(tables, newNamedTable(doc.Name, table))
	}

	results := make([]StoreResult, 0, len(tables))
	for _, nt := range tables {
		n, err := w.WriteTable(ctx, nt.getName(), nt.getTable(), policy)
		if err != nil {
			return results, NewErrorContext("store", "").WithTable(nt.getName()).Error(err)
		}
		results = append(results, StoreResult{Table: nt.getName(), Rows: n})
	}
	return results, nil
}

// DumpDocuments exports every document into outputDir on fs, one file per
// document named after its table, and returns the written paths.
func DumpDocuments(ctx context.Context, fs afero.Fs, docs []*Document, outputDir string, opts ExportOptions) ([]string, error) {
	if err := newValidator(fs).validateOutputDirectory(outputDir); err != nil {
		return nil, err
	}
	if err := fs.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, len(docs))
	for _, doc := range docs {
		nt := newNamedTable(doc.Name, nil)
		outputPath := filepath.Join(outputDir, nt.getName()+opts.FileExtension())
		if err := ExportFile(ctx, fs, outputPath, doc.Value, opts.WithSeparator(doc.Separator())); err != nil {
			return written, fmt.Errorf("failed to export table %s: %w", nt.getName(), err)
		}
		written = append(written, outputPath)
	}
	return written, nil
}
