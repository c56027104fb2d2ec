package jsontools

import (
	"context"
	"fmt"
	"io"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	"github.com/damian-dev1/json-tools-and-utilities/sink"
	"github.com/spf13/afero"
)

// FlattenValue infers the records of value and flattens each one with sep.
func FlattenValue(ctx context.Context, value any, sep string) ([]FlatRow, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	return model.FlattenRecords(ctx, model.InferRecords(value), sep)
}

// BuildTable infers records from value, flattens them and types every column.
func BuildTable(ctx context.Context, value any, sep string) (*Table, error) {
	rows, err := FlattenValue(ctx, value, sep)
	if err != nil {
		return nil, err
	}
	return model.BuildTable(rows)
}

// ToTable writes value as a table named tableName through w and returns the
// number of stored rows. An existing table is handled according to policy.
func ToTable(ctx context.Context, w sink.Writer, value any, sep, tableName string, policy CollisionPolicy) (int64, error) {
	ec := NewErrorContext("to table", "").WithTable(model.SanitizeTableName(tableName))

	table, err := BuildTable(ctx, value, sep)
	if err != nil {
		return 0, ec.Error(err)
	}
	n, err := w.WriteTable(ctx, tableName, table, policy)
	if err != nil {
		return 0, ec.Error(err)
	}
	return n, nil
}

// Export writes value to w in the format and compression named by opts.
func Export(ctx context.Context, w io.Writer, value any, opts ExportOptions) (err error) {
	cw, closeWriter, err := NewCompressionHandler(opts.Compression).CreateWriter(w)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeWriter(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to finish compressed stream: %w", closeErr)
		}
	}()

	if opts.Format.IsDelimited() {
		rows, err := FlattenValue(ctx, value, opts.Separator)
		if err != nil {
			return err
		}
		return model.WriteDelimited(cw, rows, opts.Format)
	}

	table, err := BuildTable(ctx, value, opts.Separator)
	if err != nil {
		return err
	}
	switch opts.Format {
	case OutputFormatParquet:
		return writeParquet(cw, table)
	case OutputFormatXLSX:
		return writeXLSX(cw, table, opts.SheetName)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, opts.Format)
	}
}

// ExportFile writes value to path on fs. When opts carries no compression the
// compression is taken from the path suffix.
func ExportFile(ctx context.Context, fs afero.Fs, path string, value any, opts ExportOptions) error {
	ec := NewErrorContext("export", path)

	factory := NewCompressionFactory(fs)
	if opts.Compression == CompressionNone {
		opts = opts.WithCompression(factory.DetectCompressionType(path))
	}

	f, err := factory.fs.Create(path)
	if err != nil {
		return ec.Error(err)
	}
	if err := Export(ctx, f, value, opts); err != nil {
		_ = f.Close()
		return ec.Error(err)
	}
	if err := f.Close(); err != nil {
		return ec.Error(err)
	}
	return nil
}
