package jsontools

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
)

// arrowType maps a column type to its Arrow storage type.
func arrowType(ct ColumnType) arrow.DataType {
	switch ct {
	case ColumnTypeInteger:
		return arrow.PrimitiveTypes.Int64
	case ColumnTypeReal:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// arrowSchema builds a nullable Arrow schema with one field per column,
// named by its sanitized identifier.
func arrowSchema(table *Table) (*arrow.Schema, error) {
	idents, err := table.Identifiers()
	if err != nil {
		return nil, err
	}
	fields := make([]arrow.Field, len(idents))
	for i, col := range table.Columns() {
		fields[i] = arrow.Field{Name: idents[i], Type: arrowType(col.Type), Nullable: true}
	}
	return arrow.NewSchema(fields, nil), nil
}

// writeParquet writes table as a single row group parquet file.
func writeParquet(w io.Writer, table *Table) error {
	schema, err := arrowSchema(table)
	if err != nil {
		return err
	}

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	for _, row := range table.Rows() {
		for i, cell := range row {
			appendArrowCell(builder.Field(i), cell)
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	// The parquet writer closes its sink; the caller owns w.
	fw, err := pqarrow.NewFileWriter(schema, struct{ io.Writer }{w}, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := fw.Write(record); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to write parquet record: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func appendArrowCell(b array.Builder, cell any) {
	if cell == nil {
		b.AppendNull()
		return
	}
	switch fb := b.(type) {
	case *array.Int64Builder:
		if v, ok := cell.(int64); ok {
			fb.Append(v)
			return
		}
	case *array.Float64Builder:
		if v, ok := cell.(float64); ok {
			fb.Append(v)
			return
		}
	case *array.StringBuilder:
		if v, ok := cell.(string); ok {
			fb.Append(v)
			return
		}
	}
	b.AppendNull()
}
