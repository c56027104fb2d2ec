package jsontools

import (
	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
)

// Object is an insertion-ordered JSON object.
type Object = model.Object

// ParseError is the location of the first syntax error in a JSON text.
type ParseError = model.ParseError

// RepairReport lists the repair steps applied to a text.
type RepairReport = model.RepairReport

// RepairOptions tunes Repair.
type RepairOptions = model.RepairOptions

// FlatRow maps a flattened path to a scalar value.
type FlatRow = model.FlatRow

// Table is the typed, column-sorted form of a record set.
type Table = model.Table

// ColumnInfo is a column name with its inferred type.
type ColumnInfo = model.ColumnInfo

// ColumnType is the storage type of a column.
type ColumnType = model.ColumnType

// OutputFormat is a tabular output format.
type OutputFormat = model.OutputFormat

// CompressionType is an output or input compression.
type CompressionType = model.CompressionType

// ExportOptions configures tabular export.
type ExportOptions = model.ExportOptions

// CollisionPolicy decides what happens when a persisted table already exists.
type CollisionPolicy = model.CollisionPolicy

// PathEntry is a node path with its kind.
type PathEntry = model.PathEntry

// Column types
const (
	ColumnTypeText    = model.ColumnTypeText
	ColumnTypeInteger = model.ColumnTypeInteger
	ColumnTypeReal    = model.ColumnTypeReal
)

// Output formats
const (
	OutputFormatCSV     = model.OutputFormatCSV
	OutputFormatTSV     = model.OutputFormatTSV
	OutputFormatLTSV    = model.OutputFormatLTSV
	OutputFormatParquet = model.OutputFormatParquet
	OutputFormatXLSX    = model.OutputFormatXLSX
)

// Compression types
const (
	CompressionNone = model.CompressionNone
	CompressionGZ   = model.CompressionGZ
	CompressionBZ2  = model.CompressionBZ2
	CompressionXZ   = model.CompressionXZ
	CompressionZSTD = model.CompressionZSTD
)

// Collision policies
const (
	CollisionError   = model.CollisionError
	CollisionReplace = model.CollisionReplace
	CollisionAppend  = model.CollisionAppend
)

// DefaultSeparator joins flattened path segments.
const DefaultSeparator = model.DefaultSeparator

// NewExportOptions returns CSV, uncompressed, "." separated export options.
func NewExportOptions() ExportOptions {
	return model.NewExportOptions()
}

// TryParse validates text as strict JSON. It returns nil for valid text.
func TryParse(text string) *ParseError {
	return model.TryParse(text)
}

// Decode parses strict JSON into ordered values.
func Decode(text string) (any, error) {
	return model.Decode(text)
}

// Pretty re-serializes a value with a two-space indent.
func Pretty(value any) (string, error) {
	return model.Pretty(value)
}

// Lookup resolves a simple JSONPath inside value.
func Lookup(value any, path string) (any, error) {
	return model.Lookup(value, path)
}

// Paths lists every node of value with its JSONPath.
func Paths(value any) []PathEntry {
	return model.Paths(value)
}

// ToDelimitedText converts value to CSV, TSV or LTSV text.
func ToDelimitedText(value any, sep string, format OutputFormat) (string, error) {
	return model.ToDelimitedText(value, sep, format)
}

// ParseOutputFormat maps a format name such as "csv" or "parquet" to OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	return model.ParseOutputFormat(name)
}

// ParseCompressionType maps a name such as "gz" or "zstd" to CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	return model.ParseCompressionType(name)
}

// ParseCollisionPolicy maps "error", "replace" or "append" to CollisionPolicy.
func ParseCollisionPolicy(name string) (CollisionPolicy, error) {
	return model.ParseCollisionPolicy(name)
}
