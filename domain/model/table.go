package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultColumnName replaces a column identifier that sanitizes to nothing.
	DefaultColumnName = "col"
	// DefaultTableName replaces a table identifier that sanitizes to nothing.
	DefaultTableName = "data"
)

var identifierPattern = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Table is the typed, column-sorted form of a set of flat rows.
type Table struct {
	columns []ColumnInfo
	rows    [][]any
}

// BuildTable derives the schema and typed rows from flat rows.
// Columns are the lexicographically sorted union of all row keys. Empty strings
// are treated as nil both for inference and in the materialized rows. Rows
// without any keys are reported as ErrEmptyRecordSet.
func BuildTable(rows []FlatRow) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyRecordSet
	}

	names := ColumnNames(rows)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrEmptyRecordSet)
	}
	columns := make([]ColumnInfo, len(names))
	for i, name := range names {
		values := make([]any, len(rows))
		for j, row := range rows {
			values[j] = normalizeCell(row[name])
		}
		columns[i] = ColumnInfo{Name: name, Type: InferColumnType(values)}
	}

	materialized := make([][]any, len(rows))
	for j, row := range rows {
		record := make([]any, len(columns))
		for i, col := range columns {
			record[i] = coerceCell(normalizeCell(row[col.Name]), col.Type)
		}
		materialized[j] = record
	}

	return &Table{columns: columns, rows: materialized}, nil
}

// ColumnNames returns the sorted union of the keys of rows.
func ColumnNames(rows []FlatRow) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Columns returns the column schema in order.
func (t *Table) Columns() []ColumnInfo {
	return t.columns
}

// Header returns the raw column names.
func (t *Table) Header() []string {
	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.Name
	}
	return header
}

// Rows returns the materialized rows. Cells are nil, int64, float64 or string
// according to the column type.
func (t *Table) Rows() [][]any {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Identifiers returns the sanitized column names. Two columns that sanitize
// to the same identifier are reported as ErrDuplicateColumnName.
func (t *Table) Identifiers() ([]string, error) {
	idents := make([]string, len(t.columns))
	owner := make(map[string]string, len(t.columns))
	for i, c := range t.columns {
		ident := SanitizeIdentifier(c.Name)
		if prev, ok := owner[ident]; ok {
			return nil, fmt.Errorf("%w: %q and %q both map to %q", ErrDuplicateColumnName, prev, c.Name, ident)
		}
		owner[ident] = c.Name
		idents[i] = ident
	}
	return idents, nil
}

// SanitizeIdentifier makes name safe as a column identifier: surrounding
// spaces are trimmed, an empty name becomes "col", and every character outside
// [A-Za-z0-9_] becomes '_'.
func SanitizeIdentifier(name string) string {
	return sanitize(name, DefaultColumnName)
}

// SanitizeTableName is SanitizeIdentifier with "data" as the fallback name.
func SanitizeTableName(name string) string {
	return sanitize(name, DefaultTableName)
}

func sanitize(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return identifierPattern.ReplaceAllString(name, "_")
}

func normalizeCell(v any) any {
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	return v
}

func coerceCell(v any, ct ColumnType) any {
	if v == nil {
		return nil
	}

	switch ct {
	case ColumnTypeInteger:
		switch x := v.(type) {
		case bool:
			return boolToInt(x)
		case json.Number:
			n, err := x.Int64()
			if err == nil {
				return n
			}
		}
	case ColumnTypeReal:
		switch x := v.(type) {
		case bool:
			return float64(boolToInt(x))
		case json.Number:
			// Literals beyond float64 range become ±Inf.
			f, err := x.Float64()
			if err == nil || errors.Is(err, strconv.ErrRange) {
				return f
			}
		}
	}

	switch x := v.(type) {
	case string:
		return x
	case bool:
		return fmt.Sprint(boolToInt(x))
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
