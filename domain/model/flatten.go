package model

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// DefaultSeparator joins path segments when the caller does not choose one.
const DefaultSeparator = "."

// parallelFlattenThreshold is the record count from which FlattenRecords fans out.
const parallelFlattenThreshold = 512

// FlatRow maps a path to a scalar value (nil, bool, json.Number or string).
type FlatRow map[string]any

// Flatten collapses value into a single-level row. Object members extend the
// path with their key, array elements with their decimal index, joined by sep.
// sep is used literally. Empty objects and arrays contribute nothing.
// When two paths render to the same string the later one wins.
func Flatten(value any, prefix, sep string) FlatRow {
	row := FlatRow{}
	flattenInto(row, value, prefix, sep)
	return row
}

func flattenInto(row FlatRow, value any, prefix, sep string) {
	switch v := value.(type) {
	case *Object:
		for _, k := range v.keys {
			flattenInto(row, v.values[k], joinPath(prefix, k, sep), sep)
		}
	case []any:
		for i, elem := range v {
			flattenInto(row, elem, joinPath(prefix, strconv.Itoa(i), sep), sep)
		}
	default:
		row[prefix] = v
	}
}

func joinPath(prefix, segment, sep string) string {
	if prefix == "" {
		return segment
	}
	return prefix + sep + segment
}

// FlattenRecords flattens every record with an empty prefix. Large inputs are
// flattened concurrently; the result order always matches records.
func FlattenRecords(ctx context.Context, records []any, sep string) ([]FlatRow, error) {
	rows := make([]FlatRow, len(records))
	if len(records) < parallelFlattenThreshold {
		for i, rec := range records {
			rows[i] = Flatten(rec, "", sep)
		}
		return rows, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = Flatten(rec, "", sep)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
