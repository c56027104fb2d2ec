package jsontools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	"github.com/itchyny/gojq"
)

// SelectRecords runs a jq expression over value and returns what it yields.
// A single result is returned as is; several results are collected into an
// array so that record inference sees one row per result.
//
// Objects produced by the query have their keys in sorted order.
func SelectRecords(ctx context.Context, value any, expr string) (any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	var results []any
	iter := code.RunWithContext(ctx, toQueryValue(value))
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return nil, fmt.Errorf("failed to evaluate %q: %w", expr, err)
		}
		results = append(results, fromQueryValue(v))
	}

	switch len(results) {
	case 0:
		return []any{}, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// toQueryValue converts an ordered value into the plain maps, slices and
// numbers the query engine works on.
func toQueryValue(v any) any {
	switch x := v.(type) {
	case *model.Object:
		m := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			child, _ := x.Get(k)
			m[k] = toQueryValue(child)
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i, child := range x {
			out[i] = toQueryValue(child)
		}
		return out
	case json.Number:
		if n, err := x.Int64(); err == nil && n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
		if b, ok := new(big.Int).SetString(x.String(), 10); ok {
			return b
		}
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		return f
	default:
		return v
	}
}

// fromQueryValue converts a query result back into the ordered value model.
func fromQueryValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := model.NewObject()
		for _, k := range keys {
			obj.Set(k, fromQueryValue(x[k]))
		}
		return obj
	case []any:
		out := make([]any, len(x))
		for i, child := range x {
			out[i] = fromQueryValue(child)
		}
		return out
	case int:
		return json.Number(strconv.Itoa(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return json.Number(strconv.FormatFloat(x, 'f', -1, 64))
	case *big.Int:
		return json.Number(x.String())
	default:
		return v
	}
}
