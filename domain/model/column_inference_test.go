package model

import (
	"encoding/json"
	"testing"
)

func TestInferColumnType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []any
		expected ColumnType
	}{
		{
			name:     "integers with null",
			values:   []any{json.Number("1"), json.Number("2"), nil},
			expected: ColumnTypeInteger,
		},
		{
			name:     "integer and real widen to real",
			values:   []any{json.Number("1"), json.Number("2.5")},
			expected: ColumnTypeReal,
		},
		{
			name:     "string disqualifies numbers",
			values:   []any{json.Number("1"), "x"},
			expected: ColumnTypeText,
		},
		{
			name:     "only nulls default to text",
			values:   []any{nil, nil},
			expected: ColumnTypeText,
		},
		{
			name:     "no values default to text",
			values:   nil,
			expected: ColumnTypeText,
		},
		{
			name:     "booleans vote integer",
			values:   []any{true, false, nil},
			expected: ColumnTypeInteger,
		},
		{
			name:     "boolean with real is real",
			values:   []any{true, json.Number("0.5")},
			expected: ColumnTypeReal,
		},
		{
			name:     "whole number written as decimal is real",
			values:   []any{json.Number("2.0")},
			expected: ColumnTypeReal,
		},
		{
			name:     "exponent is real",
			values:   []any{json.Number("1e3")},
			expected: ColumnTypeReal,
		},
		{
			name:     "negative integers",
			values:   []any{json.Number("-123"), json.Number("456")},
			expected: ColumnTypeInteger,
		},
		{
			name:     "integer beyond int64 is real",
			values:   []any{json.Number("99999999999999999999")},
			expected: ColumnTypeReal,
		},
		{
			name:     "string after reals short-circuits",
			values:   []any{json.Number("1.5"), "abc", json.Number("2")},
			expected: ColumnTypeText,
		},
		{
			name:     "native integer and float",
			values:   []any{int64(3), 4.5},
			expected: ColumnTypeReal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := InferColumnType(tt.values)
			if result != tt.expected {
				t.Errorf("InferColumnType(%v) = %v, want %v", tt.values, result, tt.expected)
			}
		})
	}
}

func TestColumnTypeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		columnType ColumnType
		expected   string
	}{
		{ColumnTypeText, "TEXT"},
		{ColumnTypeInteger, "INTEGER"},
		{ColumnTypeReal, "REAL"},
		{ColumnType(99), "TEXT"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			if got := tt.columnType.String(); got != tt.expected {
				t.Errorf("ColumnType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}
