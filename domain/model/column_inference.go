package model

import (
	"encoding/json"
	"strconv"
)

// ColumnType represents the storage type of a column
type ColumnType int

const (
	// ColumnTypeText represents TEXT column type
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
	// ColumnTypeReal represents REAL column type
	ColumnTypeReal
)

const (
	sqlTypeText    = "TEXT"
	sqlTypeInteger = "INTEGER"
	sqlTypeReal    = "REAL"
)

// String returns the SQL column type string
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeInteger:
		return sqlTypeInteger
	case ColumnTypeReal:
		return sqlTypeReal
	default:
		return sqlTypeText
	}
}

// ColumnInfo represents column information with name and inferred type
type ColumnInfo struct {
	Name string
	Type ColumnType
}

// InferColumnType infers the column type from every value observed for it.
//
// nil values are skipped. Booleans and integral numbers vote INTEGER, other
// numbers vote REAL. A single string makes the column TEXT. INTEGER and REAL
// votes together widen to REAL. A column with no votes is TEXT.
func InferColumnType(values []any) ColumnType {
	hasInteger := false
	hasReal := false

	for _, value := range values {
		switch v := value.(type) {
		case nil:
			continue
		case bool:
			hasInteger = true
		case json.Number:
			if isIntegral(v) {
				hasInteger = true
			} else {
				hasReal = true
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			hasInteger = true
		case float32, float64:
			hasReal = true
		default:
			// Strings and anything else disqualify the numeric types
			return ColumnTypeText
		}
	}

	if hasReal {
		return ColumnTypeReal
	}
	if hasInteger {
		return ColumnTypeInteger
	}
	return ColumnTypeText
}

// isIntegral reports whether the literal is a whole number that fits in int64.
// "2.0" and "1e3" are not integral.
func isIntegral(n json.Number) bool {
	_, err := strconv.ParseInt(n.String(), 10, 64)
	return err == nil
}
