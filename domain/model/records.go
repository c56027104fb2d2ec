package model

// ValueKey is the field name used when a scalar is wrapped into a row.
const ValueKey = "value"

// InferRecords selects the part of value that holds the table rows.
//
//   - An array of objects is returned as is.
//   - An array with any non-object element has every element wrapped as {"value": element}.
//   - An object is scanned in key order for its first array member, which is
//     then treated as above. Later array members are ignored.
//   - An object without array members is the single row.
//   - A scalar becomes the single row {"value": scalar}.
//
// An empty array yields no rows.
func InferRecords(value any) []any {
	switch v := value.(type) {
	case []any:
		return rowsFromArray(v)
	case *Object:
		for _, k := range v.keys {
			if arr, ok := v.values[k].([]any); ok {
				return rowsFromArray(arr)
			}
		}
		return []any{v}
	default:
		return []any{wrapValue(v)}
	}
}

func rowsFromArray(arr []any) []any {
	allObjects := true
	for _, elem := range arr {
		if _, ok := elem.(*Object); !ok {
			allObjects = false
			break
		}
	}

	rows := make([]any, len(arr))
	for i, elem := range arr {
		if allObjects {
			rows[i] = elem
		} else {
			rows[i] = wrapValue(elem)
		}
	}
	return rows
}

func wrapValue(v any) *Object {
	obj := NewObject()
	obj.Set(ValueKey, v)
	return obj
}
