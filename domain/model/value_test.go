package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, text string) any {
	t.Helper()
	v, err := Decode(text)
	require.NoError(t, err)
	return v
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("object keeps key order", func(t *testing.T) {
		t.Parallel()

		v := mustDecode(t, `{"z": 1, "a": {"y": true, "b": null}, "m": [1, "x"]}`)
		obj, ok := v.(*Object)
		require.True(t, ok)
		assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())
		assert.Equal(t, 3, obj.Len())

		inner, _ := obj.Get("a")
		assert.Equal(t, []string{"y", "b"}, inner.(*Object).Keys())

		arr, _ := obj.Get("m")
		assert.Equal(t, []any{json.Number("1"), "x"}, arr)
	})

	t.Run("numbers keep their literal", func(t *testing.T) {
		t.Parallel()

		v := mustDecode(t, `[1, 2.0, 1e3, -0.5]`)
		assert.Equal(t, []any{json.Number("1"), json.Number("2.0"), json.Number("1e3"), json.Number("-0.5")}, v)
	})

	t.Run("duplicate key keeps first position and last value", func(t *testing.T) {
		t.Parallel()

		obj := mustDecode(t, `{"a": 1, "b": 2, "a": 3}`).(*Object)
		assert.Equal(t, []string{"a", "b"}, obj.Keys())
		a, _ := obj.Get("a")
		assert.Equal(t, json.Number("3"), a)
	})

	t.Run("scalars", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, mustDecode(t, `null`))
		assert.Equal(t, true, mustDecode(t, `true`))
		assert.Equal(t, "s", mustDecode(t, `"s"`))
		assert.Equal(t, []any{}, mustDecode(t, `[]`))
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := Decode(`{"a":}`)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 1, perr.Line)
		assert.ErrorIs(t, err, ErrParseFailure)
	})
}

func TestObjectKeysIsCopy(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	obj.Set("a", 1)
	keys := obj.Keys()
	keys[0] = "changed"
	assert.Equal(t, []string{"a"}, obj.Keys())
}

func TestPrettyAndCompact(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, `{"b":[1,2],"a":{"<x>":"é & ü"},"c":{},"d":[]}`)

	pretty, err := Pretty(v)
	require.NoError(t, err)
	assert.Equal(t, `{
  "b": [
    1,
    2
  ],
  "a": {
    "<x>": "é & ü"
  },
  "c": {},
  "d": []
}`, pretty)

	compact, err := Compact(v)
	require.NoError(t, err)
	assert.Equal(t, `{"b":[1,2],"a":{"<x>":"é & ü"},"c":{},"d":[]}`, compact)
}

func TestRoundTripPreservesValue(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"a":1,"b":[true,null,"x"],"c":{"d":2.50}}`,
		`[{"k":"v"},{"k":"w"}]`,
		`"plain"`,
	}
	for _, input := range inputs {
		compact, err := Compact(mustDecode(t, input))
		require.NoError(t, err)
		assert.Equal(t, input, compact)
	}
}
