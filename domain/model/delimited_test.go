package model

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDelimitedText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		sep    string
		format OutputFormat
		want   string
	}{
		{
			name:   "csv with sorted header and missing cells",
			input:  `[{"b":1,"a":"x"},{"c":true,"a":null}]`,
			sep:    ".",
			format: OutputFormatCSV,
			want:   "a,b,c\nx,1,\n,,true\n",
		},
		{
			name:   "csv quoting",
			input:  `[{"t":"a,b"},{"t":"say \"hi\""},{"t":"line\nbreak"}]`,
			sep:    ".",
			format: OutputFormatCSV,
			want:   "t\n\"a,b\"\n\"say \"\"hi\"\"\"\n\"line\nbreak\"\n",
		},
		{
			name:   "nested object flattened",
			input:  `{"items":[{"id":1,"tags":["x","y"],"meta":{"ok":false}}],"total":1}`,
			sep:    "_",
			format: OutputFormatCSV,
			want:   "id,meta_ok,tags_0,tags_1\n1,false,x,y\n",
		},
		{
			name:   "tsv",
			input:  `[{"a":1.50,"b":"x y"}]`,
			sep:    ".",
			format: OutputFormatTSV,
			want:   "a\tb\n1.50\tx y\n",
		},
		{
			name:   "scalar array",
			input:  `[1,2,3]`,
			sep:    ".",
			format: OutputFormatCSV,
			want:   "value\n1\n2\n3\n",
		},
		{
			name:   "empty separator means dot",
			input:  `[{"a":{"b":1}}]`,
			sep:    "",
			format: OutputFormatCSV,
			want:   "a.b\n1\n",
		},
		{
			name:   "ltsv skips nulls",
			input:  `[{"a":1,"b":null,"c d":"x\ty"}]`,
			sep:    ".",
			format: OutputFormatLTSV,
			want:   "a:1\tc_d:x y\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ToDelimitedText(mustDecode(t, tt.input), tt.sep, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDelimitedText_Errors(t *testing.T) {
	t.Parallel()

	_, err := ToDelimitedText(mustDecode(t, `[]`), ".", OutputFormatCSV)
	assert.ErrorIs(t, err, ErrEmptyRecordSet)

	_, err = ToDelimitedText(mustDecode(t, `[{}, {"a": {}}]`), ".", OutputFormatCSV)
	assert.ErrorIs(t, err, ErrEmptyRecordSet)

	_, err = ToDelimitedText(mustDecode(t, `[1]`), ".", OutputFormatParquet)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestToDelimitedText_Deterministic(t *testing.T) {
	t.Parallel()

	input := mustDecode(t, `{"rows":[{"z":1,"y":{"b":2,"a":3}},{"x":[4,5]}]}`)
	first, err := ToDelimitedText(input, ".", OutputFormatCSV)
	require.NoError(t, err)
	for range 10 {
		again, err := ToDelimitedText(input, ".", OutputFormatCSV)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestWriteDelimited(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteDelimited(&buf, []FlatRow{{"k": "v"}}, OutputFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "k\nv\n", buf.String())
}
