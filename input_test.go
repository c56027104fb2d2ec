package jsontools

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestReadText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "plain utf-8",
			input: []byte(`{"name": "café"}`),
			want:  `{"name": "café"}`,
		},
		{
			name:  "utf-8 with bom",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte(`[1]`)...),
			want:  `[1]`,
		},
		{
			name:  "utf-16le with bom",
			input: []byte{0xFF, 0xFE, '[', 0, '1', 0, ']', 0},
			want:  `[1]`,
		},
		{
			name:  "utf-16be with bom",
			input: []byte{0xFE, 0xFF, 0, '{', 0, '}'},
			want:  `{}`,
		},
		{
			name:  "empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadText(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("read error", func(t *testing.T) {
		t.Parallel()

		_, err := ReadText(failingReader{})
		assert.ErrorContains(t, err, "boom")
	})
}
