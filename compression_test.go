package jsontools

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionHandlerRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		compressionType CompressionType
		extension       string
		canWrite        bool
	}{
		{name: "no compression", compressionType: CompressionNone, extension: "", canWrite: true},
		{name: "gzip", compressionType: CompressionGZ, extension: ".gz", canWrite: true},
		{name: "bzip2", compressionType: CompressionBZ2, extension: ".bz2", canWrite: false},
		{name: "xz", compressionType: CompressionXZ, extension: ".xz", canWrite: true},
		{name: "zstd", compressionType: CompressionZSTD, extension: ".zst", canWrite: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewCompressionHandler(tt.compressionType)
			assert.Equal(t, tt.extension, handler.Extension())

			var buf bytes.Buffer
			w, closeWriter, err := handler.CreateWriter(&buf)
			if !tt.canWrite {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)

			payload := []byte(`[{"id": 1, "name": "ann"}]`)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, closeWriter())

			r, closeReader, err := handler.CreateReader(&buf)
			require.NoError(t, err)
			defer func() { _ = closeReader() }()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestCompressionHandlerInvalidStream(t *testing.T) {
	t.Parallel()

	for _, ct := range []CompressionType{CompressionGZ, CompressionXZ} {
		t.Run(ct.String(), func(t *testing.T) {
			t.Parallel()
			_, _, err := NewCompressionHandler(ct).CreateReader(bytes.NewReader([]byte("not compressed")))
			assert.Error(t, err)
		})
	}

	_, _, err := NewCompressionHandler(CompressionType(99)).CreateReader(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCompressionFactory(t *testing.T) {
	t.Parallel()

	t.Run("detects and strips extensions", func(t *testing.T) {
		t.Parallel()

		f := NewCompressionFactory(afero.NewMemMapFs())
		tests := []struct {
			path     string
			want     CompressionType
			stripped string
			isJSON   bool
		}{
			{path: "data.json", want: CompressionNone, stripped: "data.json", isJSON: true},
			{path: "data.json.gz", want: CompressionGZ, stripped: "data.json", isJSON: true},
			{path: "DATA.JSON.BZ2", want: CompressionBZ2, stripped: "DATA.JSON", isJSON: true},
			{path: "data.json.xz", want: CompressionXZ, stripped: "data.json", isJSON: true},
			{path: "data.json.zst", want: CompressionZSTD, stripped: "data.json", isJSON: true},
			{path: "data.csv.gz", want: CompressionGZ, stripped: "data.csv", isJSON: false},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, f.DetectCompressionType(tt.path), tt.path)
			assert.Equal(t, tt.stripped, f.RemoveCompressionExtension(tt.path), tt.path)
			assert.Equal(t, tt.isJSON, f.IsJSONFile(tt.path), tt.path)
		}
	})

	t.Run("writes and reads back through the filesystem", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		f := NewCompressionFactory(fs)

		w, closeWriter, err := f.CreateWriterForFile("out.json.zst", CompressionZSTD)
		require.NoError(t, err)
		_, err = io.WriteString(w, `{"a": 1}`)
		require.NoError(t, err)
		require.NoError(t, closeWriter())

		raw, err := afero.ReadFile(fs, "out.json.zst")
		require.NoError(t, err)
		assert.NotEqual(t, `{"a": 1}`, string(raw))

		r, closeReader, err := f.CreateReaderForFile("out.json.zst")
		require.NoError(t, err)
		defer func() { _ = closeReader() }()

		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, `{"a": 1}`, string(got))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := NewCompressionFactory(afero.NewMemMapFs()).CreateReaderForFile("nope.json")
		assert.Error(t, err)
	})

	t.Run("nil filesystem falls back to os", func(t *testing.T) {
		t.Parallel()

		f := NewCompressionFactory(nil)
		_, ok := f.fs.(*afero.OsFs)
		assert.True(t, ok)
	})
}
