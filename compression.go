package jsontools

import (
	"compress/bzip2"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

// CompressionHandler wraps streams in the codec of one compression type.
type CompressionHandler interface {
	// CreateReader returns a reader yielding the decompressed bytes of reader
	// and a cleanup that releases the decoder.
	CreateReader(reader io.Reader) (io.Reader, func() error, error)
	// CreateWriter returns a writer compressing into writer and a cleanup
	// that flushes the trailer. The cleanup must run before writer is closed.
	CreateWriter(writer io.Writer) (io.Writer, func() error, error)
	// Extension returns the file suffix of the compression type, e.g. ".gz".
	Extension() string
}

// codec opens the decoder and encoder of one compression type. A nil
// encode means the type can be read but not written.
type codec struct {
	decode func(io.Reader) (io.Reader, func() error, error)
	encode func(io.Writer) (io.Writer, func() error, error)
}

var codecs = map[CompressionType]codec{
	CompressionNone: {
		decode: func(r io.Reader) (io.Reader, func() error, error) { return r, noopCleanup, nil },
		encode: func(w io.Writer) (io.Writer, func() error, error) { return w, noopCleanup, nil },
	},
	CompressionGZ: {
		decode: func(r io.Reader) (io.Reader, func() error, error) {
			zr, err := gzip.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return zr, zr.Close, nil
		},
		encode: func(w io.Writer) (io.Writer, func() error, error) {
			zw := gzip.NewWriter(w)
			return zw, zw.Close, nil
		},
	},
	CompressionBZ2: {
		decode: func(r io.Reader) (io.Reader, func() error, error) { return bzip2.NewReader(r), noopCleanup, nil },
	},
	CompressionXZ: {
		decode: func(r io.Reader) (io.Reader, func() error, error) {
			xr, err := xz.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return xr, noopCleanup, nil
		},
		encode: func(w io.Writer) (io.Writer, func() error, error) {
			xw, err := xz.NewWriter(w)
			if err != nil {
				return nil, nil, err
			}
			return xw, xw.Close, nil
		},
	},
	CompressionZSTD: {
		decode: func(r io.Reader) (io.Reader, func() error, error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return dec, func() error { dec.Close(); return nil }, nil
		},
		encode: func(w io.Writer) (io.Writer, func() error, error) {
			enc, err := zstd.NewWriter(w)
			if err != nil {
				return nil, nil, err
			}
			return enc, enc.Close, nil
		},
	},
}

func noopCleanup() error { return nil }

// streamHandler is the CompressionHandler of one compression type.
type streamHandler struct {
	kind CompressionType
}

// NewCompressionHandler returns the handler for kind. Unknown kinds fail on use.
func NewCompressionHandler(kind CompressionType) CompressionHandler {
	return streamHandler{kind: kind}
}

func (h streamHandler) CreateReader(reader io.Reader) (io.Reader, func() error, error) {
	c, ok := codecs[h.kind]
	if !ok {
		return nil, nil, fmt.Errorf("%w: compression %v", ErrUnsupportedFormat, h.kind)
	}
	r, cleanup, err := c.decode(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s stream: %w", h.kind, err)
	}
	return r, cleanup, nil
}

func (h streamHandler) CreateWriter(writer io.Writer) (io.Writer, func() error, error) {
	c, ok := codecs[h.kind]
	if !ok {
		return nil, nil, fmt.Errorf("%w: compression %v", ErrUnsupportedFormat, h.kind)
	}
	if c.encode == nil {
		return nil, nil, fmt.Errorf("%w: %s output is read-only", ErrUnsupportedFormat, h.kind)
	}
	w, cleanup, err := c.encode(writer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start %s stream: %w", h.kind, err)
	}
	return w, cleanup, nil
}

func (h streamHandler) Extension() string {
	return h.kind.Extension()
}

// CompressionFactory opens and creates files on fs, choosing the codec from
// the file suffix.
type CompressionFactory struct {
	fs afero.Fs
}

// NewCompressionFactory returns a factory on fs, or on the operating system
// filesystem when fs is nil.
func NewCompressionFactory(fs afero.Fs) *CompressionFactory {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &CompressionFactory{fs: fs}
}

// DetectCompressionType maps the suffix of path to a compression type.
func (f *CompressionFactory) DetectCompressionType(path string) CompressionType {
	return model.DetectCompression(path)
}

// CreateHandlerForFile returns the handler matching the suffix of path.
func (f *CompressionFactory) CreateHandlerForFile(path string) CompressionHandler {
	return NewCompressionHandler(f.DetectCompressionType(path))
}

// CreateReaderForFile opens path and returns its decompressed content. The
// cleanup closes the decoder and then the file.
func (f *CompressionFactory) CreateReaderForFile(path string) (io.Reader, func() error, error) {
	file, err := f.fs.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	r, cleanup, err := f.CreateHandlerForFile(path).CreateReader(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return r, chainCleanup(cleanup, file.Close), nil
}

// CreateWriterForFile creates path and returns a writer compressing with
// kind. The cleanup flushes the encoder, syncs and closes the file.
func (f *CompressionFactory) CreateWriterForFile(path string, kind CompressionType) (io.Writer, func() error, error) {
	file, err := f.fs.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file: %w", err)
	}
	w, cleanup, err := NewCompressionHandler(kind).CreateWriter(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return w, chainCleanup(cleanup, file.Sync, file.Close), nil
}

// chainCleanup runs every cleanup in order and returns the first error.
func chainCleanup(fns ...func() error) func() error {
	return func() error {
		var first error
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			if err := fn(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
}

// RemoveCompressionExtension strips a known compression suffix from path.
func (f *CompressionFactory) RemoveCompressionExtension(path string) string {
	return strings.TrimSuffix(path, f.DetectCompressionType(path).Extension())
}

// IsJSONFile reports whether path names a JSON document, compressed or not.
func (f *CompressionFactory) IsJSONFile(path string) bool {
	return strings.EqualFold(filepath.Ext(f.RemoveCompressionExtension(path)), extJSON)
}
