package jsontools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	"github.com/spf13/afero"
)

// Builder collects JSON inputs from paths, readers and fs.FS values, then
// repairs and decodes them into Documents.
// Use NewBuilder to create a new instance, then chain method calls to configure it.
//
// The typical usage pattern is:
//
//	builder, err := jsontools.NewBuilder().AddPath("exports/").WithLenient(true).Build(ctx)
//	if err != nil {
//		return err
//	}
//	docs, err := builder.Load(ctx)
type Builder struct {
	// fs is the filesystem paths are resolved on
	fs afero.Fs
	// paths contains regular file or directory paths
	paths []string
	// filesystems contains fs.FS instances
	filesystems []fs.FS
	// readers contains named in-memory inputs
	readers []namedReader
	// collected contains all inputs after Build validation
	collected []source
	// separator joins flattened path segments
	separator string
	// selectExpr is an optional jq expression applied after repair
	selectExpr string
	// repairOptions tunes the repair pipeline
	repairOptions RepairOptions
}

type namedReader struct {
	name   string
	reader io.Reader
}

// source is one validated input.
type source struct {
	name string
	path string
	open func() (io.Reader, func() error, error)
}

// NewBuilder creates a new builder reading from the operating system filesystem.
func NewBuilder() *Builder {
	return &Builder{
		fs:        afero.NewOsFs(),
		separator: DefaultSeparator,
	}
}

// WithFs sets the filesystem that AddPath paths are resolved on.
func (b *Builder) WithFs(fsys afero.Fs) *Builder {
	if fsys != nil {
		b.fs = fsys
	}
	return b
}

// AddPath adds a file or directory path. Directories are searched
// recursively for .json files and their compressed variants
// (.gz, .bz2, .xz, .zst).
func (b *Builder) AddPath(path string) *Builder {
	b.paths = append(b.paths, path)
	return b
}

// AddPaths adds multiple paths, following the same rules as AddPath.
func (b *Builder) AddPaths(paths ...string) *Builder {
	b.paths = append(b.paths, paths...)
	return b
}

// AddFS adds every JSON file found in filesystem, for example one created
// with go:embed.
func (b *Builder) AddFS(filesystem fs.FS) *Builder {
	b.filesystems = append(b.filesystems, filesystem)
	return b
}

// AddReader adds an in-memory input. name becomes the table name of the
// resulting document. The reader is consumed by Load.
func (b *Builder) AddReader(name string, r io.Reader) *Builder {
	b.readers = append(b.readers, namedReader{name: name, reader: r})
	return b
}

// WithSeparator sets the separator used when documents are flattened.
func (b *Builder) WithSeparator(sep string) *Builder {
	if sep == "" {
		sep = DefaultSeparator
	}
	b.separator = sep
	return b
}

// WithSelect sets a jq expression that picks the records out of every document.
func (b *Builder) WithSelect(expr string) *Builder {
	b.selectExpr = expr
	return b
}

// WithLenient enables the JSON5 fallback of the repair pipeline.
func (b *Builder) WithLenient(lenient bool) *Builder {
	b.repairOptions.Lenient = lenient
	return b
}

// Build validates all configured inputs. It checks that every path exists
// and is a JSON file, expands directories and filesystems, and must be called
// before Load.
func (b *Builder) Build(ctx context.Context) (*Builder, error) {
	if len(b.paths) == 0 && len(b.filesystems) == 0 && len(b.readers) == 0 {
		return nil, ErrNoInput
	}

	b.collected = make([]source, 0, len(b.paths)+len(b.readers))
	factory := NewCompressionFactory(b.fs)
	v := newValidator(b.fs)

	for _, path := range b.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		isDir, err := v.validatePath(path)
		if err != nil {
			return nil, err
		}
		if !isDir {
			b.collected = append(b.collected, b.fileSource(factory, path))
			continue
		}

		found, err := b.walkDir(factory, path)
		if err != nil {
			return nil, err
		}
		b.collected = append(b.collected, found...)
	}

	for _, filesystem := range b.filesystems {
		if filesystem == nil {
			return nil, errors.New("FS cannot be nil")
		}
		found, err := b.processFSInput(ctx, factory, filesystem)
		if err != nil {
			return nil, fmt.Errorf("failed to process FS input: %w", err)
		}
		b.collected = append(b.collected, found...)
	}

	for _, nr := range b.readers {
		if err := v.validateReader(nr.reader, nr.name); err != nil {
			return nil, err
		}
		r := nr.reader
		b.collected = append(b.collected, source{
			name: model.SanitizeTableName(nr.name),
			open: func() (io.Reader, func() error, error) { return r, noopCleanup, nil },
		})
	}

	if len(b.collected) == 0 {
		return nil, fmt.Errorf("%w: no JSON files found", ErrNoInput)
	}

	resolved, err := resolveTableNames(b.collected)
	if err != nil {
		return nil, err
	}
	b.collected = resolved
	return b, nil
}

// resolveTableNames keeps one source per table name. Within one directory an
// uncompressed file wins over its compressed variants; anything else is a
// conflict.
func resolveTableNames(sources []source) ([]source, error) {
	out := make([]source, 0, len(sources))
	index := make(map[string]int, len(sources))
	for _, src := range sources {
		i, exists := index[src.name]
		if !exists {
			index[src.name] = len(out)
			out = append(out, src)
			continue
		}

		existing := out[i]
		if existing.path == "" || src.path == "" ||
			filepath.Clean(filepath.Dir(existing.path)) != filepath.Clean(filepath.Dir(src.path)) {
			return nil, fmt.Errorf("%w: table '%s' from '%s' and '%s'",
				ErrDuplicateTableName, src.name, displayName(existing), displayName(src))
		}
		if model.DetectCompression(src.path) == CompressionNone {
			out[i] = src
		}
	}
	return out, nil
}

func displayName(src source) string {
	if src.path != "" {
		return src.path
	}
	return src.name
}

func (b *Builder) fileSource(factory *CompressionFactory, path string) source {
	return source{
		name: TableNameFromPath(path),
		path: path,
		open: func() (io.Reader, func() error, error) {
			return factory.CreateReaderForFile(path)
		},
	}
}

// walkDir collects JSON files below dir in lexical order.
func (b *Builder) walkDir(factory *CompressionFactory, dir string) ([]source, error) {
	var found []source
	err := afero.Walk(b.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !factory.IsJSONFile(path) {
			return nil
		}
		found = append(found, b.fileSource(factory, path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return found, nil
}

// processFSInput collects every JSON file of an fs.FS
func (b *Builder) processFSInput(ctx context.Context, factory *CompressionFactory, filesystem fs.FS) ([]source, error) {
	var matches []string
	err := fs.WalkDir(filesystem, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() && factory.IsJSONFile(path) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk filesystem: %w", err)
	}
	if len(matches) == 0 {
		return nil, errors.New("no JSON files found in filesystem")
	}
	sort.Strings(matches)

	sources := make([]source, 0, len(matches))
	for _, match := range matches {
		path := match
		sources = append(sources, source{
			name: TableNameFromPath(path),
			path: filepath.ToSlash(path),
			open: func() (io.Reader, func() error, error) {
				file, err := filesystem.Open(path)
				if err != nil {
					return nil, nil, fmt.Errorf("failed to open FS file: %w", err)
				}
				r, cleanup, err := factory.CreateHandlerForFile(path).CreateReader(file)
				if err != nil {
					_ = file.Close()
					return nil, nil, err
				}
				return r, chainCleanup(cleanup, file.Close), nil
			},
		})
	}
	return sources, nil
}

// Load reads, repairs and decodes every collected input. The first input that
// cannot be repaired stops the load; its error carries the file and the
// location reported by the parser.
func (b *Builder) Load(ctx context.Context) ([]*Document, error) {
	if len(b.collected) == 0 {
		return nil, fmt.Errorf("%w: did you call Build()?", ErrNoInput)
	}

	docs := make([]*Document, 0, len(b.collected))
	for _, src := range b.collected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := b.load(ctx, src)
		if err != nil {
			return nil, NewErrorContext("load", src.path).WithTable(src.name).Error(err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (b *Builder) load(ctx context.Context, src source) (*Document, error) {
	r, cleanup, err := src.open()
	if err != nil {
		return nil, err
	}
	text, err := ReadText(r)
	if closeErr := cleanup(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}

	res, err := Repair(text, b.repairOptions)
	if err != nil {
		return nil, err
	}

	value := res.Value
	if b.selectExpr != "" {
		value, err = SelectRecords(ctx, value, b.selectExpr)
		if err != nil {
			return nil, err
		}
	}

	return &Document{
		Name:      src.name,
		Path:      src.path,
		Repair:    res,
		Value:     value,
		separator: b.separator,
	}, nil
}
