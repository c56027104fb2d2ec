package jsontools

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// validator handles input and output checks for Builder and DumpDocuments
type validator struct {
	fs afero.Fs
}

// newValidator creates a new validator instance on fs
func newValidator(fs afero.Fs) *validator {
	return &validator{fs: fs}
}

// validatePath validates a single file or directory path and reports whether
// it is a directory.
func (v *validator) validatePath(path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, errors.New("path cannot be empty")
	}

	info, err := v.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return false, fmt.Errorf("failed to stat path %s: %w", path, err)
	}

	if info.IsDir() {
		return true, nil
	}
	if !NewCompressionFactory(v.fs).IsJSONFile(path) {
		return false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return false, nil
}

// validateReader validates a reader input
func (v *validator) validateReader(reader io.Reader, tableName string) error {
	if reader == nil {
		return errors.New("reader cannot be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return errors.New("table name must be specified for reader input")
	}
	if sr, ok := reader.(*strings.Reader); ok && sr.Len() == 0 {
		return errors.New("reader contains no data")
	}
	return nil
}

// validateOutputDirectory validates that the output directory can be created/accessed
func (v *validator) validateOutputDirectory(outputDir string) error {
	if strings.TrimSpace(outputDir) == "" {
		return errors.New("output directory cannot be empty")
	}

	info, err := v.fs.Stat(outputDir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("output path exists but is not a directory: %s", outputDir)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to check output directory: %w", err)
	}
	return nil
}
