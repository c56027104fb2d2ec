package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
)

// stdinName stands for standard input in messages and table names.
const stdinName = "stdin"

// readInput returns the text of path, or of standard input when path is empty
// or "-". Compressed files are decompressed by suffix.
func (a *app) readInput(path string) (string, string, error) {
	if path == "" || path == "-" {
		text, err := jsontools.ReadText(a.in)
		return stdinName, text, err
	}

	r, cleanup, err := jsontools.NewCompressionFactory(a.fs).CreateReaderForFile(path)
	if err != nil {
		return path, "", err
	}
	text, err := jsontools.ReadText(r)
	if closeErr := cleanup(); closeErr != nil && err == nil {
		err = closeErr
	}
	return path, text, err
}

// writeOutput runs write against the file at path, or against the command's
// stdout when path is empty.
func (a *app) writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := a.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return write(f)
}

// repairText repairs text read from name and decorates failures with the
// input name and, when known, the location of the first syntax error.
func repairText(name, text string, lenient bool) (*jsontools.RepairResult, error) {
	res, err := jsontools.Repair(text, jsontools.RepairOptions{Lenient: lenient})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return res, nil
}

// describeError renders a repair failure as "cannot repair: message (line L, col C)"
// when the parser located the problem.
func describeError(err error) string {
	var perr *jsontools.ParseError
	if errors.As(err, &perr) {
		return fmt.Sprintf("cannot repair: %s (line %d, col %d)", perr.Message, perr.Line, perr.Column)
	}
	return err.Error()
}

// lenient resolves the --lenient flag against the loaded config.
func (a *app) lenient(cmd *cobra.Command, flagValue bool) bool {
	if cmd.Flags().Changed("lenient") {
		return flagValue
	}
	return a.cfg.Lenient
}

// separator resolves the --sep flag against the loaded config.
func (a *app) separator(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("sep") && flagValue != "" {
		return flagValue
	}
	return a.cfg.Separator
}
