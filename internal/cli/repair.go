package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
	"github.com/damian-dev1/json-tools-and-utilities/internal/logger"
)

type repairOptions struct {
	format  string
	output  string
	lenient bool
	quiet   bool
}

func newRepairCmd(a *app) *cobra.Command {
	opts := &repairOptions{}

	cmd := &cobra.Command{
		Use:   "repair [file]",
		Short: "Repair JSON-like text and print it as JSON, YAML or TOML",
		Long: `Repair reads a file (or standard input when no file or "-" is given),
applies the repair steps that are needed to make it valid JSON and prints the
result. The applied steps are reported on stderr.

When the text cannot be repaired the command fails with the parser message and
the line and column of the first syntax error.`,
		Example: `  jsontools repair broken.json
  echo "{'a': True,}" | jsontools repair
  jsontools repair --format yaml config.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json, yaml or toml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "fall back to a JSON5 parse when the repairs fail")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not report the applied steps")
	return cmd
}

func runRepair(cmd *cobra.Command, a *app, opts *repairOptions, args []string) error {
	format, err := jsontools.ParseDocumentFormat(opts.format)
	if err != nil {
		return err
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	name, text, err := a.readInput(path)
	if err != nil {
		return err
	}

	res, err := repairText(name, text, a.lenient(cmd, opts.lenient))
	if err != nil {
		return err
	}

	lgr := logger.FromContext(cmd.Context())
	lgr.V(1).Info("repaired", logger.FileKey, name, "steps", res.Report.String())
	if res.Changed() && !opts.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "repaired %s: %s\n", name, res.Report)
	}

	return a.writeOutput(cmd, opts.output, func(w io.Writer) error {
		return jsontools.EncodeDocument(w, res.Value, format)
	})
}
