package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
	"github.com/damian-dev1/json-tools-and-utilities/internal/logger"
)

type convertOptions struct {
	sourceOptions
	format      string
	compression string
	outputDir   string
	sheet       string
}

func newConvertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file|dir ...]",
		Short: "Convert JSON documents into CSV, TSV, LTSV, Parquet or Excel tables",
		Long: `Convert repairs each input, infers its records, flattens nested values into
columns and writes one table per input.

Without --output-dir a single input is written to stdout, which only works
for the uncompressed text formats. With --output-dir every input becomes
<table><ext> in that directory.`,
		Example: `  jsontools convert orders.json
  jsontools convert --select '.data.items' --format tsv export.json
  jsontools convert --format parquet --compression zstd -o out/ exports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a, opts, args)
		},
	}

	addSourceFlags(cmd, &opts.sourceOptions)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "csv", "output format: csv, tsv, ltsv, parquet or xlsx")
	cmd.Flags().StringVarP(&opts.compression, "compression", "c", "none", "output compression: none, gz, xz or zstd")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "write one file per input into this directory")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "worksheet name for xlsx output")
	return cmd
}

func runConvert(cmd *cobra.Command, a *app, opts *convertOptions, args []string) error {
	format, err := jsontools.ParseOutputFormat(opts.format)
	if err != nil {
		return err
	}
	compression, err := jsontools.ParseCompressionType(opts.compression)
	if err != nil {
		return err
	}
	exportOpts := jsontools.NewExportOptions().
		WithFormat(format).
		WithCompression(compression).
		WithSheetName(opts.sheet)

	if opts.outputDir == "" {
		switch {
		case !format.IsDelimited():
			return fmt.Errorf("%s output needs --output-dir", format)
		case compression != jsontools.CompressionNone:
			return errors.New("compressed output needs --output-dir")
		}
	}

	docs, err := loadDocuments(cmd, a, &opts.sourceOptions, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.outputDir == "" {
		if len(docs) != 1 {
			return fmt.Errorf("%d inputs need --output-dir", len(docs))
		}
		return docs[0].Export(ctx, cmd.OutOrStdout(), exportOpts)
	}

	written, err := jsontools.DumpDocuments(ctx, a.fs, docs, opts.outputDir, exportOpts)
	if err != nil {
		return err
	}
	lgr := logger.FromContext(ctx)
	for _, path := range written {
		lgr.Info("written", logger.FileKey, path)
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
