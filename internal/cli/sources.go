package cli

import (
	"github.com/spf13/cobra"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
	"github.com/damian-dev1/json-tools-and-utilities/internal/logger"
)

// sourceOptions are the input flags shared by convert and load.
type sourceOptions struct {
	selectExpr string
	sep        string
	lenient    bool
}

func addSourceFlags(cmd *cobra.Command, o *sourceOptions) {
	cmd.Flags().StringVar(&o.selectExpr, "select", "", "jq expression that picks the records, e.g. .data.items")
	cmd.Flags().StringVar(&o.sep, "sep", "", `separator joining nested keys into column names (default ".")`)
	cmd.Flags().BoolVar(&o.lenient, "lenient", false, "fall back to a JSON5 parse when the repairs fail")
}

// loadDocuments repairs every input named in args, or standard input when
// args is empty.
func loadDocuments(cmd *cobra.Command, a *app, o *sourceOptions, args []string) ([]*jsontools.Document, error) {
	ctx := cmd.Context()

	b := jsontools.NewBuilder().
		WithFs(a.fs).
		WithSeparator(a.separator(cmd, o.sep)).
		WithSelect(o.selectExpr).
		WithLenient(a.lenient(cmd, o.lenient))
	if len(args) == 0 {
		b = b.AddReader(stdinName, cmd.InOrStdin())
	} else {
		b = b.AddPaths(args...)
	}

	b, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}

	lgr := logger.FromContext(ctx)
	for _, doc := range docs {
		lgr.V(1).Info("loaded", logger.FileKey, doc.Path, logger.TableKey, doc.Name, "steps", doc.Repair.Report.String())
	}
	return docs, nil
}
