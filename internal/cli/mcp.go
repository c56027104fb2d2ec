package cli

import (
	"github.com/spf13/cobra"

	"github.com/damian-dev1/json-tools-and-utilities/internal/mcpserver"
)

func newMCPCmd(a *app) *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the repair and conversion tools over MCP on stdin/stdout",
		Long: `Mcp starts a Model Context Protocol server on stdin/stdout with three tools:

  repair_json  repair JSON-like text and report the applied steps
  json_to_csv  convert a document into CSV, TSV or LTSV text
  json_paths   list node paths or resolve one JSONPath`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := mcpserver.New(cmd.Context(), mcpserver.WithLenient(a.lenient(cmd, lenient)))
			return s.ServeStdio()
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "fall back to a JSON5 parse by default")
	return cmd
}
