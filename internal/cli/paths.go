package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
)

type pathsOptions struct {
	lookup  string
	lenient bool
}

func newPathsCmd(a *app) *cobra.Command {
	opts := &pathsOptions{}

	cmd := &cobra.Command{
		Use:   "paths [file]",
		Short: "List every node path of a JSON document or resolve one path",
		Example: `  jsontools paths users.json
  jsontools paths --get '$.users[0].address.city' users.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			out := cmd.OutOrStdout()
			if opts.lookup != "" {
				found, err := jsontools.Lookup(res.Value, opts.lookup)
				if err != nil {
					return err
				}
				pretty, err := jsontools.Pretty(found)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, pretty)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, entry := range jsontools.Paths(res.Value) {
				fmt.Fprintf(tw, "%s\t%s\n", entry.Path, entry.Kind)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&opts.lookup, "get", "", "print the value at this JSONPath instead of listing paths")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "fall back to a JSON5 parse when the repairs fail")
	return cmd
}
