package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
	"github.com/damian-dev1/json-tools-and-utilities/internal/logger"
	"github.com/damian-dev1/json-tools-and-utilities/sink"
)

type loadOptions struct {
	sourceOptions
	sink   string
	dsn    string
	table  string
	policy string
}

func newLoadCmd(a *app) *cobra.Command {
	opts := &loadOptions{}

	cmd := &cobra.Command{
		Use:   "load [file|dir ...]",
		Short: "Store JSON documents as database tables",
		Long: `Load repairs each input, builds its typed table and stores it through a sink.

Sinks: sqlite (default), postgres, mysql, sqlserver and mongodb. Tables are
named after the input file unless --table is given for a single input.

--policy decides what happens when the table already exists:
  error    fail without touching it (default)
  replace  drop and recreate it
  append   insert into it`,
		Example: `  jsontools load --dsn data.db orders.json
  jsontools load --sink postgres --dsn "postgres://localhost/app" --policy replace exports/
  curl -s https://example.com/api | jsontools load --table api_rows`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, a, opts, args)
		},
	}

	addSourceFlags(cmd, &opts.sourceOptions)
	cmd.Flags().StringVar(&opts.sink, "sink", "", "sink kind: "+strings.Join(sink.Kinds(), ", "))
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "data source name of the sink")
	cmd.Flags().StringVar(&opts.table, "table", "", "table name for a single input")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "collision policy: error, replace or append")
	return cmd
}

func runLoad(cmd *cobra.Command, a *app, opts *loadOptions, args []string) error {
	cfg := a.cfg
	if cmd.Flags().Changed("sink") {
		cfg.Sink = opts.sink
	}
	if cmd.Flags().Changed("dsn") {
		cfg.DSN = opts.dsn
	}
	if cmd.Flags().Changed("table") {
		cfg.Table = opts.table
	}
	if cmd.Flags().Changed("policy") {
		cfg.Policy = opts.policy
	}

	policy, err := jsontools.ParseCollisionPolicy(cfg.Policy)
	if err != nil {
		return err
	}
	if cfg.DSN == "" {
		return errors.New("no DSN configured; use --dsn or " + EnvDSN)
	}

	docs, err := loadDocuments(cmd, a, &opts.sourceOptions, args)
	if err != nil {
		return err
	}
	if cfg.Table != "" {
		if len(docs) != 1 {
			return fmt.Errorf("--table needs exactly one input, got %d", len(docs))
		}
		docs[0].Name = cfg.Table
	}

	ctx := cmd.Context()
	w, err := sink.Open(ctx, sink.Config{Kind: cfg.Sink, DSN: cfg.DSN})
	if err != nil {
		return err
	}
	defer w.Close()

	results, err := jsontools.StoreDocuments(ctx, w, docs, policy)
	if err != nil {
		return err
	}

	lgr := logger.FromContext(ctx)
	for _, r := range results {
		lgr.Info("stored", logger.TableKey, r.Table, "rows", r.Rows, "sink", cfg.Sink)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", r.Table, r.Rows)
	}
	return nil
}
