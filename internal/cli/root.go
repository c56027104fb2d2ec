// Package cli implements the jsontools command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/damian-dev1/json-tools-and-utilities/internal/logger"
)

// app carries what every command needs. Tests swap the filesystem, the
// streams and the environment.
type app struct {
	fs        afero.Fs
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	lookupEnv func(string) (string, bool)

	configPath string
	verbose    bool
	cfg        Config
}

// NewRoot returns the root command wired to the operating system.
func NewRoot() *cobra.Command {
	return newRootCmd(&app{
		fs:        afero.NewOsFs(),
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
		lookupEnv: os.LookupEnv,
	})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsontools",
		Short: "Repair JSON-like text and convert JSON documents into tables",
		Long: `jsontools repairs almost-JSON text (comments, single quotes, trailing commas,
bare keys, None/True/False, NaN/Infinity) and converts JSON documents into
CSV, TSV, LTSV, Parquet or Excel files, or database tables.

Settings are read from .jsontools.yaml, then JSONTOOLS_* environment
variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			required := cmd.Flags().Changed("config")
			cfg, err := LoadConfig(a.fs, a.configPath, required, a.lookupEnv)
			if err != nil {
				return err
			}
			a.cfg = cfg

			lgr := logger.New(a.errOut, a.verbose)
			lgr = logger.WithValues(lgr, logger.RootCommandKey, "jsontools", logger.SubCommandKey, cmd.Name())
			cmd.SetContext(logger.WithLogger(cmd.Context(), lgr))
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}

	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	cmd.PersistentFlags().StringVar(&a.configPath, "config", DefaultConfigFile, "path to the YAML config file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newRepairCmd(a))
	cmd.AddCommand(newConvertCmd(a))
	cmd.AddCommand(newLoadCmd(a))
	cmd.AddCommand(newPathsCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newMCPCmd(a))
	return cmd
}

// Execute runs the root command and prints the error, if any, to stderr.
func Execute() int {
	root := NewRoot()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}
