package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
	"github.com/damian-dev1/json-tools-and-utilities/internal/logger"
	"github.com/damian-dev1/json-tools-and-utilities/internal/watch"
)

type watchOptions struct {
	debounce time.Duration
	lenient  bool
}

func newWatchCmd(a *app) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch file...",
		Short: "Re-check JSON files every time they are saved",
		Long: `Watch repairs each file once, then again after every burst of writes, and
prints either the applied repair steps or the location of the first syntax
error. Stop it with Ctrl-C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, a, opts, args)
		},
	}

	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "quiet period after the last write (default 500ms)")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "fall back to a JSON5 parse when the repairs fail")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, a *app, opts *watchOptions, paths []string) error {
	delay := opts.debounce
	if !cmd.Flags().Changed("debounce") {
		delay = time.Duration(a.cfg.DebounceMS) * time.Millisecond
	}

	var mu sync.Mutex
	report := func(r watch.Result) {
		mu.Lock()
		defer mu.Unlock()
		printWatchResult(cmd.OutOrStdout(), r)
	}

	w, err := watch.New(report,
		watch.WithFs(a.fs),
		watch.WithDebounce(delay),
		watch.WithRepairOptions(jsontools.RepairOptions{Lenient: a.lenient(cmd, opts.lenient)}),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range paths {
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		report(w.Check(path))
	}

	logger.FromContext(ctx).Info("watching", "files", len(paths), "debounce", delay.String())
	return w.Run(ctx)
}

func printWatchResult(out io.Writer, r watch.Result) {
	switch {
	case r.Err != nil:
		fmt.Fprintf(out, "%s: %s\n", r.Path, describeError(r.Err))
	case r.Repair.Changed():
		fmt.Fprintf(out, "%s: repairable: %s\n", r.Path, r.Repair.Report)
	default:
		fmt.Fprintf(out, "%s: ok\n", r.Path)
	}
}
