package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/dirty"
	"github.com/joshuapare/heapkit/arena/printer"
	"github.com/joshuapare/heapkit/arena/verify"
	"github.com/joshuapare/heapkit/internal/trace"
	"github.com/spf13/cobra"
)

var (
	runFile       string
	runPages      int
	runMaxRequest int
	runCheck      bool
	runKeepGoing  bool
	runFormat     string
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVar(&runFile, "file", "", "Back the heap with this file instead of memory")
	cmd.Flags().IntVar(&runPages, "pages", 0, "Maximum heap pages (0 = 256 in memory, 4 GiB for files)")
	cmd.Flags().IntVar(&runMaxRequest, "max-request", alloc.DefaultConfig.MaxRequestSize, "Largest single request in bytes")
	cmd.Flags().BoolVar(&runCheck, "check", false, "Verify every heap invariant after each operation")
	cmd.Flags().BoolVar(&runKeepGoing, "keep-going", false, "Continue after requests the allocator rejects")
	cmd.Flags().StringVar(&runFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <trace>",
		Short: "Replay an allocation trace",
		Long: `The run command replays a trace of allocations, frees and resizes
and prints the resulting heap.

Trace format, one operation per line ('#' starts a comment):
  a <id> <size>   allocate
  f <id>          free
  r <id> <size>   resize (size 0 frees)

Example:
  heapctl run workload.trace
  heapctl run workload.trace --check --pages 16
  heapctl run workload.trace --file heap.bin --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), args)
		},
	}
	return cmd
}

func runRun(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := printerOptions(runFormat)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	ops, err := trace.Parse(f)
	f.Close()
	if err != nil {
		return err
	}
	printVerbose("Parsed %d operations from %s\n", len(ops), args[0])

	var (
		prov arena.Provider
		dt   *dirty.Tracker
	)
	if runFile != "" {
		fp, err := arena.OpenFile(runFile, runPages)
		if err != nil {
			return fmt.Errorf("failed to open heap file: %w", err)
		}
		prov = fp
		dt = dirty.NewTracker(fp)
	} else {
		prov = arena.NewMemory(runPages)
	}
	a := arena.New(prov)
	defer a.Close()

	cfg := &alloc.Config{MaxRequestSize: runMaxRequest, Logger: newLogger()}
	var tracker alloc.DirtyTracker
	if dt != nil {
		tracker = dt
	}
	al, err := alloc.New(a, tracker, cfg)
	if err != nil {
		return err
	}

	rp := trace.NewReplayer(al)
	rp.KeepGoing = runKeepGoing
	if runCheck {
		rp.Check = func() error {
			return verify.State(a.Bytes(), al.FreeListHead(), al.Cursor())
		}
	}

	res, runErr := rp.Run(ops)
	printVerbose("Replayed %d operations, %d rejected\n", res.Ops, res.Failures)
	printVerbose("Allocator: %s\n", al.Stats())

	if dt != nil {
		if err := dt.Flush(ctx, dirty.FlushAuto); err != nil {
			return errors.Join(runErr, fmt.Errorf("failed to flush heap file: %w", err))
		}
	}

	if !quiet {
		if err := printer.New(al, os.Stdout, opts).Print(); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}
