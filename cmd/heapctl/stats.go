package main

import (
	"os"

	"github.com/joshuapare/heapkit/arena/printer"
	"github.com/spf13/cobra"
)

var statsFormat string

func init() {
	cmd := newStatsCmd()
	cmd.Flags().StringVar(&statsFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <heapfile>",
		Short: "Show block counts and fragmentation",
		Long: `The stats command summarises a heap file: block counts, bytes allocated
and free, the largest free block and how fragmented the free space is.

Example:
  heapctl stats heap.bin
  heapctl stats heap.bin --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	opts, err := printerOptions(statsFormat)
	if err != nil {
		return err
	}

	al, closeHeap, err := openHeap(args[0])
	if err != nil {
		return err
	}
	defer closeHeap()

	return printer.New(al, os.Stdout, opts).PrintSummary()
}
