package main

import (
	"os"

	"github.com/joshuapare/heapkit/arena/printer"
	"github.com/spf13/cobra"
)

var (
	dumpFormat     string
	dumpNoBlocks   bool
	dumpNoFreeList bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpFormat, "format", "text", "Output format (text, json)")
	cmd.Flags().BoolVar(&dumpNoBlocks, "no-blocks", false, "Omit the block table")
	cmd.Flags().BoolVar(&dumpNoFreeList, "no-free-list", false, "Omit the free list")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <heapfile>",
		Short: "Print every block and the free list of a heap file",
		Long: `The dump command prints the summary, the physical block table and the
free list of a heap file.

Example:
  heapctl dump heap.bin
  heapctl dump heap.bin --format json
  heapctl dump heap.bin --no-blocks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	opts, err := printerOptions(dumpFormat)
	if err != nil {
		return err
	}
	opts.ShowBlocks = !dumpNoBlocks
	opts.ShowFreeList = !dumpNoFreeList

	al, closeHeap, err := openHeap(args[0])
	if err != nil {
		return err
	}
	defer closeHeap()

	return printer.New(al, os.Stdout, opts).Print()
}
