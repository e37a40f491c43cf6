package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/arena/verify"
	"github.com/joshuapare/heapkit/internal/mmfile"
	"github.com/spf13/cobra"
)

var verifyJSON bool

func init() {
	cmd := newVerifyCmd()
	cmd.Flags().BoolVar(&verifyJSON, "json", false, "Output the result as JSON")
	rootCmd.AddCommand(cmd)
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <heapfile>",
		Short: "Check a heap file against every layout invariant",
		Long: `The verify command walks a heap file and checks the sentinels, every
block's header and footer, that no two free blocks touch, and that the free
list holds exactly the free blocks in address order. It exits non-zero when
the heap is corrupt.

Example:
  heapctl verify heap.bin
  heapctl verify heap.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

type verifyResult struct {
	File    string `json:"file"`
	Valid   bool   `json:"valid"`
	Type    string `json:"type,omitempty"`
	Offset  *int   `json:"offset,omitempty"`
	Message string `json:"message,omitempty"`
}

func runVerify(args []string) error {
	path := args[0]
	printVerbose("Verifying heap: %s\n", path)

	// Map the file read-only without attaching an allocator so a corrupt heap
	// can be reported in detail.
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return fmt.Errorf("failed to open heap: %w", err)
	}
	defer unmap()
	if err := mmfile.PreFault(data); err != nil {
		return err
	}

	verr := verify.Heap(data)
	res := verifyResult{File: path, Valid: verr == nil}
	if verr != nil {
		res.Message = verr.Error()
		var ve *verify.ValidationError
		if errors.As(verr, &ve) {
			res.Type = ve.Type
			res.Message = ve.Message
			if ve.Offset >= 0 {
				off := ve.Offset
				res.Offset = &off
			}
		}
	}

	if verifyJSON {
		if err := printJSON(res); err != nil {
			return err
		}
	} else if res.Valid {
		printInfo("%s: OK (%d bytes)\n", path, len(data))
	} else {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, verr)
	}

	if verr != nil {
		return fmt.Errorf("heap %s is corrupt", path)
	}
	return nil
}
