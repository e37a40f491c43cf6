package main

import (
	"fmt"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/printer"
)

// openHeap maps an existing heap file and attaches an allocator to it.
// The returned close function unmaps the file.
func openHeap(path string) (*alloc.Allocator, func() error, error) {
	printVerbose("Opening heap: %s\n", path)

	fp, err := arena.OpenFile(path, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open heap: %w", err)
	}
	a := arena.New(fp)
	al, err := alloc.New(a, nil, &alloc.Config{
		MaxRequestSize: alloc.DefaultConfig.MaxRequestSize,
		Logger:         newLogger(),
	})
	if err != nil {
		_ = a.Close()
		return nil, nil, err
	}
	return al, a.Close, nil
}

// printerOptions builds printer options from a --format flag value.
func printerOptions(formatFlag string) (printer.Options, error) {
	f, err := printer.ParseFormat(formatFlag)
	if err != nil {
		return printer.Options{}, err
	}
	opts := printer.DefaultOptions()
	opts.Format = f
	return opts, nil
}
