package printer

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/internal/format"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// ErrUnknownFormat indicates an unsupported Format.
var ErrUnknownFormat = errors.New("printer: unknown format")

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowBlocks includes the physical block table.
	// Default: true
	ShowBlocks bool

	// ShowFreeList includes the free list in list order.
	// Default: true
	ShowFreeList bool

	// Language selects digit grouping for text output.
	// Default: language.English
	Language language.Tag
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:       FormatText,
		ShowBlocks:   true,
		ShowFreeList: true,
		Language:     language.English,
	}
}

// Summary aggregates a heap walk.
type Summary struct {
	Boundary       int     `json:"boundary"`
	Pages          int     `json:"pages"`
	Blocks         int     `json:"blocks"`
	AllocatedCount int     `json:"allocated_blocks"`
	FreeCount      int     `json:"free_blocks"`
	AllocatedBytes int     `json:"allocated_bytes"`
	RequestedBytes int     `json:"requested_bytes"`
	FreeBytes      int     `json:"free_bytes"`
	LargestFree    int     `json:"largest_free"`
	Fragmentation  float64 `json:"fragmentation"`
	Head           int     `json:"free_list_head"`
	Cursor         int     `json:"cursor"`
}

// Printer writes a heap description to an io.Writer.
type Printer struct {
	heap *alloc.Allocator
	w    io.Writer
	opts Options
	p    *message.Printer
}

// New creates a printer for heap.
func New(heap *alloc.Allocator, w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	return &Printer{
		heap: heap,
		w:    w,
		opts: opts,
		p:    message.NewPrinter(opts.Language),
	}
}

// Print writes the summary followed by the sections enabled in Options.
func (p *Printer) Print() error {
	blocks, err := Walk(p.heap)
	if err != nil {
		return err
	}
	var free []alloc.Block
	if p.opts.ShowFreeList {
		if free, err = p.heap.FreeList(); err != nil {
			return err
		}
	}
	sum := Summarize(p.heap, blocks)

	switch p.opts.Format {
	case FormatText:
		return p.printText(sum, blocks, free)
	case FormatJSON:
		return p.printJSON(sum, blocks, free)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, p.opts.Format)
	}
}

// PrintSummary writes only the summary.
func (p *Printer) PrintSummary() error {
	opts := p.opts
	p.opts.ShowBlocks, p.opts.ShowFreeList = false, false
	defer func() { p.opts = opts }()
	return p.Print()
}

// Summarize aggregates the blocks returned by Walk into a Summary.
func Summarize(heap *alloc.Allocator, blocks []alloc.Block) Summary {
	boundary := heap.Arena().Boundary()
	s := Summary{
		Boundary: boundary,
		Pages:    format.PagesFor(boundary),
		Blocks:   len(blocks),
		Head:     heap.FreeListHead(),
		Cursor:   heap.Cursor(),
	}
	for _, b := range blocks {
		if b.Allocated {
			s.AllocatedCount++
			s.AllocatedBytes += b.Size
			s.RequestedBytes += b.Requested
			continue
		}
		s.FreeCount++
		s.FreeBytes += b.Size
		s.LargestFree = max(s.LargestFree, b.Size)
	}
	if s.FreeBytes > 0 {
		s.Fragmentation = 1 - float64(s.LargestFree)/float64(s.FreeBytes)
	}
	return s
}

// Walk collects every block of heap in address order.
func Walk(heap *alloc.Allocator) ([]alloc.Block, error) {
	var out []alloc.Block
	it := heap.Blocks()
	for {
		b, err := it.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
}
