package arena

import (
	"errors"

	"github.com/joshuapare/heapkit/internal/format"
)

var (
	// ErrExhausted indicates the provider cannot supply another page.
	ErrExhausted = errors.New("arena: no more pages available")

	// ErrOutOfBounds indicates an access outside the managed region.
	ErrOutOfBounds = errors.New("arena: access out of bounds")

	// ErrClosed indicates use of a provider after Close.
	ErrClosed = errors.New("arena: provider closed")

	// ErrBadFileSize indicates a heap file whose size is not a whole number of pages.
	ErrBadFileSize = errors.New("arena: file size is not a multiple of the page size")
)

// PageSize is the fixed page size every provider grows by.
const PageSize = format.PageSize

// DefaultMaxPages caps a Memory provider created with maxPages <= 0.
const DefaultMaxPages = 256

// MaxPages is the hard page cap of every provider. A tag's size field is 32
// bits wide, so no heap may reach 4 GiB.
const MaxPages = format.MaxHeapPages

// clampPages maps a requested page cap onto (0, MaxPages]; 0 or less means
// MaxPages.
func clampPages(maxPages int) int {
	if maxPages <= 0 || maxPages > MaxPages {
		return MaxPages
	}
	return maxPages
}

// Provider supplies raw memory one page at a time.
type Provider interface {
	// Grow extends the managed region by exactly one page and returns the
	// offset of the new page's first byte. It returns an error wrapping
	// ErrExhausted when no more memory is available; the region is unchanged
	// in that case.
	Grow() (int, error)

	// Boundary returns the offset one past the last managed byte.
	Boundary() int

	// Bytes returns the managed bytes [0, Boundary()). The slice is only
	// valid until the next Grow.
	Bytes() []byte
}
