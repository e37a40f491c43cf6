package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// ensureHeap lays out the first page on first use: prologue, one free block
// of InitialBlockSize bytes and the epilogue.
func (al *Allocator) ensureHeap() error {
	if al.ready {
		return nil
	}

	off, err := al.a.Grow()
	if err != nil {
		al.stats.GrowFailures++
		al.log.Warn("heap initialisation failed", "error", err)
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	if off != format.PrologueOffset {
		return fmt.Errorf("%w: first page handed out at offset %d", ErrCorrupt, off)
	}
	al.stats.PagesGrown++

	al.putTag(format.PrologueOffset, format.PrologueTag())
	al.setBlock(format.FirstBlockOffset, format.InitialBlockSize, false, 0)
	al.putTag(format.EpilogueOffset(al.a.Boundary()), format.EpilogueTag())
	al.insertByAddress(format.FirstBlockOffset)
	al.ready = true

	al.log.Debug("heap initialised", "boundary", al.a.Boundary())
	return nil
}

// extendHeap grows the heap one page at a time until a free block of at
// least asize bytes exists, and returns it. Pages added before a provider
// failure stay in the heap as free space.
func (al *Allocator) extendHeap(asize int) (int, error) {
	for {
		old := al.a.Boundary()
		if old/format.PageSize >= format.MaxHeapPages {
			al.stats.GrowFailures++
			return 0, fmt.Errorf("%w: heap is at its %d page limit", ErrOutOfMemory, format.MaxHeapPages)
		}
		off, err := al.a.Grow()
		if err != nil {
			al.stats.GrowFailures++
			al.log.Warn("heap growth failed", "need", asize, "boundary", old, "error", err)
			return 0, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
		}
		if off != old {
			return 0, fmt.Errorf("%w: page handed out at %d, boundary was %d", ErrCorrupt, off, old)
		}
		al.stats.PagesGrown++

		// The old epilogue becomes the header of a page-sized free block.
		hdr := format.EpilogueOffset(off)
		al.setBlock(hdr, format.PageSize, false, 0)
		al.putTag(format.EpilogueOffset(al.a.Boundary()), format.EpilogueTag())
		al.log.Debug("grew heap", "page", off, "boundary", al.a.Boundary(), "need", asize)

		al.coalesce(hdr)
		if blk, ok := al.findNextFit(asize); ok {
			return blk, nil
		}
	}
}
