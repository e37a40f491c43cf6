package alloc

import (
	"fmt"
	"io"

	"github.com/joshuapare/heapkit/internal/format"
)

// BlockIter walks the physical blocks in address order.
type BlockIter struct {
	al   *Allocator
	off  int
	done bool
}

// Blocks returns an iterator positioned at the first block.
func (al *Allocator) Blocks() *BlockIter {
	return &BlockIter{al: al, off: format.FirstBlockOffset}
}

// Next returns the next block or io.EOF after the last one.
func (it *BlockIter) Next() (Block, error) {
	if it.done || !it.al.ready {
		return Block{}, io.EOF
	}

	epi := format.EpilogueOffset(it.al.a.Boundary())
	if it.off >= epi {
		it.done = true
		return Block{}, io.EOF
	}

	t, err := it.al.a.ReadTag(it.off)
	if err != nil {
		it.done = true
		return Block{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	size := t.Size()
	if !t.IsHeader() || t.Kind() == format.KindSentinel || size < format.MinBlockSize || it.off+size > epi {
		it.done = true
		return Block{}, fmt.Errorf("%w: bad header at 0x%X: %s", ErrCorrupt, it.off, t)
	}

	b := Block{
		Offset:    it.off,
		Size:      size,
		Requested: int(t.Requested),
		Allocated: t.Allocated(),
	}
	it.off += size
	return b, nil
}

// FreeList returns the free blocks in list order.
func (al *Allocator) FreeList() ([]Block, error) {
	var out []Block
	limit := al.a.Boundary() / format.MinBlockSize
	for cur := al.head; cur != format.NoLink; cur = al.next(cur) {
		if len(out) > limit || !al.a.Contains(cur, format.MinBlockSize) {
			return nil, fmt.Errorf("%w: free list runs away at 0x%X", ErrCorrupt, cur)
		}
		t := al.tag(cur)
		out = append(out, Block{Offset: cur, Size: t.Size()})
	}
	return out, nil
}
