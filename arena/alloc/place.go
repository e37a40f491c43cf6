package alloc

import "github.com/joshuapare/heapkit/internal/format"

// place turns the free block at hdr into an allocated block of asize bytes.
// A remainder of at least MinBlockSize is split off and takes the block's
// list slot; it also becomes the cursor so the next search starts right
// after this allocation.
func (al *Allocator) place(hdr, asize, requested int) {
	size := al.tag(hdr).Size()
	used := size

	if rest := size - asize; rest >= format.MinBlockSize {
		rem := hdr + asize
		al.replace(hdr, rem)
		al.setBlock(hdr, asize, true, requested)
		al.setBlock(rem, rest, false, 0)
		al.cursor = rem

		al.stats.Splits++
		al.log.Debug("split", "block", hdr, "size", asize, "remainder", rem, "remainder_size", rest)
		used = asize
	} else {
		al.unlink(hdr)
		al.setBlock(hdr, size, true, requested)
	}

	al.stats.BlocksInUse++
	al.stats.BytesInUse += int64(used)
}
