package alloc

import "github.com/joshuapare/heapkit/internal/format"

// findNextFit returns the first free block of at least asize bytes, starting
// at the cursor and wrapping to the head. It gives up after one full lap.
func (al *Allocator) findNextFit(asize int) (int, bool) {
	start := al.cursor
	if start == format.NoLink {
		return 0, false
	}

	cur := start
	for {
		if al.tag(cur).Size() >= asize {
			return cur, true
		}
		cur = al.next(cur)
		if cur == format.NoLink {
			cur = al.head
		}
		if cur == start {
			return 0, false
		}
	}
}
