package alloc

import "github.com/joshuapare/heapkit/internal/format"

// insertByAddress links hdr in front of the first free block at a higher
// address, or at the tail. An empty list makes hdr both head and cursor.
func (al *Allocator) insertByAddress(hdr int) {
	if al.head == format.NoLink {
		al.setPrev(hdr, format.NoLink)
		al.setNext(hdr, format.NoLink)
		al.head = hdr
		al.cursor = hdr
		return
	}

	prev, cur := format.NoLink, al.head
	for cur != format.NoLink && cur < hdr {
		prev, cur = cur, al.next(cur)
	}

	al.setPrev(hdr, prev)
	al.setNext(hdr, cur)
	if prev == format.NoLink {
		al.head = hdr
	} else {
		al.setNext(prev, hdr)
	}
	if cur != format.NoLink {
		al.setPrev(cur, hdr)
	}
}

// unlink detaches hdr. The head moves to hdr's successor when hdr was the
// head; the cursor moves to the successor, or wraps to the head.
func (al *Allocator) unlink(hdr int) {
	prev, next := al.prev(hdr), al.next(hdr)

	if prev == format.NoLink {
		al.head = next
	} else {
		al.setNext(prev, next)
	}
	if next != format.NoLink {
		al.setPrev(next, prev)
	}

	if al.cursor == hdr {
		if next != format.NoLink {
			al.cursor = next
		} else {
			al.cursor = al.head
		}
	}
}

// replace puts nw into old's list slot. The caller guarantees nw keeps the
// list address-ordered (it lies between old's neighbours).
func (al *Allocator) replace(old, nw int) {
	prev, next := al.prev(old), al.next(old)

	al.setPrev(nw, prev)
	al.setNext(nw, next)
	if prev == format.NoLink {
		al.head = nw
	} else {
		al.setNext(prev, nw)
	}
	if next != format.NoLink {
		al.setPrev(next, nw)
	}

	if al.cursor == old {
		al.cursor = nw
	}
}
