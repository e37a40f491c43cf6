package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Raw tag and link access for the engine. Offsets come from tags the engine
// wrote itself, so these skip the bounds checks the validator does.

func (al *Allocator) tag(off int) format.Tag {
	return format.ReadTag(al.a.Bytes(), off)
}

func (al *Allocator) putTag(off int, t format.Tag) {
	format.PutTag(al.a.Bytes(), off, t)
	al.mark(off, format.WordSize)
}

// setBlock writes matching header and footer tags for the block at hdr.
func (al *Allocator) setBlock(hdr, size int, allocated bool, requested int) {
	al.putTag(hdr, format.HeaderTag(size, allocated, requested))
	al.putTag(format.FooterOf(hdr, size), format.FooterTag(size, allocated, requested))
}

func (al *Allocator) prev(hdr int) int {
	return int(format.ReadU64(al.a.Bytes(), hdr+format.PrevLinkOffset))
}

func (al *Allocator) next(hdr int) int {
	return int(format.ReadU64(al.a.Bytes(), hdr+format.NextLinkOffset))
}

func (al *Allocator) setPrev(hdr, v int) {
	format.PutU64(al.a.Bytes(), hdr+format.PrevLinkOffset, uint64(v))
	al.mark(hdr+format.PrevLinkOffset, format.WordSize)
}

func (al *Allocator) setNext(hdr, v int) {
	format.PutU64(al.a.Bytes(), hdr+format.NextLinkOffset, uint64(v))
	al.mark(hdr+format.NextLinkOffset, format.WordSize)
}

// mark reports a write to the dirty tracker.
func (al *Allocator) mark(off, n int) {
	if al.dt != nil {
		al.dt.Add(off, n)
	}
}
