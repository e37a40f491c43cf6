package alloc

import "github.com/joshuapare/heapkit/internal/format"

// coalesce merges the free block at hdr with free physical neighbours and
// leaves exactly one free-list entry covering the result. It returns the
// header of the merged block. Sentinels decode as allocated, so merging
// never crosses the prologue or epilogue.
func (al *Allocator) coalesce(hdr int) int {
	size := al.tag(hdr).Size()
	left := al.tag(format.PrevFooterOf(hdr))
	rightOff := format.NextHeaderOf(hdr, size)
	right := al.tag(rightOff)

	leftFree := left.Kind() == format.KindFree
	rightFree := right.Kind() == format.KindFree

	switch {
	case !leftFree && !rightFree:
		al.insertByAddress(hdr)
		al.stats.CoalesceNone++
		return hdr

	case leftFree && !rightFree:
		lh := hdr - left.Size()
		al.setBlock(lh, left.Size()+size, false, 0)
		al.stats.CoalesceLeft++
		al.log.Debug("coalesce left", "block", hdr, "into", lh, "size", left.Size()+size)
		return lh

	case !leftFree && rightFree:
		al.replace(rightOff, hdr)
		al.setBlock(hdr, size+right.Size(), false, 0)
		al.stats.CoalesceRight++
		al.log.Debug("coalesce right", "block", hdr, "absorbed", rightOff, "size", size+right.Size())
		return hdr

	default:
		lh := hdr - left.Size()
		next := al.next(rightOff)
		al.setNext(lh, next)
		if next != format.NoLink {
			al.setPrev(next, lh)
		}
		if al.cursor == rightOff {
			al.cursor = lh
		}
		total := left.Size() + size + right.Size()
		al.setBlock(lh, total, false, 0)
		al.stats.CoalesceBoth++
		al.log.Debug("coalesce both", "block", hdr, "into", lh, "absorbed", rightOff, "size", total)
		return lh
	}
}
