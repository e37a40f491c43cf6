package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// validate checks that ref denotes a live allocated block and returns its
// header offset. Failures are reported as ErrInvalidPointer and never touch
// the heap.
func (al *Allocator) validate(ref Ref) (int, error) {
	hdr, reason := al.check(ref)
	if reason != "" {
		al.stats.InvalidPointers++
		al.log.Debug("rejected pointer", "ref", ref, "reason", reason)
		return 0, fmt.Errorf("%w: 0x%X: %s", ErrInvalidPointer, ref, reason)
	}
	return hdr, nil
}

func (al *Allocator) check(ref Ref) (int, string) {
	if !al.ready {
		return 0, "heap not initialised"
	}
	// Header and footer must lie strictly between the prologue and the epilogue.
	epi := format.EpilogueOffset(al.a.Boundary())
	if ref <= format.FirstBlockOffset || ref >= uint64(epi) {
		return 0, "outside heap"
	}
	if !format.IsAligned16(int(ref)) {
		return 0, "misaligned"
	}
	hdr := format.HeaderOf(int(ref))
	h, err := al.a.ReadTag(hdr)
	if err != nil {
		return 0, err.Error()
	}
	size := h.Size()
	if size < format.MinBlockSize || size%format.DoubleWordSize != 0 {
		return 0, "bad block size"
	}
	foot := format.FooterOf(hdr, size)
	if foot >= epi {
		return 0, "footer outside heap"
	}
	f, err := al.a.ReadTag(foot)
	if err != nil {
		return 0, err.Error()
	}

	switch {
	case !h.IsHeader() || !f.IsFooter():
		return 0, "bad magic"
	case h.Raw != f.Raw:
		return 0, "header and footer sizes differ"
	case !h.Allocated() || !f.Allocated():
		return 0, "block is not allocated"
	case h.Requested != f.Requested:
		return 0, "header and footer requested sizes differ"
	}
	return hdr, ""
}
