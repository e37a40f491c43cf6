package format

import "fmt"

// Kind classifies a decoded tag.
type Kind uint8

const (
	// KindFree is a free block: flag clear, size at least MinBlockSize.
	KindFree Kind = iota
	// KindAllocated is an allocated block.
	KindAllocated
	// KindSentinel is the prologue or epilogue: a zero-length allocated block.
	KindSentinel
)

func (k Kind) String() string {
	switch k {
	case KindFree:
		return "free"
	case KindAllocated:
		return "allocated"
	case KindSentinel:
		return "sentinel"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Tag is a decoded boundary tag. Headers, footers and both sentinels share
// this one word layout; only the magic tells a header from a footer.
type Tag struct {
	// Raw is the size field as stored, allocation flag included.
	Raw uint32
	// Magic is HeaderMagic or FooterMagic.
	Magic uint16
	// Requested is the caller's original byte count (0 when free).
	Requested uint16
}

// EncodeTag builds a tag. size must already be a multiple of 16 (or 0 for
// sentinels); allocated sets the flag bit.
func EncodeTag(size int, allocated bool, magic uint16, requested int) Tag {
	raw := uint32(size)
	if allocated {
		raw |= AllocFlag
	}
	return Tag{Raw: raw, Magic: magic, Requested: uint16(requested)}
}

// HeaderTag builds a header tag.
func HeaderTag(size int, allocated bool, requested int) Tag {
	return EncodeTag(size, allocated, HeaderMagic, requested)
}

// FooterTag builds a footer tag.
func FooterTag(size int, allocated bool, requested int) Tag {
	return EncodeTag(size, allocated, FooterMagic, requested)
}

// PrologueTag is the footer-shaped word at offset 0.
func PrologueTag() Tag {
	return Tag{Raw: SentinelSize, Magic: FooterMagic, Requested: SentinelRequested}
}

// EpilogueTag is the header-shaped word at the heap boundary.
func EpilogueTag() Tag {
	return Tag{Raw: SentinelSize, Magic: HeaderMagic, Requested: SentinelRequested}
}

// DecodeTag splits a raw word into its fields.
func DecodeTag(w uint64) Tag {
	return Tag{
		Raw:       uint32(w & sizeFieldMask),
		Magic:     uint16((w >> magicShift) & magicMask),
		Requested: uint16(w >> requestShift),
	}
}

// Word packs the tag back into its on-heap form.
func (t Tag) Word() uint64 {
	return uint64(t.Raw) | uint64(t.Magic)<<magicShift | uint64(t.Requested)<<requestShift
}

// Size returns the block size with the flag bits masked off.
func (t Tag) Size() int {
	return int(t.Raw &^ sizeFlagMask)
}

// Allocated reports whether the allocation flag is set.
func (t Tag) Allocated() bool {
	return t.Raw&AllocFlag != 0
}

// Kind classifies the tag. A zero size with the flag set is a sentinel.
func (t Tag) Kind() Kind {
	switch {
	case t.Allocated() && t.Size() == 0:
		return KindSentinel
	case t.Allocated():
		return KindAllocated
	default:
		return KindFree
	}
}

// IsHeader reports whether the tag carries the header magic.
func (t Tag) IsHeader() bool { return t.Magic == HeaderMagic }

// IsFooter reports whether the tag carries the footer magic.
func (t Tag) IsFooter() bool { return t.Magic == FooterMagic }

// SameBlock reports whether a header and a footer describe the same block:
// identical size words (flag included) and identical requested sizes.
func (t Tag) SameBlock(footer Tag) bool {
	return t.Raw == footer.Raw && t.Requested == footer.Requested
}

// WithAllocated returns a copy of t with the flag set or cleared.
func (t Tag) WithAllocated(allocated bool) Tag {
	if allocated {
		t.Raw |= AllocFlag
	} else {
		t.Raw &^= AllocFlag
	}
	return t
}

func (t Tag) String() string {
	return fmt.Sprintf("%s size=%d magic=0x%04X req=%d", t.Kind(), t.Size(), t.Magic, t.Requested)
}

// PayloadOf returns the payload offset of the block whose header is at hdr.
func PayloadOf(hdr int) int { return hdr + WordSize }

// HeaderOf returns the header offset for a payload offset.
func HeaderOf(payload int) int { return payload - WordSize }

// FooterOf returns the footer offset of a block of the given size.
func FooterOf(hdr, size int) int { return hdr + size - WordSize }

// NextHeaderOf returns the header offset of the block physically after the
// block at hdr.
func NextHeaderOf(hdr, size int) int { return hdr + size }

// PrevFooterOf returns the offset of the footer (or prologue) physically
// before the block at hdr.
func PrevFooterOf(hdr int) int { return hdr - WordSize }

// EpilogueOffset returns the epilogue offset for a heap of the given size.
func EpilogueOffset(boundary int) int { return boundary - WordSize }
