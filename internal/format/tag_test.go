package format

import "testing"

func TestTagRoundTrip(t *testing.T) {
	h := HeaderTag(4080, false, 0)
	got := DecodeTag(h.Word())
	if got != h {
		t.Fatalf("decode(%v) = %v", h, got)
	}
	if got.Size() != 4080 || got.Allocated() || got.Kind() != KindFree || !got.IsHeader() {
		t.Fatalf("unexpected decode: %v", got)
	}

	a := FooterTag(48, true, 25)
	got = DecodeTag(a.Word())
	if got.Raw != 49 || got.Size() != 48 || !got.Allocated() || got.Requested != 25 || !got.IsFooter() {
		t.Fatalf("unexpected decode: %v", got)
	}
	if got.Kind() != KindAllocated {
		t.Fatalf("kind = %v, want allocated", got.Kind())
	}
}

func TestSentinelTags(t *testing.T) {
	p := PrologueTag()
	e := EpilogueTag()
	if p.Kind() != KindSentinel || e.Kind() != KindSentinel {
		t.Fatalf("sentinels must decode as sentinels: %v %v", p, e)
	}
	if !p.IsFooter() || !e.IsHeader() {
		t.Fatalf("prologue is footer-shaped and epilogue header-shaped")
	}
	if p.Size() != 0 || !p.Allocated() {
		t.Fatalf("prologue must be a zero-length allocated block")
	}
}

func TestSameBlock(t *testing.T) {
	h := HeaderTag(64, true, 40)
	if !h.SameBlock(FooterTag(64, true, 40)) {
		t.Fatalf("matching header/footer rejected")
	}
	if h.SameBlock(FooterTag(64, false, 40)) {
		t.Fatalf("flag mismatch accepted")
	}
	if h.SameBlock(FooterTag(64, true, 41)) {
		t.Fatalf("requested size mismatch accepted")
	}
	if h.SameBlock(FooterTag(80, true, 40)) {
		t.Fatalf("size mismatch accepted")
	}
}

func TestWithAllocated(t *testing.T) {
	h := HeaderTag(96, true, 70)
	f := h.WithAllocated(false)
	if f.Allocated() || f.Size() != 96 || f.Magic != HeaderMagic {
		t.Fatalf("WithAllocated(false) = %v", f)
	}
	if !f.WithAllocated(true).Allocated() {
		t.Fatalf("WithAllocated(true) did not set flag")
	}
}

func TestTagReadWrite(t *testing.T) {
	b := make([]byte, 3*WordSize)
	PutTag(b, WordSize, HeaderTag(32, true, 10))
	got := ReadTag(b, WordSize)
	if got.Size() != 32 || got.Requested != 10 || !got.Allocated() {
		t.Fatalf("ReadTag = %v", got)
	}
	if ReadU64(b, 0) != 0 || ReadU64(b, 2*WordSize) != 0 {
		t.Fatalf("PutTag wrote outside its word")
	}
}

func TestBlockGeometry(t *testing.T) {
	hdr := FirstBlockOffset
	if PayloadOf(hdr) != 16 || HeaderOf(16) != hdr {
		t.Fatalf("payload/header offsets wrong")
	}
	if FooterOf(hdr, InitialBlockSize) != PageSize-2*WordSize {
		t.Fatalf("footer of first block = %d", FooterOf(hdr, InitialBlockSize))
	}
	if NextHeaderOf(hdr, InitialBlockSize) != EpilogueOffset(PageSize) {
		t.Fatalf("first block must end at the epilogue")
	}
	if PrevFooterOf(hdr) != PrologueOffset {
		t.Fatalf("first block must follow the prologue")
	}
}
