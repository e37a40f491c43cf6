package format

import (
	"errors"
	"testing"
)

func freshPage() []byte {
	b := make([]byte, PageSize)
	PutTag(b, PrologueOffset, PrologueTag())
	PutTag(b, FirstBlockOffset, HeaderTag(PageSize-2*WordSize, false, 0))
	PutTag(b, FooterOf(FirstBlockOffset, PageSize-2*WordSize), FooterTag(PageSize-2*WordSize, false, 0))
	PutTag(b, EpilogueOffset(PageSize), EpilogueTag())
	return b
}

func TestCheckSentinels(t *testing.T) {
	if _, err := CheckSentinels(freshPage()); err != nil {
		t.Fatalf("fresh page rejected: %v", err)
	}

	if off, err := CheckSentinels(make([]byte, 100)); !errors.Is(err, ErrTruncated) || off != -1 {
		t.Fatalf("short buffer: off=%d err=%v", off, err)
	}

	b := freshPage()
	PutU64(b, PrologueOffset, 0)
	if off, err := CheckSentinels(b); !errors.Is(err, ErrBadSentinel) || off != PrologueOffset {
		t.Fatalf("zeroed prologue: off=%d err=%v", off, err)
	}

	b = freshPage()
	PutTag(b, EpilogueOffset(PageSize), HeaderTag(32, true, 1))
	if off, err := CheckSentinels(b); !errors.Is(err, ErrBadSentinel) || off != EpilogueOffset(PageSize) {
		t.Fatalf("bad epilogue: off=%d err=%v", off, err)
	}
}
