package format

import "fmt"

// CheckSentinels verifies that b is page-sized and bracketed by a prologue at
// offset 0 and an epilogue in its last word. The returned error wraps
// ErrTruncated or ErrBadSentinel; the offset of the offending word is
// returned alongside it (-1 for a size problem).
func CheckSentinels(b []byte) (int, error) {
	n := len(b)
	if n < PageSize || n%PageSize != 0 {
		return -1, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrTruncated, n, PageSize)
	}
	if t := ReadTag(b, PrologueOffset); t != PrologueTag() {
		return PrologueOffset, fmt.Errorf("%w: bad prologue: %s", ErrBadSentinel, t)
	}
	epi := EpilogueOffset(n)
	if t := ReadTag(b, epi); t != EpilogueTag() {
		return epi, fmt.Errorf("%w: bad epilogue: %s", ErrBadSentinel, t)
	}
	return 0, nil
}
