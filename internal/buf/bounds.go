// Package buf contains overflow-safe arithmetic and range checks shared by
// the arena accessors and the allocator's size calculations.
package buf

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange indicates a byte range that does not fit inside a buffer.
var ErrOutOfRange = errors.New("buf: range out of bounds")

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative values, returning ok = false
// when either is negative or the product would overflow int.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckRange validates that [off, off+n) lies inside a buffer of length size.
// It returns the end offset on success.
func CheckRange(size, off, n int) (int, error) {
	if off < 0 || n < 0 {
		return 0, fmt.Errorf("%w: off=%d n=%d", ErrOutOfRange, off, n)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("%w: overflow off=%d + n=%d", ErrOutOfRange, off, n)
	}
	if end > size {
		return 0, fmt.Errorf("%w: end=%d > len=%d", ErrOutOfRange, end, size)
	}
	return end, nil
}

// Span returns b[off:off+n] with its capacity clipped to n, so appends by
// the caller can never spill into the neighbouring bytes.
func Span(b []byte, off, n int) ([]byte, error) {
	end, err := CheckRange(len(b), off, n)
	if err != nil {
		return nil, err
	}
	return b[off:end:end], nil
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, err := CheckRange(len(b), off, n)
	return err == nil
}
