package format

import "errors"

var (
	// ErrTruncated indicates the buffer is not a whole number of pages.
	ErrTruncated = errors.New("format: truncated heap")
	// ErrBadSentinel indicates a prologue or epilogue word is malformed.
	ErrBadSentinel = errors.New("format: malformed sentinel")
)
