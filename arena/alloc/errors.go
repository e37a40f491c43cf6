package alloc

import "errors"

var (
	// ErrInvalidRequest indicates a zero or negative allocation size.
	ErrInvalidRequest = errors.New("alloc: invalid request size")

	// ErrOutOfMemory indicates the request exceeds the configured cap or the
	// provider cannot supply another page.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrInvalidPointer indicates a reference that does not denote a live
	// allocated block.
	ErrInvalidPointer = errors.New("alloc: invalid pointer")

	// ErrCorrupt indicates heap bytes that violate the block layout.
	ErrCorrupt = errors.New("alloc: heap is corrupt")

	// ErrBadConfig indicates an unusable Config.
	ErrBadConfig = errors.New("alloc: bad config")
)
