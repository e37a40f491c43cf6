package alloc

import (
	"log/slog"

	"github.com/joshuapare/heapkit/arena/dirty"
	"github.com/joshuapare/heapkit/internal/format"
)

// Ref is a payload offset in the arena. It is always a multiple of 16.
type Ref = uint64

// Nil is the reference that never denotes a block.
const Nil Ref = 0

// DirtyTracker is a type alias for the canonical interface defined in arena/dirty.
type DirtyTracker = dirty.DirtyTracker

// Config tunes an Allocator.
type Config struct {
	// MaxRequestSize caps a single Malloc or Realloc request in bytes.
	// It must be between 1 and 65535 because the requested size is stored in
	// a 16-bit tag field.
	MaxRequestSize int

	// Logger receives debug events (growth, splits, coalescing, rejected
	// pointers). nil selects the package logger, which discards everything
	// unless HEAPKIT_LOG_ALLOC is set.
	Logger *slog.Logger
}

// DefaultConfig is used when New is given a nil config.
var DefaultConfig = Config{
	MaxRequestSize: format.DefaultMaxRequestSize,
}

func (c Config) validate() error {
	if c.MaxRequestSize <= 0 || c.MaxRequestSize > format.MaxRequestField {
		return ErrBadConfig
	}
	return nil
}

// Block describes one physical block.
type Block struct {
	// Offset is the header offset.
	Offset int
	// Size is the block size including header and footer.
	Size int
	// Requested is the caller's byte count; 0 for free blocks.
	Requested int
	// Allocated is the allocation flag.
	Allocated bool
}

// Ref returns the payload reference of an allocated block.
func (b Block) Ref() Ref { return Ref(format.PayloadOf(b.Offset)) }

// Usable returns the payload capacity.
func (b Block) Usable() int { return b.Size - format.DoubleWordSize }
