package alloc

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/verify"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Allocator is a boundary-tag allocator over one arena.
//
// NOT thread-safe.
type Allocator struct {
	a   *arena.Arena
	dt  DirtyTracker
	cfg Config
	log *slog.Logger

	ready  bool // prologue, epilogue and free list are in place
	head   int  // lowest free block header, NoLink when the list is empty
	cursor int  // next-fit starting point, NoLink when the list is empty

	stats Stats
}

// New creates an allocator over a.
//
// Parameters:
//   - a: The arena to allocate from
//   - dt: Dirty tracker for every metadata write (can be nil)
//   - cfg: Configuration (use nil for DefaultConfig)
//
// An empty arena is initialised lazily by the first Malloc. An arena that
// already holds pages (a reopened heap file) is verified and attached: the
// free-list head is recovered from the bytes and the cursor starts there.
func New(a *arena.Arena, dt DirtyTracker, cfg *Config) (*Allocator, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: max request size %d must be in [1, %d]",
			err, cfg.MaxRequestSize, format.MaxRequestField)
	}

	al := &Allocator{
		a:      a,
		dt:     dt,
		cfg:    *cfg,
		log:    cfg.Logger,
		head:   format.NoLink,
		cursor: format.NoLink,
	}
	if al.log == nil {
		al.log = defaultLogger
	}

	if !a.Empty() {
		if err := al.attach(); err != nil {
			return nil, err
		}
	}
	return al, nil
}

// attach recovers allocator state from existing heap bytes.
func (al *Allocator) attach() error {
	blocks, err := verify.Layout(al.a.Bytes())
	if err == nil {
		err = verify.FreeList(al.a.Bytes(), blocks)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	for _, b := range blocks {
		if b.Allocated {
			al.stats.BlocksInUse++
			al.stats.BytesInUse += int64(b.Size)
			continue
		}
		if al.head == format.NoLink {
			al.head = b.Offset
		}
	}
	al.cursor = al.head
	al.ready = true

	al.log.Debug("attached to heap",
		"boundary", al.a.Boundary(),
		"blocks", len(blocks),
		"head", al.head)
	return nil
}

// Malloc allocates size bytes and returns the payload reference and a slice
// of exactly size bytes over the payload.
//
// The slice aliases the arena and is invalidated when a file arena remaps on
// growth; use Payload to re-resolve it.
func (al *Allocator) Malloc(size int) (Ref, []byte, error) {
	al.stats.MallocCalls++

	if size <= 0 {
		return Nil, nil, fmt.Errorf("%w: %d", ErrInvalidRequest, size)
	}
	if size > al.cfg.MaxRequestSize {
		al.log.Warn("request above cap", "size", size, "max", al.cfg.MaxRequestSize)
		return Nil, nil, fmt.Errorf("%w: request of %d bytes exceeds cap of %d",
			ErrOutOfMemory, size, al.cfg.MaxRequestSize)
	}

	if err := al.ensureHeap(); err != nil {
		return Nil, nil, err
	}

	hdr, err := al.allocate(size)
	if err != nil {
		return Nil, nil, err
	}
	p := format.PayloadOf(hdr)
	return Ref(p), al.payload(p, size), nil
}

// Calloc allocates n*size bytes and zeroes them.
func (al *Allocator) Calloc(n, size int) (Ref, []byte, error) {
	if n < 0 || size < 0 {
		return Nil, nil, fmt.Errorf("%w: %d * %d", ErrInvalidRequest, n, size)
	}
	total, ok := buf.MulOverflowSafe(n, size)
	if !ok {
		return Nil, nil, fmt.Errorf("%w: %d * %d overflows", ErrOutOfMemory, n, size)
	}
	ref, b, err := al.Malloc(total)
	if err != nil {
		return Nil, nil, err
	}
	clear(b)
	al.mark(int(ref), total)
	return ref, b, nil
}

// Free releases the block at ref.
func (al *Allocator) Free(ref Ref) error {
	al.stats.FreeCalls++

	hdr, err := al.validate(ref)
	if err != nil {
		return err
	}
	al.release(hdr)
	return nil
}

// Realloc resizes the block at ref. The result is always a new block: the
// first min(old requested size, size) bytes are copied over and the old
// block is released. size 0 releases ref and returns Nil. When the new block
// cannot be allocated the old one is left allocated and untouched.
func (al *Allocator) Realloc(ref Ref, size int) (Ref, []byte, error) {
	al.stats.ReallocCalls++

	hdr, err := al.validate(ref)
	if err != nil {
		return Nil, nil, err
	}
	if size == 0 {
		al.release(hdr)
		return Nil, nil, nil
	}
	if size < 0 {
		return Nil, nil, fmt.Errorf("%w: %d", ErrInvalidRequest, size)
	}
	if size > al.cfg.MaxRequestSize {
		al.log.Warn("realloc above cap", "size", size, "max", al.cfg.MaxRequestSize)
		return Nil, nil, fmt.Errorf("%w: request of %d bytes exceeds cap of %d",
			ErrOutOfMemory, size, al.cfg.MaxRequestSize)
	}

	oldReq := int(al.tag(hdr).Requested)

	newHdr, err := al.allocate(size)
	if err != nil {
		return Nil, nil, err
	}

	n := min(oldReq, size)
	src, dst := format.PayloadOf(hdr), format.PayloadOf(newHdr)
	if err := al.a.Move(dst, src, n); err != nil {
		return Nil, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	al.mark(dst, n)

	al.release(hdr)
	return Ref(dst), al.payload(dst, size), nil
}

// Payload returns the payload of a live block, sized to the requested byte
// count.
func (al *Allocator) Payload(ref Ref) ([]byte, error) {
	hdr, err := al.validate(ref)
	if err != nil {
		return nil, err
	}
	return al.payload(int(ref), int(al.tag(hdr).Requested)), nil
}

// UsableSize returns how many payload bytes the block at ref can hold.
func (al *Allocator) UsableSize(ref Ref) (int, error) {
	hdr, err := al.validate(ref)
	if err != nil {
		return 0, err
	}
	return al.tag(hdr).Size() - format.DoubleWordSize, nil
}

// FreeListHead returns the header offset of the lowest free block, or 0.
func (al *Allocator) FreeListHead() int { return al.head }

// Cursor returns the header offset where the next search starts, or 0.
func (al *Allocator) Cursor() int { return al.cursor }

// Arena returns the underlying arena.
func (al *Allocator) Arena() *arena.Arena { return al.a }

// allocate finds or makes room for size bytes and places the block.
func (al *Allocator) allocate(size int) (int, error) {
	asize := format.AdjustSize(size)

	blk, ok := al.findNextFit(asize)
	if ok {
		al.stats.FastPath++
	} else {
		al.stats.SlowPath++
		var err error
		if blk, err = al.extendHeap(asize); err != nil {
			return 0, err
		}
	}

	al.place(blk, asize, size)
	return blk, nil
}

// release clears the allocation flag and requested size and coalesces.
func (al *Allocator) release(hdr int) {
	size := al.tag(hdr).Size()
	al.setBlock(hdr, size, false, 0)
	al.stats.BlocksInUse--
	al.stats.BytesInUse -= int64(size)
	al.coalesce(hdr)
}

func (al *Allocator) payload(p, n int) []byte {
	return al.a.Bytes()[p : p+n : p+n]
}
