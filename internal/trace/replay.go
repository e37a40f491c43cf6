package trace

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/arena/alloc"
)

var (
	// ErrUnknownID indicates an operation on an id that is not live.
	ErrUnknownID = errors.New("trace: unknown block id")

	// ErrDuplicateID indicates an allocation under an id that is still live.
	ErrDuplicateID = errors.New("trace: block id already live")
)

// Result counts the outcome of a replay.
type Result struct {
	Ops      int
	Failures int // operations the allocator rejected
}

// Replayer applies operations to an allocator and keeps the id to reference
// mapping. Every payload is filled with a pattern derived from its id so
// corruption shows up when a block is resized.
type Replayer struct {
	al   *alloc.Allocator
	live map[string]alloc.Ref

	// Check, when set, runs after every operation. A non-nil error stops
	// the replay.
	Check func() error

	// KeepGoing continues after allocator errors instead of stopping.
	KeepGoing bool
}

// NewReplayer creates a replayer for al.
func NewReplayer(al *alloc.Allocator) *Replayer {
	return &Replayer{al: al, live: make(map[string]alloc.Ref)}
}

// Live returns the number of live ids.
func (rp *Replayer) Live() int { return len(rp.live) }

// Ref returns the reference currently named id.
func (rp *Replayer) Ref(id string) (alloc.Ref, bool) {
	ref, ok := rp.live[id]
	return ref, ok
}

// Run applies ops in order.
func (rp *Replayer) Run(ops []Op) (Result, error) {
	var res Result
	for _, op := range ops {
		res.Ops++
		if err := rp.Step(op); err != nil {
			res.Failures++
			if !rp.KeepGoing || isFatal(err) {
				return res, fmt.Errorf("line %d (%s): %w", op.Line, op, err)
			}
		}
		if rp.Check != nil {
			if err := rp.Check(); err != nil {
				return res, fmt.Errorf("line %d (%s): heap check failed: %w", op.Line, op, err)
			}
		}
	}
	return res, nil
}

// Step applies one operation.
func (rp *Replayer) Step(op Op) error {
	switch op.Kind {
	case KindAlloc:
		if _, ok := rp.live[op.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateID, op.ID)
		}
		ref, b, err := rp.al.Malloc(op.Size)
		if err != nil {
			return err
		}
		pattern(b, op.ID)
		rp.live[op.ID] = ref
		return nil

	case KindFree:
		ref, ok := rp.live[op.ID]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownID, op.ID)
		}
		if err := rp.al.Free(ref); err != nil {
			return err
		}
		delete(rp.live, op.ID)
		return nil

	case KindRealloc:
		ref, ok := rp.live[op.ID]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownID, op.ID)
		}
		old, err := rp.al.Payload(ref)
		if err != nil {
			return err
		}
		oldLen := len(old)

		nref, b, err := rp.al.Realloc(ref, op.Size)
		if err != nil {
			return err
		}
		if op.Size == 0 {
			delete(rp.live, op.ID)
			return nil
		}
		if !hasPattern(b[:min(oldLen, op.Size)], op.ID) {
			return fmt.Errorf("%w: realloc of %q lost payload bytes", alloc.ErrCorrupt, op.ID)
		}
		pattern(b, op.ID)
		rp.live[op.ID] = nref
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrSyntax, op.Kind)
	}
}

// isFatal reports errors that mean the trace or the heap is broken, as
// opposed to the allocator refusing a request.
func isFatal(err error) bool {
	return errors.Is(err, ErrUnknownID) || errors.Is(err, ErrDuplicateID) ||
		errors.Is(err, ErrSyntax) || errors.Is(err, alloc.ErrCorrupt)
}

func patternByte(id string, i int) byte {
	return id[i%len(id)] + byte(i)
}

func pattern(b []byte, id string) {
	for i := range b {
		b[i] = patternByte(id, i)
	}
}

func hasPattern(b []byte, id string) bool {
	for i := range b {
		if b[i] != patternByte(id, i) {
			return false
		}
	}
	return true
}
