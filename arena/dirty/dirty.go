package dirty

import (
	"context"
	"slices"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// FlushMode controls durability guarantees.
type FlushMode int

const (
	// FlushAuto msyncs the dirty pages and then fdatasyncs the file.
	FlushAuto FlushMode = iota

	// FlushDataOnly only msyncs the dirty pages.
	FlushDataOnly

	// FlushFull msyncs the dirty pages and forces the data to the physical
	// device (F_FULLFSYNC on macOS).
	FlushFull
)

func (m FlushMode) String() string {
	switch m {
	case FlushAuto:
		return "auto"
	case FlushDataOnly:
		return "data-only"
	case FlushFull:
		return "full"
	default:
		return "unknown"
	}
}

// Range is a dirty byte range.
type Range struct {
	Off int64
	Len int64
}

// End returns the offset one past the range.
func (r Range) End() int64 { return r.Off + r.Len }

// Tracker accumulates dirty ranges and flushes them.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	target   Target
	ranges   []Range // raw, coalesced at flush time
	pageSize int64
}

// NewTracker creates a dirty tracker for target.
func NewTracker(target Target) *Tracker {
	return &Tracker{
		target:   target,
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: standardPageSize,
	}
}

// Add records a dirty range. Zero or negative lengths are ignored.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: int64(off), Len: int64(length)})
}

// Len returns the number of raw ranges recorded since the last flush.
func (t *Tracker) Len() int { return len(t.ranges) }

// Flush writes every dirty page to disk and clears the tracker.
//
// The context is checked before each range; when it is cancelled midway some
// ranges may have been flushed while others have not, and the tracker keeps
// all of them so a later Flush retries.
func (t *Tracker) Flush(ctx context.Context, mode FlushMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(t.ranges) == 0 {
		return nil
	}
	data := t.target.Bytes()
	if len(data) == 0 {
		t.Reset()
		return nil
	}

	if err := t.flushRanges(ctx, data, t.Ranges()); err != nil {
		return err
	}

	if mode != FlushDataOnly {
		if ft, ok := t.target.(fdTarget); ok && ft.Fd() >= 0 {
			if err := fdatasync(ft.Fd(), mode == FlushFull); err != nil {
				return err
			}
		}
	}

	t.Reset()
	return nil
}

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Ranges returns the page-aligned, sorted and merged ranges a Flush would
// write, clipped to the target's current size.
func (t *Tracker) Ranges() []Range {
	merged := t.coalesce()
	limit := int64(len(t.target.Bytes()))
	out := merged[:0]
	for _, r := range merged {
		if r.Off >= limit {
			continue
		}
		if r.End() > limit {
			r.Len = limit - r.Off
		}
		out = append(out, r)
	}
	return out
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping or
// adjacent ones.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.End()
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	slices.SortFunc(aligned, func(a, b Range) int {
		switch {
		case a.Off < b.Off:
			return -1
		case a.Off > b.Off:
			return 1
		default:
			return 0
		}
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.End() {
			current.Len = max(current.End(), next.End()) - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
