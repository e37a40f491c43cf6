package alloc

import "fmt"

// Stats holds allocator counters.
type Stats struct {
	MallocCalls  int // Total Malloc() calls (Calloc included)
	FreeCalls    int // Total Free() calls
	ReallocCalls int // Total Realloc() calls

	FastPath int // Allocations served without growth
	SlowPath int // Allocations that required growth

	PagesGrown   int // Pages obtained from the provider
	GrowFailures int // Provider refusals

	Splits int // Free blocks split by an allocation

	CoalesceNone  int // Frees with no free neighbour
	CoalesceLeft  int // Merges into the left neighbour
	CoalesceRight int // Merges with the right neighbour
	CoalesceBoth  int // Three-way merges

	InvalidPointers int // References the validator rejected

	BlocksInUse int   // Live allocated blocks
	BytesInUse  int64 // Bytes in live blocks, headers and footers included
}

// Stats returns a copy of the counters.
func (al *Allocator) Stats() Stats {
	return al.stats
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"malloc=%d free=%d realloc=%d fast=%d slow=%d pages=%d splits=%d coalesce=%d/%d/%d/%d invalid=%d in_use=%d (%d bytes)",
		s.MallocCalls, s.FreeCalls, s.ReallocCalls,
		s.FastPath, s.SlowPath, s.PagesGrown, s.Splits,
		s.CoalesceNone, s.CoalesceLeft, s.CoalesceRight, s.CoalesceBoth,
		s.InvalidPointers, s.BlocksInUse, s.BytesInUse,
	)
}
