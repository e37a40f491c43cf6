package alloc

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/verify"
)

// newTestAllocator returns an allocator over a fresh in-memory arena capped
// at maxPages pages.
func newTestAllocator(t testing.TB, maxPages int) *Allocator {
	t.Helper()
	al, err := New(arena.New(arena.NewMemory(maxPages)), nil, nil)
	require.NoError(t, err)
	return al
}

// requireHeapValid checks every heap invariant plus the allocator's head and
// cursor.
func requireHeapValid(t testing.TB, al *Allocator) {
	t.Helper()
	require.NoError(t, verify.State(al.a.Bytes(), al.head, al.cursor))
}

// collectBlocks drains the block iterator.
func collectBlocks(t testing.TB, al *Allocator) []Block {
	t.Helper()
	var out []Block
	it := al.Blocks()
	for {
		b, err := it.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, b)
	}
}

// freeOffsets returns the header offsets of the free list in list order.
func freeOffsets(t testing.TB, al *Allocator) []int {
	t.Helper()
	list, err := al.FreeList()
	require.NoError(t, err)
	out := make([]int, 0, len(list))
	for _, b := range list {
		out = append(out, b.Offset)
	}
	return out
}

// mustMalloc allocates and fails the test on error.
func mustMalloc(t testing.TB, al *Allocator, size int) Ref {
	t.Helper()
	ref, _, err := al.Malloc(size)
	require.NoError(t, err)
	return ref
}

// fill writes a recognisable pattern derived from seed.
func fill(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i)
	}
}
