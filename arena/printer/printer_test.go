package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
)

// newTestHeap builds: alloc(10) alloc(5000) free(rest) with a hole where a
// 100-byte block was freed.
func newTestHeap(t *testing.T) *alloc.Allocator {
	t.Helper()
	al, err := alloc.New(arena.New(arena.NewMemory(4)), nil, nil)
	require.NoError(t, err)

	_, _, err = al.Malloc(10)
	require.NoError(t, err)
	hole, _, err := al.Malloc(100)
	require.NoError(t, err)
	_, _, err = al.Malloc(5000)
	require.NoError(t, err)
	require.NoError(t, al.Free(hole))
	return al
}

func Test_ParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("reg")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func Test_Summarize(t *testing.T) {
	al := newTestHeap(t)
	blocks, err := Walk(al)
	require.NoError(t, err)

	s := Summarize(al, blocks)
	assert.Equal(t, 2*arena.PageSize, s.Boundary)
	assert.Equal(t, 2, s.Pages)
	assert.Equal(t, 4, s.Blocks)
	assert.Equal(t, 2, s.AllocatedCount)
	assert.Equal(t, 2, s.FreeCount)
	assert.Equal(t, 32+5024, s.AllocatedBytes)
	assert.Equal(t, 5010, s.RequestedBytes)
	assert.Equal(t, 128+s.LargestFree, s.FreeBytes)
	assert.Equal(t, s.Boundary-16, s.AllocatedBytes+s.FreeBytes)
	assert.InDelta(t, 128.0/float64(s.FreeBytes), s.Fragmentation, 1e-9)
	assert.Equal(t, 40, s.Head)
}

func Test_PrintText(t *testing.T) {
	al := newTestHeap(t)

	var buf bytes.Buffer
	require.NoError(t, New(al, &buf, DefaultOptions()).Print())
	out := buf.String()

	assert.Contains(t, out, "Heap: 8,192 bytes (2 pages)")
	assert.Contains(t, out, "Blocks: 4 (2 allocated, 2 free)")
	assert.Contains(t, out, "Allocated: 5,056 bytes (requested 5,010)")
	assert.Contains(t, out, "OFFSET")
	assert.Contains(t, out, "0x00000008")
	assert.Contains(t, out, "allocated")
	assert.Contains(t, out, "Free list (2):")
	assert.Contains(t, out, "<- cursor")
}

func Test_PrintSummaryOnly(t *testing.T) {
	al := newTestHeap(t)

	var buf bytes.Buffer
	p := New(al, &buf, DefaultOptions())
	require.NoError(t, p.PrintSummary())
	assert.NotContains(t, buf.String(), "OFFSET")
	assert.NotContains(t, buf.String(), "Free list (")

	// Options are restored afterwards.
	buf.Reset()
	require.NoError(t, p.Print())
	assert.Contains(t, buf.String(), "OFFSET")
}

func Test_PrintJSON(t *testing.T) {
	al := newTestHeap(t)

	opts := DefaultOptions()
	opts.Format = FormatJSON
	var buf bytes.Buffer
	require.NoError(t, New(al, &buf, opts).Print())

	var doc jsonHeap
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 4, doc.Summary.Blocks)
	require.Len(t, doc.Blocks, 4)
	assert.Equal(t, jsonBlock{Offset: 8, Size: 32, State: "allocated", Requested: 10}, doc.Blocks[0])
	assert.Equal(t, "free", doc.Blocks[1].State)
	require.Len(t, doc.FreeList, 2)
	assert.Equal(t, 40, doc.FreeList[0].Offset)
}

func Test_PrintEmptyHeap(t *testing.T) {
	al, err := alloc.New(arena.New(arena.NewMemory(1)), nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(al, &buf, Options{}).Print())
	assert.Contains(t, buf.String(), "Heap: 0 bytes (0 pages)")
}

func Test_PrintUnknownFormat(t *testing.T) {
	al := newTestHeap(t)
	err := New(al, &bytes.Buffer{}, Options{Format: "xml"}).Print()
	require.ErrorIs(t, err, ErrUnknownFormat)
}
