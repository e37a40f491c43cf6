package dirty

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/arena"
)

// memTarget is a plain in-memory target with no file behind it.
type memTarget struct{ b []byte }

func (m *memTarget) Bytes() []byte { return m.b }

func newMemTarget(pages int) *memTarget {
	return &memTarget{b: make([]byte, pages*arena.PageSize)}
}

func Test_Tracker_PageAlignment(t *testing.T) {
	tr := NewTracker(newMemTarget(4))
	tr.Add(100, 200)

	got := tr.coalesce()
	require.Len(t, got, 1)
	assert.Equal(t, Range{Off: 0, Len: 4096}, got[0])
}

func Test_Tracker_Coalesce(t *testing.T) {
	tests := []struct {
		name string
		adds [][2]int
		want []Range
	}{
		{
			name: "adjacent pages merge",
			adds: [][2]int{{4096, 4096}, {8192, 4096}},
			want: []Range{{Off: 4096, Len: 8192}},
		},
		{
			name: "overlapping words merge",
			adds: [][2]int{{4088, 8}, {4080, 16}, {8, 8}},
			want: []Range{{Off: 0, Len: 4096}},
		},
		{
			name: "unsorted gaps stay apart",
			adds: [][2]int{{12288, 8}, {8, 8}},
			want: []Range{{Off: 0, Len: 4096}, {Off: 12288, Len: 4096}},
		},
		{
			name: "straddling write covers both pages",
			adds: [][2]int{{4092, 8}},
			want: []Range{{Off: 0, Len: 8192}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(newMemTarget(4))
			for _, a := range tt.adds {
				tr.Add(a[0], a[1])
			}
			assert.Equal(t, tt.want, tr.coalesce())
		})
	}
}

func Test_Tracker_IgnoresEmptyRanges(t *testing.T) {
	tr := NewTracker(newMemTarget(1))
	tr.Add(16, 0)
	tr.Add(16, -8)
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.coalesce())
}

func Test_Tracker_RangesClippedToTarget(t *testing.T) {
	tr := NewTracker(newMemTarget(1))
	tr.Add(4088, 8)
	tr.Add(8192, 8) // beyond the target

	assert.Equal(t, []Range{{Off: 0, Len: 4096}}, tr.Ranges())
}

func Test_Tracker_FlushResets(t *testing.T) {
	tr := NewTracker(newMemTarget(2))
	tr.Add(8, 8)
	tr.Add(4096, 8)

	require.NoError(t, tr.Flush(context.Background(), FlushDataOnly))
	assert.Equal(t, 0, tr.Len())

	// Flushing with nothing dirty is a no-op.
	require.NoError(t, tr.Flush(context.Background(), FlushAuto))
}

func Test_Tracker_FlushCancelled(t *testing.T) {
	tr := NewTracker(newMemTarget(1))
	tr.Add(8, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, tr.Flush(ctx, FlushAuto), context.Canceled)
	assert.Equal(t, 1, tr.Len(), "ranges must survive a cancelled flush")
}

func Test_Tracker_FlushFileArena(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.bin")
	fp, err := arena.OpenFile(path, 4)
	require.NoError(t, err)
	defer fp.Close()

	_, err = fp.Grow()
	require.NoError(t, err)
	_, err = fp.Grow()
	require.NoError(t, err)

	data := fp.Bytes()
	data[8] = 0xAB
	data[4096+8] = 0xCD

	tr := NewTracker(fp)
	tr.Add(8, 1)
	tr.Add(4096+8, 1)

	for _, mode := range []FlushMode{FlushDataOnly, FlushAuto, FlushFull} {
		tr.Add(8, 1)
		require.NoError(t, tr.Flush(context.Background(), mode), mode.String())
	}
}

func Test_FlushMode_String(t *testing.T) {
	assert.Equal(t, "auto", FlushAuto.String())
	assert.Equal(t, "data-only", FlushDataOnly.String())
	assert.Equal(t, "full", FlushFull.String())
	assert.Equal(t, "unknown", FlushMode(99).String())
}
