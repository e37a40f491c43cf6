package alloc

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// Test_Property_RandomOps runs random malloc/free/realloc sequences and
// checks the heap invariants and every live payload after each step.
func Test_Property_RandomOps(t *testing.T) {
	for _, seed := range []int64{1, 42, 1337, 2024} {
		rng := rand.New(rand.NewSource(seed))
		al := newTestAllocator(t, 48)

		live := make(map[Ref][]byte)
		var refs []Ref

		remove := func(i int) Ref {
			ref := refs[i]
			refs[i] = refs[len(refs)-1]
			refs = refs[:len(refs)-1]
			delete(live, ref)
			return ref
		}

		randSize := func() int {
			if rng.Intn(10) == 0 {
				return 1 + rng.Intn(format.DefaultMaxRequestSize)
			}
			return 1 + rng.Intn(512)
		}

		for step := 0; step < 1500; step++ {
			switch op := rng.Intn(10); {
			case op < 5 || len(refs) == 0:
				size := randSize()
				ref, b, err := al.Malloc(size)
				if errors.Is(err, ErrOutOfMemory) {
					break
				}
				require.NoError(t, err, "seed %d step %d: malloc(%d)", seed, step, size)
				require.Zero(t, ref%format.DoubleWordSize)
				require.Len(t, b, size)
				fill(b, byte(step))
				live[ref] = append([]byte(nil), b...)
				refs = append(refs, ref)

			case op < 8:
				i := rng.Intn(len(refs))
				ref := remove(i)
				require.NoError(t, al.Free(ref), "seed %d step %d: free(0x%X)", seed, step, ref)
				require.ErrorIs(t, al.Free(ref), ErrInvalidPointer)

			default:
				i := rng.Intn(len(refs))
				ref := refs[i]
				old := live[ref]
				size := randSize()
				nref, b, err := al.Realloc(ref, size)
				if errors.Is(err, ErrOutOfMemory) {
					p, perr := al.Payload(ref)
					require.NoError(t, perr)
					require.Equal(t, old, p, "failed realloc must keep the old block")
					break
				}
				require.NoError(t, err, "seed %d step %d: realloc(0x%X, %d)", seed, step, ref, size)
				n := min(len(old), size)
				require.True(t, bytes.Equal(old[:n], b[:n]), "seed %d step %d: realloc lost data", seed, step)
				remove(i)
				fill(b, byte(step))
				live[nref] = append([]byte(nil), b...)
				refs = append(refs, nref)
			}

			requireHeapValid(t, al)
		}

		for ref, want := range live {
			got, err := al.Payload(ref)
			require.NoError(t, err)
			require.Equal(t, want, got, "seed %d: payload at 0x%X", seed, ref)
		}

		// Releasing everything collapses the heap into one free block.
		for _, ref := range refs {
			require.NoError(t, al.Free(ref))
		}
		blocks := collectBlocks(t, al)
		require.Len(t, blocks, 1)
		require.False(t, blocks[0].Allocated)
		require.Equal(t, al.a.Boundary()-format.DoubleWordSize, blocks[0].Size)
		requireHeapValid(t, al)
	}
}
