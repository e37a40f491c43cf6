package verify

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// ValidationError describes the first invariant a heap violates.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Error types.
const (
	TypeSize      = "HeapSize"
	TypeSentinel  = "Sentinel"
	TypeBlock     = "Block"
	TypeFooter    = "Footer"
	TypeAdjacency = "Adjacency"
	TypeFreeList  = "FreeList"
	TypeState     = "State"
)

// Block is one physical block found by Layout.
type Block struct {
	Offset    int
	Size      int
	Requested int
	Allocated bool
}

// Heap validates every invariant that can be checked from the bytes alone.
// An empty buffer is a heap that was never initialised and is valid.
func Heap(data []byte) error {
	blocks, err := Layout(data)
	if err != nil {
		return err
	}
	return FreeList(data, blocks)
}

// State validates the heap and the allocator's head and cursor. head must be
// the lowest free block and cursor must be a free block; both are NoLink on a
// heap with no free blocks.
func State(data []byte, head, cursor int) error {
	blocks, err := Layout(data)
	if err != nil {
		return err
	}
	if err := FreeList(data, blocks); err != nil {
		return err
	}

	lowest := format.NoLink
	free := make(map[int]bool)
	for _, b := range blocks {
		if b.Allocated {
			continue
		}
		if lowest == format.NoLink {
			lowest = b.Offset
		}
		free[b.Offset] = true
	}

	if head != lowest {
		return &ValidationError{
			Type:    TypeState,
			Message: fmt.Sprintf("head is 0x%X, lowest free block is 0x%X", head, lowest),
			Offset:  head,
		}
	}
	if cursor == format.NoLink {
		if len(free) > 0 {
			return &ValidationError{
				Type:    TypeState,
				Message: "cursor is unset but free blocks exist",
				Offset:  -1,
			}
		}
		return nil
	}
	if !free[cursor] {
		return &ValidationError{
			Type:    TypeState,
			Message: "cursor does not point at a free block",
			Offset:  cursor,
		}
	}
	return nil
}

// Layout walks the physical blocks from the prologue to the epilogue and
// checks sentinels, tag shape, header/footer agreement and that no two free
// blocks touch.
func Layout(data []byte) ([]Block, error) {
	n := len(data)
	if n == 0 {
		return nil, nil
	}
	if off, err := format.CheckSentinels(data); err != nil {
		typ := TypeSentinel
		if errors.Is(err, format.ErrTruncated) {
			typ = TypeSize
		}
		return nil, &ValidationError{Type: typ, Message: err.Error(), Offset: off}
	}
	epi := format.EpilogueOffset(n)

	var blocks []Block
	prevFree := false
	for off := format.FirstBlockOffset; off < epi; {
		hdr := format.ReadTag(data, off)
		size := hdr.Size()

		if !hdr.IsHeader() {
			return nil, &ValidationError{
				Type:    TypeBlock,
				Message: fmt.Sprintf("bad header magic 0x%04X", hdr.Magic),
				Offset:  off,
			}
		}
		if hdr.Kind() == format.KindSentinel || size < format.MinBlockSize || size%format.DoubleWordSize != 0 {
			return nil, &ValidationError{
				Type:    TypeBlock,
				Message: fmt.Sprintf("bad block size %d", size),
				Offset:  off,
			}
		}
		if off+size > epi {
			return nil, &ValidationError{
				Type:    TypeBlock,
				Message: fmt.Sprintf("block of %d bytes runs past the epilogue at 0x%X", size, epi),
				Offset:  off,
			}
		}

		foot := format.ReadTag(data, format.FooterOf(off, size))
		if !foot.IsFooter() || !hdr.SameBlock(foot) {
			return nil, &ValidationError{
				Type:    TypeFooter,
				Message: fmt.Sprintf("header %s does not match footer %s", hdr, foot),
				Offset:  format.FooterOf(off, size),
			}
		}

		free := !hdr.Allocated()
		if free && hdr.Requested != 0 {
			return nil, &ValidationError{
				Type:    TypeBlock,
				Message: fmt.Sprintf("free block records requested size %d", hdr.Requested),
				Offset:  off,
			}
		}
		if free && prevFree {
			return nil, &ValidationError{
				Type:    TypeAdjacency,
				Message: "two adjacent free blocks",
				Offset:  off,
			}
		}
		prevFree = free

		blocks = append(blocks, Block{
			Offset:    off,
			Size:      size,
			Requested: int(hdr.Requested),
			Allocated: !free,
		})
		off += size
	}
	return blocks, nil
}

// FreeList follows the links from the lowest free block and checks that the
// list visits every free block exactly once in address order with matching
// back links.
func FreeList(data []byte, blocks []Block) error {
	var free []int
	for _, b := range blocks {
		if !b.Allocated {
			free = append(free, b.Offset)
		}
	}
	if len(free) == 0 {
		return nil
	}

	link := func(hdr, at int) int {
		return int(format.ReadU64(data, hdr+at))
	}

	prev := format.NoLink
	cur := free[0]
	for i := 0; cur != format.NoLink; i++ {
		if i >= len(free) || cur != free[i] {
			return &ValidationError{
				Type:    TypeFreeList,
				Message: fmt.Sprintf("list entry %d is 0x%X, not the next free block", i, cur),
				Offset:  cur,
				Details: map[string]interface{}{"index": i, "free_blocks": len(free)},
			}
		}
		if got := link(cur, format.PrevLinkOffset); got != prev {
			return &ValidationError{
				Type:    TypeFreeList,
				Message: fmt.Sprintf("prev link is 0x%X, expected 0x%X", got, prev),
				Offset:  cur,
			}
		}
		prev = cur
		cur = link(cur, format.NextLinkOffset)
		if i == len(free)-1 && cur != format.NoLink {
			return &ValidationError{
				Type:    TypeFreeList,
				Message: fmt.Sprintf("tail links to 0x%X", cur),
				Offset:  prev,
			}
		}
	}
	if prev != free[len(free)-1] {
		return &ValidationError{
			Type:    TypeFreeList,
			Message: fmt.Sprintf("list ends at 0x%X before reaching every free block", prev),
			Offset:  prev,
			Details: map[string]interface{}{"free_blocks": len(free)},
		}
	}
	return nil
}
