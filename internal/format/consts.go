// Package format defines the in-band block layout used by the heap allocator:
// the sizes that govern alignment, the boundary-tag word encoding and the
// little-endian helpers that read and write those words. It has no knowledge
// of free lists or allocation policy so the allocator, the verifier and the
// printers can share one decoder.
package format

const (
	// PageSize is the size of one page handed out by a page provider. The heap
	// grows by exactly this many bytes at a time.
	PageSize = 4096

	// WordSize is the size of a single boundary tag (header, footer, prologue
	// or epilogue) and of each free-list link.
	WordSize = 8

	// DoubleWordSize is the block alignment and the per-block metadata overhead
	// (one header word plus one footer word).
	DoubleWordSize = 16

	// DoubleWordMask is the bitmask used for aligning to 16-byte boundaries.
	DoubleWordMask = DoubleWordSize - 1

	// MinBlockSize is the smallest block the allocator will create. A free
	// block needs room for its header, its prev and next links and its footer.
	MinBlockSize = 32

	// DefaultMaxRequestSize caps a single allocation request. Requests above the
	// cap are rejected before the heap is touched.
	DefaultMaxRequestSize = 20448

	// MaxRequestField is the largest requested size the 16-bit requested_size
	// field of a tag can record.
	MaxRequestField = 0xFFFF

	// MaxHeapPages is the largest heap, in pages, whose block sizes still fit
	// the 32-bit size field of a tag (4 GiB).
	MaxHeapPages = 1 << (sizeBits - pageShift)

	pageShift = 12
)

// Tag word field layout (little-endian uint64):
//
//	Bits    Field
//	0..31   block size; bit 0 is the allocation flag, bits 1..3 are always 0
//	32..47  magic (HeaderMagic or FooterMagic)
//	48..63  requested size (0 for free blocks, 1 for sentinels)
const (
	sizeBits      = 32
	magicShift    = 32
	magicBits     = 16
	requestShift  = magicShift + magicBits
	sizeFieldMask = 1<<sizeBits - 1
	magicMask     = 1<<magicBits - 1

	// AllocFlag marks a block as allocated in the size field.
	AllocFlag = 0x1

	// sizeFlagMask masks the low three bits that never carry size information.
	sizeFlagMask = 0x7
)

const (
	// HeaderMagic tags every header word, including the epilogue.
	HeaderMagic = 0xB10C

	// FooterMagic tags every footer word, including the prologue.
	FooterMagic = 0xF007

	// SentinelSize is the raw size field written into the prologue and
	// epilogue: a zero-length block with the allocation flag set.
	SentinelSize = 1

	// SentinelRequested is the requested_size recorded in sentinels.
	SentinelRequested = 1
)

// Free block link layout, relative to the block header.
const (
	// PrevLinkOffset is where a free block stores the header offset of the
	// previous free block in address order.
	PrevLinkOffset = WordSize

	// NextLinkOffset is where a free block stores the header offset of the
	// next free block in address order.
	NextLinkOffset = 2 * WordSize

	// NoLink is the link value meaning "no neighbour". Offset 0 always holds
	// the prologue, so no free block can live there.
	NoLink = 0
)

// PrologueOffset is the fixed offset of the prologue word.
const PrologueOffset = 0

// FirstBlockOffset is the header offset of the first real block.
const FirstBlockOffset = PrologueOffset + WordSize

// InitialBlockSize is the size of the free block carved out of the first
// page: the page minus the prologue and epilogue words.
const InitialBlockSize = PageSize - DoubleWordSize
