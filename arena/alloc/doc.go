// Package alloc implements a boundary-tag malloc/free/realloc allocator over
// an arena that grows one page at a time.
//
// # Layout
//
// All metadata lives in the arena itself. Every block carries a one-word
// header and a one-word footer holding the block size, the allocation flag,
// a magic tag and the caller's requested size (see internal/format). Free
// blocks additionally store the offsets of their free-list neighbours in the
// first two payload words.
//
//	0x0000  prologue (footer-shaped sentinel)
//	0x0008  header  | payload ...                 | footer
//	...
//	B-8     epilogue (header-shaped sentinel)
//
// # Free list
//
// Free blocks form one doubly linked list kept in ascending address order.
// Allocation uses next-fit: the search resumes from a roving cursor and wraps
// to the head once. Freed blocks are merged with free neighbours right away,
// so no two free blocks are ever adjacent.
//
// # Growth
//
// When no free block fits, the allocator asks the arena's provider for one
// more page, turns the old epilogue into the header of a page-sized free
// block, writes a new epilogue, coalesces and searches again.
//
// # Usage
//
//	al, err := alloc.New(arena.New(arena.NewMemory(0)), nil, nil)
//	ref, buf, err := al.Malloc(100)
//	copy(buf, data)
//	ref, buf, err = al.Realloc(ref, 200)
//	err = al.Free(ref)
//
// The allocator is NOT thread-safe.
package alloc
