// Package arena provides the byte-addressable region the heap allocator
// manages, built on top of an external page provider.
//
// # Overview
//
// A Provider owns raw memory and hands it out one fixed-size page at a time.
// It answers two questions: "give me one more page" (Grow) and "where does
// the managed region end" (Boundary). The region never shrinks.
//
// Two providers ship with the package:
//
//   - Memory: a heap-allocated buffer reserved up front, capped at a page
//     count. Growing never moves the bytes, so payload slices stay valid.
//   - File: a file mapped read-write with mmap (unix) and grown by
//     ftruncate + remap. Growing may move the mapping, which invalidates
//     previously returned slices; re-resolve them through the allocator.
//
// # Arena
//
// Arena wraps a Provider with bounds-checked accessors for the 64-bit tag
// and link words defined in internal/format:
//
//	a := arena.New(arena.NewMemory(16))
//	off, err := a.Grow()          // first page at offset 0
//	err = a.WriteTag(off, format.PrologueTag())
//	t, err := a.ReadTag(off)
//
// Every accessor returns ErrOutOfBounds rather than panicking when a word
// falls outside [0, Boundary()).
//
// # Thread Safety
//
// Arena and the providers are not thread-safe. The allocator that owns an
// arena serialises access; callers sharing one across goroutines must lock
// externally.
package arena
