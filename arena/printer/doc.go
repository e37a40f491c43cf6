// Package printer renders an allocator's heap as text or JSON: a summary of
// block counts and free space, the physical block table and the free list.
package printer
