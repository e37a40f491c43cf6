// Package dirty tracks which bytes of a file-backed arena the allocator has
// written and flushes only those pages to disk.
//
// # Overview
//
// Every tag or link write the allocator performs is reported through the
// DirtyTracker interface as an (offset, length) pair. The Tracker just
// appends them; at flush time it page-aligns, sorts and merges them:
//
//	Dirty writes: [0x0010+8, 0x0FF8+8, 0x1008+8] -> Ranges: [0x0000-0x2000]
//
// and then hands each merged range to msync (Linux/FreeBSD), the whole
// mapping to msync (macOS, which requires the original mmap address), or
// WriteAt (platforms without mmap).
//
// # Usage
//
//	fp, _ := arena.OpenFile("heap.bin", 0)
//	dt := dirty.NewTracker(fp)
//	al, _ := alloc.New(arena.New(fp), dt, nil)
//	ref, _, _ := al.Malloc(64)
//	_ = dt.Flush(ctx, dirty.FlushAuto)
//
// # Thread Safety
//
// Tracker instances are not thread-safe.
package dirty
