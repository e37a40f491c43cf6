package dirty

// DirtyTracker is the minimal interface for reporting modified byte ranges.
// The allocator depends only on this; flushing is left to whoever owns the
// file.
type DirtyTracker interface {
	// Add marks a byte range as dirty.
	// off is the offset from the start of the arena, length is the number of bytes.
	Add(off, length int)
}

// Target is the memory a Tracker flushes. arena.File satisfies it.
type Target interface {
	Bytes() []byte
}

// fdTarget is implemented by targets backed by a file descriptor.
type fdTarget interface {
	Fd() int
}
