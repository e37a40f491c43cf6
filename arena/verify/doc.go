// Package verify checks heap bytes against the allocator's layout
// invariants. It reads raw bytes only, so it works on a live arena, a
// reopened heap file, or a hand-built buffer in a test.
package verify
