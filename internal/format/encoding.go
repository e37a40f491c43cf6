package format

import "encoding/binary"

// Binary encoding utilities for little-endian words.
//
// Every piece of allocator metadata is a 64-bit little-endian word, so the
// heap bytes mean the same thing on every host that opens a heap file.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+WordSize], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+WordSize])
}

// PutTag encodes t and writes it at off.
func PutTag(b []byte, off int, t Tag) {
	PutU64(b, off, t.Word())
}

// ReadTag reads and decodes the tag word at off.
func ReadTag(b []byte, off int) Tag {
	return DecodeTag(ReadU64(b, off))
}
