package arena

import (
	"fmt"
	"io"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Arena is the byte-addressable view of a Provider's region. Offsets are
// relative to the first byte the provider ever handed out.
type Arena struct {
	p Provider
}

// New wraps p.
func New(p Provider) *Arena {
	return &Arena{p: p}
}

// Provider returns the underlying provider.
func (a *Arena) Provider() Provider { return a.p }

// Boundary returns the offset one past the last managed byte.
func (a *Arena) Boundary() int { return a.p.Boundary() }

// Bytes returns the managed bytes. The slice is invalidated by Grow.
func (a *Arena) Bytes() []byte { return a.p.Bytes() }

// Empty reports whether the provider has not handed out any page yet.
func (a *Arena) Empty() bool { return a.p.Boundary() == 0 }

// Grow requests one more page from the provider and returns its offset.
func (a *Arena) Grow() (int, error) {
	return a.p.Grow()
}

// Contains reports whether [off, off+n) lies inside the managed region.
func (a *Arena) Contains(off, n int) bool {
	return buf.Has(a.p.Bytes(), off, n)
}

// Span returns the bytes [off, off+n) with capacity clipped to n.
func (a *Arena) Span(off, n int) ([]byte, error) {
	b, err := buf.Span(a.p.Bytes(), off, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutOfBounds, err)
	}
	return b, nil
}

// ReadWord reads the 64-bit word at off.
func (a *Arena) ReadWord(off int) (uint64, error) {
	data := a.p.Bytes()
	if !buf.Has(data, off, format.WordSize) {
		return 0, fmt.Errorf("%w: word at %d, boundary %d", ErrOutOfBounds, off, len(data))
	}
	return format.ReadU64(data, off), nil
}

// WriteWord writes the 64-bit word at off.
func (a *Arena) WriteWord(off int, v uint64) error {
	data := a.p.Bytes()
	if !buf.Has(data, off, format.WordSize) {
		return fmt.Errorf("%w: word at %d, boundary %d", ErrOutOfBounds, off, len(data))
	}
	format.PutU64(data, off, v)
	return nil
}

// ReadTag reads and decodes the tag word at off.
func (a *Arena) ReadTag(off int) (format.Tag, error) {
	w, err := a.ReadWord(off)
	if err != nil {
		return format.Tag{}, err
	}
	return format.DecodeTag(w), nil
}

// WriteTag encodes t at off.
func (a *Arena) WriteTag(off int, t format.Tag) error {
	return a.WriteWord(off, t.Word())
}

// Move copies n bytes from src to dst inside the arena. Overlapping ranges
// are handled like the builtin copy.
func (a *Arena) Move(dst, src, n int) error {
	data := a.p.Bytes()
	if !buf.Has(data, src, n) || !buf.Has(data, dst, n) {
		return fmt.Errorf("%w: move %d bytes %d -> %d", ErrOutOfBounds, n, src, dst)
	}
	copy(data[dst:dst+n], data[src:src+n])
	return nil
}

// Zero clears [off, off+n).
func (a *Arena) Zero(off, n int) error {
	b, err := a.Span(off, n)
	if err != nil {
		return err
	}
	clear(b)
	return nil
}

// Close closes the provider when it holds external resources.
func (a *Arena) Close() error {
	if c, ok := a.p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
