package arena

import "fmt"

// Memory is an in-process Provider backed by a single buffer reserved at
// construction time. Pages are handed out by reslicing, so the backing array
// never moves.
type Memory struct {
	buf      []byte
	maxPages int
}

// NewMemory reserves room for maxPages pages. maxPages <= 0 selects
// DefaultMaxPages; caps above MaxPages are lowered to it.
func NewMemory(maxPages int) *Memory {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	maxPages = clampPages(maxPages)
	return &Memory{
		buf:      make([]byte, 0, maxPages*PageSize),
		maxPages: maxPages,
	}
}

// Grow hands out the next page.
func (m *Memory) Grow() (int, error) {
	off := len(m.buf)
	if off+PageSize > cap(m.buf) {
		return 0, fmt.Errorf("%w: memory provider limit is %d pages", ErrExhausted, m.maxPages)
	}
	m.buf = m.buf[:off+PageSize]
	clear(m.buf[off:])
	return off, nil
}

// Boundary returns the number of bytes handed out so far.
func (m *Memory) Boundary() int { return len(m.buf) }

// Bytes returns the managed bytes.
func (m *Memory) Bytes() []byte { return m.buf }

// Pages returns the number of pages handed out so far.
func (m *Memory) Pages() int { return len(m.buf) / PageSize }

// MaxPages returns the page cap.
func (m *Memory) MaxPages() int { return m.maxPages }
