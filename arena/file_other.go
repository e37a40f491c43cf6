//go:build !linux && !darwin && !freebsd

package arena

import (
	"fmt"
	"io"
	"os"
)

// File is a Provider backed by a file loaded fully into memory on platforms
// without mmap. Pages reach the disk through WriteAt (used by dirty.Tracker)
// or Close.
type File struct {
	f        *os.File
	data     []byte
	maxPages int
}

// OpenFile loads the heap file at path, creating it when missing.
func OpenFile(path string, maxPages int) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz%PageSize != 0 || sz/PageSize > MaxPages {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrBadFileSize, path, sz)
	}
	data := make([]byte, sz)
	if _, err := io.ReadFull(f, data); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{f: f, data: data, maxPages: clampPages(maxPages)}, nil
}

// Grow appends one zeroed page to the in-memory copy and the file.
func (fp *File) Grow() (int, error) {
	if fp.f == nil {
		return 0, ErrClosed
	}
	off := len(fp.data)
	if off/PageSize >= fp.maxPages {
		return 0, fmt.Errorf("%w: file provider limit is %d pages", ErrExhausted, fp.maxPages)
	}
	if err := fp.f.Truncate(int64(off + PageSize)); err != nil {
		return 0, fmt.Errorf("%w: failed to extend file: %w", ErrExhausted, err)
	}
	fp.data = append(fp.data, make([]byte, PageSize)...)
	return off, nil
}

// Boundary returns the current length.
func (fp *File) Boundary() int { return len(fp.data) }

// Bytes returns the in-memory copy.
func (fp *File) Bytes() []byte { return fp.data }

// Fd returns the file descriptor, or -1 after Close.
func (fp *File) Fd() int {
	if fp.f == nil {
		return -1
	}
	return int(fp.f.Fd())
}

// WriteAt writes b back to the file at off.
func (fp *File) WriteAt(b []byte, off int64) (int, error) {
	if fp.f == nil {
		return 0, ErrClosed
	}
	return fp.f.WriteAt(b, off)
}

// Close writes the whole heap back and closes the file.
func (fp *File) Close() error {
	if fp.f == nil {
		return nil
	}
	_, err := fp.f.WriteAt(fp.data, 0)
	if cerr := fp.f.Close(); err == nil {
		err = cerr
	}
	fp.f = nil
	fp.data = nil
	return err
}
