//go:build linux || darwin || freebsd

package arena

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a Provider backed by a memory-mapped file. The file length is
// always a whole number of pages and equals Boundary().
//
// NOT thread-safe.
type File struct {
	f        *os.File
	data     []byte
	maxPages int
}

// OpenFile maps the heap file at path read-write, creating it when missing.
// An existing file must be a whole number of pages long and no larger than
// MaxPages. maxPages caps growth; 0 means MaxPages.
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

	fp := &File{f: f, maxPages: clampPages(maxPages)}
	if sz == 0 {
		return fp, nil
	}

	data, err := mapFile(f, int(sz))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("arena: mmap failed: %w", err)
	}
	fp.data = data
	return fp, nil
}

func mapFile(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

// Grow extends the file by one page and remaps it. The new page reads as
// zeros.
func (fp *File) Grow() (int, error) {
	if fp.f == nil {
		return 0, ErrClosed
	}
	off := len(fp.data)
	if off/PageSize >= fp.maxPages {
		return 0, fmt.Errorf("%w: file provider limit is %d pages", ErrExhausted, fp.maxPages)
	}
	newSize := off + PageSize

	if fp.data != nil {
		if err := unix.Munmap(fp.data); err != nil {
			return 0, fmt.Errorf("arena: failed to unmap before grow: %w", err)
		}
		fp.data = nil
	}

	if err := unix.Ftruncate(int(fp.f.Fd()), int64(newSize)); err != nil {
		fp.remap(off)
		return 0, fmt.Errorf("%w: failed to extend file: %w", ErrExhausted, err)
	}

	data, err := mapFile(fp.f, newSize)
	if err != nil {
		_ = unix.Ftruncate(int(fp.f.Fd()), int64(off))
		fp.remap(off)
		return 0, fmt.Errorf("%w: failed to remap after grow: %w", ErrExhausted, err)
	}
	fp.data = data
	return off, nil
}

// remap restores the mapping at the previous size after a failed grow.
func (fp *File) remap(size int) {
	if size == 0 {
		return
	}
	data, err := mapFile(fp.f, size)
	if err == nil {
		fp.data = data
	}
}

// Boundary returns the current file length.
func (fp *File) Boundary() int { return len(fp.data) }

// Bytes returns the mapped bytes.
func (fp *File) Bytes() []byte { return fp.data }

// Fd returns the file descriptor, or -1 after Close.
func (fp *File) Fd() int {
	if fp.f == nil {
		return -1
	}
	return int(fp.f.Fd())
}

// Close unmaps and closes the file. Unflushed pages are written back by the
// kernel eventually; use dirty.Tracker to force them out first.
func (fp *File) Close() error {
	var err error
	if fp.data != nil {
		if uerr := unix.Munmap(fp.data); uerr != nil && !errors.Is(uerr, unix.EINVAL) {
			err = uerr
		}
		fp.data = nil
	}
	if fp.f != nil {
		if cerr := fp.f.Close(); err == nil {
			err = cerr
		}
		fp.f = nil
	}
	return err
}
