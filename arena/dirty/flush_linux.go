//go:build linux || freebsd

package dirty

import (
	"context"

	"golang.org/x/sys/unix"
)

// flushRanges msyncs each range. Linux accepts page-aligned sub-slices of a
// mapping.
func (t *Tracker) flushRanges(ctx context.Context, data []byte, ranges []Range) error {
	for _, r := range ranges {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := unix.Msync(data[r.Off:r.End()], unix.MS_SYNC); err != nil {
			return err
		}
	}
	return nil
}

// fdatasync performs file descriptor sync. fullfsync is ignored on Linux/FreeBSD.
func fdatasync(fd int, _ bool) error {
	return unix.Fdatasync(fd)
}
