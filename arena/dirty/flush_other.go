//go:build !linux && !freebsd && !darwin

package dirty

import (
	"context"
	"io"
)

// flushRanges writes each range back through WriteAt when the target
// supports it; targets without it are plain memory and need no flush.
func (t *Tracker) flushRanges(ctx context.Context, data []byte, ranges []Range) error {
	w, ok := t.target.(io.WriterAt)
	if !ok {
		return nil
	}
	for _, r := range ranges {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := w.WriteAt(data[r.Off:r.End()], r.Off); err != nil {
			return err
		}
	}
	return nil
}

func fdatasync(int, bool) error { return nil }
