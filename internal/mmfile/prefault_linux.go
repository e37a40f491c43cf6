//go:build linux

package mmfile

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// PreFault makes sure every page of a mapping is readable before a verifier
// walks it. MADV_POPULATE_READ (Linux 5.14+) reports EFAULT instead of
// raising SIGBUS; older kernels fall back to touching each page.
func PreFault(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	err := unix.Madvise(data, unix.MADV_POPULATE_READ)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EINVAL), errors.Is(err, unix.ENOSYS):
		return manualPreFault(data)
	default:
		return fmt.Errorf("%w: %w", ErrFault, err)
	}
}
