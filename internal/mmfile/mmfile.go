// Package mmfile maps heap files read-only for inspection. Tools that only
// look at a heap (verify, dump) use it so they never need write access to
// the file.
package mmfile

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrFault indicates a mapped page could not be read, typically because the
// file was truncated after it was mapped.
var ErrFault = errors.New("mmfile: mapped page is not accessible")

// pageStep is the stride used when touching pages by hand.
const pageStep = 4096

// manualPreFault reads one byte per page so every page is faulted in.
// A SIGBUS from a vanished page is converted into ErrFault.
func manualPreFault(data []byte) (retErr error) {
	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)

	off := 0
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("%w: offset %d: %v", ErrFault, off, r)
		}
	}()

	var sink byte
	for off = 0; off < len(data); off += pageStep {
		sink ^= data[off]
	}
	_ = sink
	return nil
}
