//go:build !linux

package mmfile

// PreFault touches every page of a mapping so unreadable pages surface as
// ErrFault instead of crashing a later reader.
func PreFault(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return manualPreFault(data)
}
