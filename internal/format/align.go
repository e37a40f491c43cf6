package format

// Align16 returns n aligned up to the next 16-byte boundary.
//
// Example:
//
//	Align16(1)  = 16
//	Align16(16) = 16
//	Align16(17) = 32
func Align16(n int) int {
	return (n + DoubleWordMask) & ^DoubleWordMask
}

// AdjustSize converts a caller's requested byte count into a block size.
// Requests of up to 16 bytes take the minimum block; larger requests get
// 16 bytes of header/footer overhead added and are rounded up to a multiple
// of 16.
//
// Example:
//
//	AdjustSize(1)    = 32
//	AdjustSize(16)   = 32
//	AdjustSize(17)   = 48
//	AdjustSize(4064) = 4080
func AdjustSize(n int) int {
	if n <= DoubleWordSize {
		return MinBlockSize
	}
	return Align16(n + DoubleWordSize)
}

// IsAligned16 reports whether off sits on a 16-byte boundary.
func IsAligned16(off int) bool {
	return off&DoubleWordMask == 0
}

// PagesFor returns the number of whole pages needed to hold n bytes.
func PagesFor(n int) int {
	return (n + PageSize - 1) / PageSize
}
