package format

// Alignment utilities. Block boundaries are always 8-byte aligned; caller
// alignment requests are satisfied on absolute addresses, not offsets, so
// the address-based variants take uintptr.

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + BlockAlignmentMask) & ^BlockAlignmentMask
}

// Align8I32 returns n aligned up to the next 8-byte boundary.
// int32 version for use in engine code that works in block offsets.
func Align8I32(n int32) int32 {
	return (n + BlockAlignmentMask) & ^BlockAlignmentMask
}

// AlignUpAddr returns addr rounded up to the next multiple of align.
// align must be a power of two.
func AlignUpAddr(addr, align uintptr) uintptr {
	mask := align - 1
	return (addr + mask) & ^mask
}

// AlignDownAddr returns addr rounded down to a multiple of align.
// align must be a power of two.
func AlignDownAddr(addr, align uintptr) uintptr {
	return addr & ^(align - 1)
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
