package format

import "encoding/binary"

// Free-block header codec.
//
// A free block's first 8 bytes hold its span and the offset of the next free
// block, both little-endian int32. Offsets are relative to the start of the
// region's byte span. Allocated blocks carry no header at all; the consumed
// span is a pure function of the requested size, so deallocation can rebuild
// the header from the caller's arguments alone.
//
// Implementation note: encoding/binary.LittleEndian compiles to single
// loads/stores on little-endian targets, so there is no reason to reach for
// unsafe here.

// PutI32 writes an int32 to b at off in little-endian order.
func PutI32(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(v))
}

// ReadI32 reads a little-endian int32 from b at off.
func ReadI32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off : off+4]))
}

// PutBlock writes a complete free-block header at off.
func PutBlock(b []byte, off int, size, next int32) {
	PutI32(b, off+blockSizeOffset, size)
	PutI32(b, off+blockNextOffset, next)
}

// ReadBlock reads a free-block header at off.
func ReadBlock(b []byte, off int) (size, next int32) {
	return ReadI32(b, off+blockSizeOffset), ReadI32(b, off+blockNextOffset)
}

// PutBlockNext rewrites only the link field of the header at off.
func PutBlockNext(b []byte, off int, next int32) {
	PutI32(b, off+blockNextOffset, next)
}

// PutBlockSize rewrites only the span field of the header at off.
func PutBlockSize(b []byte, off int, size int32) {
	PutI32(b, off+blockSizeOffset, size)
}
