// Package heap defines Region, the container for one contiguous span of raw
// memory managed as its own heap. A Region only knows its bytes and address
// range; the allocation engine lives in heap/alloc, and all raw address math
// outside this file is expressed in Region-relative offsets.
package heap

import (
	"errors"
	"unsafe"

	"github.com/joshuapare/heapkit/internal/format"
)

var (
	// ErrEmptySpan is returned when a region is created over zero bytes.
	ErrEmptySpan = errors.New("heap: region span is empty")

	// ErrSpanTooLarge is returned when a span exceeds the 2 GiB region cap.
	ErrSpanTooLarge = errors.New("heap: region span exceeds 2 GiB")
)

// Region is one contiguous, independently initialized span of raw memory.
// Bottom and Top are the absolute addresses of the span's first byte and of
// one past its last byte; the span never moves and lives until process exit.
type Region struct {
	data   []byte
	bottom uintptr
	top    uintptr
}

// NewRegion binds a region to buf. The caller guarantees the span is valid,
// exclusively owned by the allocator, and kept reachable for the region's
// whole lifetime. len(buf) must be positive and at most 2 GiB so block
// offsets fit in an int32.
func NewRegion(buf []byte) (*Region, error) {
	if len(buf) == 0 {
		return nil, ErrEmptySpan
	}
	if len(buf) > format.MaxRegionSize {
		return nil, ErrSpanTooLarge
	}
	bottom := uintptr(unsafe.Pointer(&buf[0]))
	return &Region{
		data:   buf,
		bottom: bottom,
		top:    bottom + uintptr(len(buf)),
	}, nil
}

// Bytes returns the managed span.
func (r *Region) Bytes() []byte { return r.data }

// Size returns the span length in bytes.
func (r *Region) Size() int { return len(r.data) }

// Bottom returns the absolute address of the span's first byte.
func (r *Region) Bottom() uintptr { return r.bottom }

// Top returns the absolute address one past the span's last byte.
func (r *Region) Top() uintptr { return r.top }

// Contains reports whether addr lies within the half-open span
// [Bottom, Top).
func (r *Region) Contains(addr uintptr) bool {
	return addr >= r.bottom && addr < r.top
}

// ContainsClosed reports whether addr lies within the CLOSED span
// [Bottom, Top]. This is the ownership test used when routing a
// deallocation between regions: Top itself, although one past the last
// valid byte, tests as owned. Half-open Contains is the convention
// everywhere else; the closed variant exists only for the router, which
// keeps the boundary-inclusive check its callers already depend on.
func (r *Region) ContainsClosed(addr uintptr) bool {
	return addr >= r.bottom && addr <= r.top
}

// Offset converts an absolute address inside the span to a Region-relative
// byte offset. The caller guarantees Contains(addr).
func (r *Region) Offset(addr uintptr) int32 {
	return int32(addr - r.bottom)
}

// Addr converts a Region-relative byte offset back to an absolute address.
func (r *Region) Addr(off int32) uintptr {
	return r.bottom + uintptr(off)
}
