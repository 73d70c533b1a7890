package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// alignedBuf returns a size-byte span whose first byte sits on an 8-byte
// boundary, so the engine's usable span equals the buffer exactly and block
// offsets in assertions start at the buffer's own base.
func alignedBuf(tb testing.TB, size int) []byte {
	tb.Helper()
	raw := make([]byte, size+format.BlockAlignment)
	off := 0
	for uintptr(unsafe.Pointer(&raw[off]))%format.BlockAlignment != 0 {
		off++
	}
	return raw[off : off+size : off+size]
}

func newFreeList(tb testing.TB, size int) (*FreeList, *heap.Region) {
	tb.Helper()
	r, err := heap.NewRegion(alignedBuf(tb, size))
	require.NoError(tb, err)
	fl, err := NewFreeList(r)
	require.NoError(tb, err)
	return fl, r
}

func newBump(tb testing.TB, size int) (*Bump, *heap.Region) {
	tb.Helper()
	r, err := heap.NewRegion(alignedBuf(tb, size))
	require.NoError(tb, err)
	b, err := NewBump(r)
	require.NoError(tb, err)
	return b, r
}

// mustAlloc fails the test on exhaustion.
func mustAlloc(tb testing.TB, a Allocator, size, align int) uintptr {
	tb.Helper()
	addr, ok := a.Alloc(size, align)
	require.True(tb, ok, "Alloc(%d, %d) exhausted", size, align)
	return addr
}
