package dualheap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// carveRegions cuts two disjoint 8-aligned buffers out of one backing
// slice, separated by a gap so the regions can never merge or overlap.
func carveRegions(tb testing.TB, size1, size2 int) (buf1, buf2 []byte) {
	tb.Helper()
	backing := make([]byte, size1+size2+32)
	pad := 0
	if rem := int(uintptr(unsafe.Pointer(&backing[0])) % 8); rem != 0 {
		pad = 8 - rem
	}
	buf1 = backing[pad : pad+size1 : pad+size1]
	off2 := pad + size1 + 16
	buf2 = backing[off2 : off2+size2 : off2+size2]
	return buf1, buf2
}

func within(buf []byte, addr uintptr) bool {
	bottom := uintptr(unsafe.Pointer(&buf[0]))
	return addr >= bottom && addr < bottom+uintptr(len(buf))
}

func Test_UninitializedHeap(t *testing.T) {
	h := New()

	_, ok := h.Alloc(16, 8)
	require.False(t, ok)
	require.Zero(t, h.Used())
	require.Zero(t, h.Avail())
	require.NoError(t, h.CheckIntegrity())

	// Free on an empty heap must be a no-op, not a crash.
	h.Free(0xdeadbeef, 16, 8)
}

func Test_InitOnce(t *testing.T) {
	buf1, buf2 := carveRegions(t, 256, 256)
	h := New()

	require.NoError(t, h.Init(buf1))
	require.ErrorIs(t, h.Init(buf1), ErrAlreadyInit)

	require.NoError(t, h.InitSecond(buf2))
	require.ErrorIs(t, h.InitSecond(buf2), ErrAlreadyInit)
}

func Test_InitRejectsEmptySpan(t *testing.T) {
	h := New()
	require.Error(t, h.Init(nil))
	require.Error(t, h.InitSecond([]byte{}))
}

func Test_SingleRegionConfig(t *testing.T) {
	buf1, _ := carveRegions(t, 256, 256)
	h := New()
	require.NoError(t, h.Init(buf1))
	require.Equal(t, 256, h.Avail())

	addr, ok := h.Alloc(32, 8)
	require.True(t, ok)
	require.True(t, within(buf1, addr))
	require.Equal(t, 32, h.Used())

	h.Free(addr, 32, 8)
	require.Zero(t, h.Used())
	require.Equal(t, 256, h.Avail())
	require.NoError(t, h.CheckIntegrity())
}

func Test_RegionFallback(t *testing.T) {
	buf1, buf2 := carveRegions(t, 64, 256)
	h := New()
	require.NoError(t, h.Init(buf1))
	require.NoError(t, h.InitSecond(buf2))

	// Fill region one completely.
	a1, ok := h.Alloc(48, 8)
	require.True(t, ok)
	require.True(t, within(buf1, a1))
	a2, ok := h.Alloc(16, 8)
	require.True(t, ok)
	require.True(t, within(buf1, a2))

	// The next request overflows into region two.
	a3, ok := h.Alloc(64, 8)
	require.True(t, ok)
	require.True(t, within(buf2, a3))

	// Once region one drains, it is preferred again.
	h.Free(a1, 48, 8)
	h.Free(a2, 16, 8)
	a4, ok := h.Alloc(32, 8)
	require.True(t, ok)
	require.True(t, within(buf1, a4))
}

func Test_FreeRouting(t *testing.T) {
	buf1, buf2 := carveRegions(t, 64, 256)
	h := New()
	require.NoError(t, h.Init(buf1))
	require.NoError(t, h.InitSecond(buf2))

	a1, ok := h.Alloc(64, 8)
	require.True(t, ok)
	require.True(t, within(buf1, a1))
	a2, ok := h.Alloc(64, 8)
	require.True(t, ok)
	require.True(t, within(buf2, a2))

	h.Free(a1, 64, 8)
	s1, s2 := h.Stats()
	require.Equal(t, int64(1), s1.FreeCalls)
	require.Zero(t, s2.FreeCalls)

	h.Free(a2, 64, 8)
	s1, s2 = h.Stats()
	require.Equal(t, int64(1), s1.FreeCalls)
	require.Equal(t, int64(1), s2.FreeCalls)

	require.Zero(t, h.Used())
	require.NoError(t, h.CheckIntegrity())
}

func Test_NoCrossRegionCorruption(t *testing.T) {
	buf1, buf2 := carveRegions(t, 128, 512)
	h := New()
	require.NoError(t, h.Init(buf1))
	require.NoError(t, h.InitSecond(buf2))

	var inOne, inTwo []uintptr
	for {
		addr, ok := h.Alloc(32, 8)
		if !ok {
			break
		}
		if within(buf1, addr) {
			inOne = append(inOne, addr)
		} else {
			inTwo = append(inTwo, addr)
		}
	}
	require.Len(t, inOne, 4)
	require.Len(t, inTwo, 16)
	require.Equal(t, 128+512, h.Used())

	// Interleave the releases so routing decisions alternate.
	for i := range inTwo {
		h.Free(inTwo[i], 32, 8)
		if i < len(inOne) {
			h.Free(inOne[i], 32, 8)
		}
	}
	require.Zero(t, h.Used())
	require.Equal(t, 128+512, h.Avail())
	require.NoError(t, h.CheckIntegrity())
}

func Test_InitReserve(t *testing.T) {
	h := New()
	require.NoError(t, h.InitReserve(1<<16))
	require.ErrorIs(t, h.InitReserve(1<<16), ErrAlreadyInit)
	require.Equal(t, 1<<16, h.Avail())

	addr, ok := h.Alloc(4096, 64)
	require.True(t, ok)
	require.Zero(t, addr%64)
	h.Free(addr, 4096, 64)
	require.Zero(t, h.Used())

	require.NoError(t, h.InitSecondReserve(1<<16))
	require.Equal(t, 1<<17, h.Avail())
}
