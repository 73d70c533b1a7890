//go:build unix

package memseg

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func Test_ReserveReadWrite(t *testing.T) {
	const size = 4 * 4096

	data, release, err := Reserve(size)
	require.NoError(t, err)
	require.Len(t, data, size)

	// Page-aligned, therefore aligned for any block granularity.
	require.Zero(t, uintptr(unsafe.Pointer(&data[0]))%4096)

	// Freshly mapped pages are zeroed and writable end to end.
	require.Zero(t, data[0])
	require.Zero(t, data[size-1])
	data[0] = 0xAA
	data[size-1] = 0x55
	require.Equal(t, byte(0xAA), data[0])
	require.Equal(t, byte(0x55), data[size-1])

	require.NoError(t, release())
	// Release is idempotent.
	require.NoError(t, release())
}

func Test_ReserveInvalidSize(t *testing.T) {
	_, _, err := Reserve(0)
	require.Error(t, err)

	_, _, err = Reserve(-4096)
	require.Error(t, err)
}
