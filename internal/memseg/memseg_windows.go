//go:build windows

package memseg

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Reserve commits size bytes of zeroed private memory via VirtualAlloc and
// returns the span plus a release function.
func Reserve(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("memseg: invalid reservation size %d", size)
	}
	addr, err := windows.VirtualAlloc(
		0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE,
		windows.PAGE_READWRITE,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("memseg: VirtualAlloc %d bytes: %w", size, err)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	release := func() error {
		if addr == 0 {
			return nil
		}
		err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		addr = 0
		return err
	}
	return data, release, nil
}
