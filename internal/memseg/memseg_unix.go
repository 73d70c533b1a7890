//go:build unix

// Package memseg reserves the raw, page-aligned memory spans that back
// allocator regions. On bare-metal targets the equivalent spans come from
// linker-script symbols; here they come from the platform VM system so the
// allocator can be exercised against real, exclusively-owned pages.
package memseg

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Reserve maps size bytes of zeroed, private anonymous memory and returns
// the span plus a release function. The span is page-aligned and owned
// exclusively by the caller until released.
func Reserve(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("memseg: invalid reservation size %d", size)
	}
	data, err := unix.Mmap(
		-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("memseg: mmap %d bytes: %w", size, err)
	}
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		return err
	}
	return data, release, nil
}
