//go:build !unix && !windows

package memseg

import "fmt"

// Reserve falls back to a plain heap allocation on platforms without a
// usable VM interface. The span is still zeroed and exclusively owned, but
// page alignment is not guaranteed.
func Reserve(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("memseg: invalid reservation size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
