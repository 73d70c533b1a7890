package dualheap

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/memseg"
)

// Heap fronts one or two memory regions with first-fit allocators. The
// zero value is usable but owns no memory until Init is called; New is
// provided for symmetry with the rest of the module.
type Heap struct {
	mu1     sync.Mutex
	region1 *heap.Region
	heap1   *alloc.FreeList

	mu2     sync.Mutex
	region2 *heap.Region
	heap2   *alloc.FreeList
}

var _ alloc.Allocator = (*Heap)(nil)

// New returns an empty Heap.
func New() *Heap {
	return &Heap{}
}

// Init attaches buf as the first region. The Heap takes ownership of the
// bytes; the caller must not touch them again.
func (h *Heap) Init(buf []byte) error {
	h.mu1.Lock()
	defer h.mu1.Unlock()
	if h.heap1 != nil {
		return ErrAlreadyInit
	}
	r, fl, err := newRegion(buf)
	if err != nil {
		return err
	}
	h.region1, h.heap1 = r, fl
	return nil
}

// InitSecond attaches buf as the overflow region.
func (h *Heap) InitSecond(buf []byte) error {
	h.mu2.Lock()
	defer h.mu2.Unlock()
	if h.heap2 != nil {
		return ErrAlreadyInit
	}
	r, fl, err := newRegion(buf)
	if err != nil {
		return err
	}
	h.region2, h.heap2 = r, fl
	return nil
}

// InitReserve reserves size bytes from the operating system and attaches
// them as the first region. The reservation lives for the rest of the
// process.
func (h *Heap) InitReserve(size int) error {
	buf, release, err := memseg.Reserve(size)
	if err != nil {
		return err
	}
	if err := h.Init(buf); err != nil {
		_ = release()
		return err
	}
	return nil
}

// InitSecondReserve reserves size bytes and attaches them as the
// overflow region.
func (h *Heap) InitSecondReserve(size int) error {
	buf, release, err := memseg.Reserve(size)
	if err != nil {
		return err
	}
	if err := h.InitSecond(buf); err != nil {
		_ = release()
		return err
	}
	return nil
}

func newRegion(buf []byte) (*heap.Region, *alloc.FreeList, error) {
	r, err := heap.NewRegion(buf)
	if err != nil {
		return nil, nil, err
	}
	fl, err := alloc.NewFreeList(r)
	if err != nil {
		return nil, nil, err
	}
	return r, fl, nil
}

// Alloc grants size bytes aligned to align. Region one is tried first,
// region two only when region one is missing or cannot satisfy the
// request. Returns (0, false) when neither region can.
func (h *Heap) Alloc(size, align int) (uintptr, bool) {
	h.mu1.Lock()
	if h.heap1 != nil {
		if addr, ok := h.heap1.Alloc(size, align); ok {
			h.mu1.Unlock()
			return addr, true
		}
	}
	h.mu1.Unlock()

	h.mu2.Lock()
	defer h.mu2.Unlock()
	if h.heap2 == nil {
		return 0, false
	}
	return h.heap2.Alloc(size, align)
}

// Free returns a block obtained from Alloc. size and align must match
// the original request. Addresses inside region one's span, top boundary
// included, go back to region one; every other address is assumed to
// belong to region two.
func (h *Heap) Free(addr uintptr, size, align int) {
	h.mu1.Lock()
	if h.heap1 != nil && h.region1.ContainsClosed(addr) {
		h.heap1.Free(addr, size, align)
		h.mu1.Unlock()
		return
	}
	h.mu1.Unlock()

	h.mu2.Lock()
	defer h.mu2.Unlock()
	if h.heap2 != nil {
		h.heap2.Free(addr, size, align)
	}
}

// Used returns the bytes currently allocated across both regions.
func (h *Heap) Used() int {
	var total int
	h.mu1.Lock()
	if h.heap1 != nil {
		total += h.heap1.Used()
	}
	h.mu1.Unlock()
	h.mu2.Lock()
	if h.heap2 != nil {
		total += h.heap2.Used()
	}
	h.mu2.Unlock()
	return total
}

// Avail returns the bytes currently free across both regions. A request
// that large may still fail: the figure spans two disjoint regions and
// says nothing about contiguity.
func (h *Heap) Avail() int {
	var total int
	h.mu1.Lock()
	if h.heap1 != nil {
		total += h.heap1.Avail()
	}
	h.mu1.Unlock()
	h.mu2.Lock()
	if h.heap2 != nil {
		total += h.heap2.Avail()
	}
	h.mu2.Unlock()
	return total
}

// Stats returns per-region operation counters. A region that was never
// initialized reports zeros.
func (h *Heap) Stats() (region1, region2 alloc.Stats) {
	h.mu1.Lock()
	if h.heap1 != nil {
		region1 = h.heap1.Stats()
	}
	h.mu1.Unlock()
	h.mu2.Lock()
	if h.heap2 != nil {
		region2 = h.heap2.Stats()
	}
	h.mu2.Unlock()
	return region1, region2
}

// CheckIntegrity walks both free lists and reports every violation
// found.
func (h *Heap) CheckIntegrity() error {
	var errs []error
	h.mu1.Lock()
	if h.heap1 != nil {
		if err := h.heap1.CheckIntegrity(); err != nil {
			errs = append(errs, fmt.Errorf("region 1: %w", err))
		}
	}
	h.mu1.Unlock()
	h.mu2.Lock()
	if h.heap2 != nil {
		if err := h.heap2.CheckIntegrity(); err != nil {
			errs = append(errs, fmt.Errorf("region 2: %w", err))
		}
	}
	h.mu2.Unlock()
	return errors.Join(errs...)
}
