package alloc

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Runtime trace flag for allocator traffic - controlled by HEAP_LOG_ALLOC.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// FreeList is a first-fit allocation engine over one region. Free blocks
// form a singly linked list in ascending address order, stored inside the
// free bytes themselves; the engine itself allocates nothing on the Go heap
// after construction.
//
// Not goroutine-safe; see the package documentation.
type FreeList struct {
	r    *heap.Region
	data []byte

	// Usable span bounds, as region offsets. base is the first offset whose
	// absolute address is 8-aligned; limit is one past the last usable byte,
	// also 8-aligned. Bytes outside [base, limit) are never touched.
	base  int32
	limit int32

	// head is the offset of the lowest-addressed free block, NilLink when
	// the region is fully allocated.
	head int32

	stats Stats
}

// NewFreeList initializes the engine for r and seeds the free list with a
// single block covering the whole usable span. Construct exactly once per
// region, before any allocation traffic; the region must not be shared with
// another engine.
func NewFreeList(r *heap.Region) (*FreeList, error) {
	if r == nil {
		return nil, ErrNilRegion
	}
	base, limit, err := usableSpan(r)
	if err != nil {
		return nil, err
	}
	fl := &FreeList{
		r:     r,
		data:  r.Bytes(),
		base:  base,
		limit: limit,
		head:  base,
	}
	format.PutBlock(fl.data, int(base), limit-base, format.NilLink)
	return fl, nil
}

// usableSpan computes the 8-aligned sub-span of r that blocks may occupy.
// Shared by FreeList and Bump so the two engines account identically.
func usableSpan(r *heap.Region) (base, limit int32, err error) {
	bottom := r.Bottom()
	lo := format.AlignUpAddr(bottom, format.BlockAlignment)
	hi := format.AlignDownAddr(r.Top(), format.BlockAlignment)
	if hi < lo || hi-lo < format.MinBlockSize {
		return 0, 0, ErrSpanTooSmall
	}
	return int32(lo - bottom), int32(hi - bottom), nil
}

// blockSpan returns the bytes an allocation of the given size actually
// consumes: at least a minimum block, rounded to block alignment. Free must
// be able to rebuild a block from (size, align) alone, so this is the only
// place the consumed span is defined.
func blockSpan(size int) int32 {
	if size < format.MinBlockSize {
		size = format.MinBlockSize
	}
	return format.Align8I32(int32(size))
}

// Alloc scans the free list in address order for the first block whose
// aligned usable span covers size bytes and returns the absolute address of
// the granted block. align must be a power of two; alignments below the
// 8-byte block granularity are satisfied for free. Returns (0, false) when
// no block fits.
func (fl *FreeList) Alloc(size, align int) (uintptr, bool) {
	fl.stats.AllocCalls++
	if size <= 0 || size > int(fl.limit-fl.base) || !format.IsPow2(align) {
		fl.stats.AllocFails++
		return 0, false
	}
	effAlign := uintptr(align)
	if effAlign < format.BlockAlignment {
		effAlign = format.BlockAlignment
	}
	span := blockSpan(size)

	prev := format.NilLink
	for cur := fl.head; cur != format.NilLink; {
		bsize, next := format.ReadBlock(fl.data, int(cur))
		end := int64(cur) + int64(bsize)

		start := fl.alignedStart(cur, effAlign)
		if front := start - int64(cur); front != 0 && front < format.MinBlockSize {
			// The gap before the aligned start could not hold a block of its
			// own; push the candidate to the next aligned address that
			// leaves a retainable front pad.
			start = fl.alignedStart(cur+format.MinBlockSize, effAlign)
		}

		if start+int64(span) <= end {
			back := end - (start + int64(span))
			if back == 0 || back >= format.MinBlockSize {
				fl.carve(prev, cur, bsize, next, int32(start), span)
				fl.stats.BytesAllocated += int64(span)
				if logAlloc {
					fmt.Fprintf(os.Stderr, "[ALLOC] alloc size=%d align=%d -> off=%d span=%d\n",
						size, align, start, span)
				}
				return fl.r.Addr(int32(start)), true
			}
			// Carving here would strand a remainder too small to be a
			// block; reject this candidate and keep scanning.
		}
		prev, cur = cur, next
	}

	fl.stats.AllocFails++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] exhausted: size=%d align=%d avail=%d\n",
			size, align, fl.Avail())
	}
	return 0, false
}

// alignedStart returns the lowest offset >= off whose absolute address is a
// multiple of align. int64 because rounding near the region cap may step
// past int32 range; callers compare against the span end before narrowing.
func (fl *FreeList) alignedStart(off int32, align uintptr) int64 {
	bottom := fl.r.Bottom()
	return int64(format.AlignUpAddr(bottom+uintptr(off), align) - bottom)
}

// carve takes span bytes at start out of the free block at cur, re-linking
// the front pad and/or trailing remainder as their own free blocks. prev is
// the block preceding cur (NilLink when cur is the head) and next its
// successor; address order is preserved by construction.
func (fl *FreeList) carve(prev, cur, bsize, next, start, span int32) {
	front := start - cur
	back := cur + bsize - (start + span)

	first := next
	if back > 0 {
		backOff := start + span
		format.PutBlock(fl.data, int(backOff), back, next)
		first = backOff
		fl.stats.Splits++
	}
	if front > 0 {
		format.PutBlock(fl.data, int(cur), front, first)
		first = cur
	}

	if prev == format.NilLink {
		fl.head = first
	} else {
		format.PutBlockNext(fl.data, int(prev), first)
	}
}

// Free returns the block at addr to the free list, inserting it in address
// order and merging with the immediately preceding and/or following block
// when byte-adjacent. addr, size and align must exactly match a prior
// successful Alloc on this engine; no validation is performed here.
//
// The consumed span depends only on size; align participates in the caller
// contract and is accepted for symmetry with Alloc.
func (fl *FreeList) Free(addr uintptr, size, align int) {
	_ = align
	fl.stats.FreeCalls++
	off := fl.r.Offset(addr)
	span := blockSpan(size)
	fl.stats.BytesFreed += int64(span)

	// Find the insertion point in address order.
	prev := format.NilLink
	cur := fl.head
	for cur != format.NilLink && cur < off {
		_, next := format.ReadBlock(fl.data, int(cur))
		prev, cur = cur, next
	}

	newOff, newSize, link := off, span, cur

	// Merge with the following block when byte-adjacent.
	if cur != format.NilLink && off+span == cur {
		csize, cnext := format.ReadBlock(fl.data, int(cur))
		newSize += csize
		link = cnext
		fl.stats.MergesForward++
	}

	// Merge with the preceding block when byte-adjacent.
	mergedBack := false
	if prev != format.NilLink {
		psize, _ := format.ReadBlock(fl.data, int(prev))
		if prev+psize == off {
			newOff = prev
			newSize += psize
			mergedBack = true
			fl.stats.MergesBackward++
		}
	}

	format.PutBlock(fl.data, int(newOff), newSize, link)
	if !mergedBack {
		if prev == format.NilLink {
			fl.head = newOff
		} else {
			format.PutBlockNext(fl.data, int(prev), newOff)
		}
	}

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] free off=%d span=%d merged=%d\n",
			off, span, newSize)
	}
}

// Avail returns the number of free bytes. Immediately after construction
// this equals the usable span exactly: block headers live inside the free
// bytes, so the fixed per-region bookkeeping overhead is zero. Costs a walk
// of the free list; the structure keeps no running total.
func (fl *FreeList) Avail() int {
	total := 0
	for cur := fl.head; cur != format.NilLink; {
		size, next := format.ReadBlock(fl.data, int(cur))
		total += int(size)
		cur = next
	}
	return total
}

// Used returns the usable span minus the free bytes. Consumed alignment
// rounding counts as used; alignment front pads do not (they remain free
// blocks). O(free-list length).
func (fl *FreeList) Used() int {
	return fl.usable() - fl.Avail()
}

func (fl *FreeList) usable() int {
	return int(fl.limit - fl.base)
}

// FreeBlocks returns the current length of the free list.
func (fl *FreeList) FreeBlocks() int {
	n := 0
	for cur := fl.head; cur != format.NilLink; {
		_, next := format.ReadBlock(fl.data, int(cur))
		n++
		cur = next
	}
	return n
}

// Stats returns a copy of the engine's operation counters.
func (fl *FreeList) Stats() Stats {
	return fl.stats
}

// CheckIntegrity validates that the free list is a strictly ascending,
// in-bounds, non-overlapping and fully coalesced partition of the region's
// unallocated bytes. Diagnostic only; never called on the allocation path.
func (fl *FreeList) CheckIntegrity() error {
	maxBlocks := fl.usable() / format.MinBlockSize
	prevEnd := int64(-1)
	total := int64(0)
	seen := 0

	for cur := fl.head; cur != format.NilLink; {
		if cur < fl.base || !buf.Has(fl.data, int(cur), format.BlockHeaderSize) {
			return fmt.Errorf("alloc: free block offset %d out of bounds", cur)
		}
		if (cur-fl.base)%format.BlockAlignment != 0 {
			return fmt.Errorf("alloc: free block offset %d misaligned", cur)
		}
		size, next := format.ReadBlock(fl.data, int(cur))
		if size < format.MinBlockSize || size%format.BlockAlignment != 0 {
			return fmt.Errorf("alloc: free block at %d has invalid span %d", cur, size)
		}
		end := int64(cur) + int64(size)
		if end > int64(fl.limit) {
			return fmt.Errorf("alloc: free block at %d spans past limit (%d > %d)",
				cur, end, fl.limit)
		}
		switch {
		case int64(cur) < prevEnd:
			return fmt.Errorf("alloc: free block at %d overlaps its predecessor", cur)
		case int64(cur) == prevEnd:
			return fmt.Errorf("alloc: free blocks at %d are adjacent but not merged", cur)
		}
		prevEnd = end
		total += int64(size)
		if seen++; seen > maxBlocks {
			return fmt.Errorf("alloc: free list cycle suspected after %d blocks", seen)
		}
		cur = next
	}

	if total > int64(fl.usable()) {
		return fmt.Errorf("alloc: free bytes %d exceed usable span %d", total, fl.usable())
	}
	return nil
}
