package alloc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// Bump is an append-only allocation engine: a single cursor marches up the
// region and nothing is reclaimed until Reset. Free is deliberately a no-op
// so the type can stand in wherever an Allocator is expected during
// arena-style phases.
//
// Not goroutine-safe; see the package documentation.
type Bump struct {
	r *heap.Region

	base  int32
	limit int32
	cur   int32

	stats Stats
}

// NewBump initializes an append-only engine for r. The same usable-span and
// consumed-span rules as FreeList apply, so accounting between the two
// engines is directly comparable.
func NewBump(r *heap.Region) (*Bump, error) {
	if r == nil {
		return nil, ErrNilRegion
	}
	base, limit, err := usableSpan(r)
	if err != nil {
		return nil, err
	}
	return &Bump{r: r, base: base, limit: limit, cur: base}, nil
}

// Alloc advances the cursor past any alignment pad and grants the next span
// bytes. Returns (0, false) when the remaining tail cannot fit the request.
func (b *Bump) Alloc(size, align int) (uintptr, bool) {
	b.stats.AllocCalls++
	if size <= 0 || size > int(b.limit-b.base) || !format.IsPow2(align) {
		b.stats.AllocFails++
		return 0, false
	}
	effAlign := uintptr(align)
	if effAlign < format.BlockAlignment {
		effAlign = format.BlockAlignment
	}
	span := blockSpan(size)

	bottom := b.r.Bottom()
	start := int64(format.AlignUpAddr(bottom+uintptr(b.cur), effAlign) - bottom)
	if start+int64(span) > int64(b.limit) {
		b.stats.AllocFails++
		return 0, false
	}

	b.cur = int32(start) + span
	b.stats.BytesAllocated += int64(span)
	return b.r.Addr(int32(start)), true
}

// Free is a no-op; bump memory is reclaimed wholesale by Reset.
func (b *Bump) Free(addr uintptr, size, align int) {
	_, _, _ = addr, size, align
	b.stats.FreeCalls++
}

// Reset rewinds the cursor, making the whole span available again. The
// caller guarantees no block handed out before the Reset is still in use.
func (b *Bump) Reset() {
	b.cur = b.base
}

// Used returns the cursor's progress through the usable span. Alignment
// pads skipped by the cursor count as used, since they are unreachable
// until Reset.
func (b *Bump) Used() int {
	return int(b.cur - b.base)
}

// Avail returns the bytes remaining above the cursor.
func (b *Bump) Avail() int {
	return int(b.limit - b.cur)
}

// Stats returns a copy of the engine's operation counters.
func (b *Bump) Stats() Stats {
	return b.stats
}
