package alloc

// Allocator is the contract shared by the allocation engines.
//
// Implementations:
//   - FreeList: first-fit free list with split and coalesce
//   - Bump: append-only pointer bump whose Free is a no-op
//
// Alloc returns the absolute address of the granted block and true, or
// (0, false) when no block fits. Exhaustion is an expected outcome the
// caller interprets (typically by trying another region), not an error.
//
// Free's arguments must exactly match a prior successful Alloc on the same
// engine; this is a caller obligation, not a checked condition.
type Allocator interface {
	Alloc(size, align int) (uintptr, bool)
	Free(addr uintptr, size, align int)

	// Used and Avail report byte accounting for the region's usable span.
	// Both walk engine state rather than maintaining running totals.
	Used() int
	Avail() int
}

var (
	_ Allocator = (*FreeList)(nil)
	_ Allocator = (*Bump)(nil)
)
