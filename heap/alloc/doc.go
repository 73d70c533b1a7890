// Package alloc provides the allocation engines that run over a heap.Region.
//
// # Overview
//
// The production engine is FreeList, a first-fit allocator whose free list
// is stored intrusively inside the managed memory itself: each free block's
// first eight bytes hold its span and a link to the next free block, kept in
// ascending address order so first-fit scanning and adjacency-based merging
// are well defined. Allocated blocks carry no bookkeeping at all.
//
// # Engines
//
// FreeList: address-ordered first-fit free list
//
//   - First block whose aligned usable span covers the request wins
//   - Remainders are split back into the list when independently usable
//   - Deallocation merges with byte-adjacent neighbors in both directions
//   - Exhaustion is a normal (0, false) result, never an error
//
// Bump: append-only pointer bump
//
//   - O(1) allocation, Free is a no-op, Reset reclaims the whole span
//   - Useful for arena-style phases where nothing is freed individually
//
// Both satisfy the Allocator interface and use the identical consumed-span
// rule, blockSpan(size) = align8(max(size, MinBlockSize)), so accounting is
// comparable across engines.
//
// # The consumed-span contract
//
// Free(addr, size, align) must reverse exactly what Alloc(size, align)
// produced. The engine guarantees this without per-allocation records: the
// consumed span is a pure function of size, and a candidate block is
// rejected during the scan whenever carving it would strand a remainder too
// small to hold a free-block header. Alignment padding in front of an
// allocation is never consumed; it stays on the free list as its own block.
//
// # Failure semantics
//
// Exhaustion is silent and synchronous. Passing an address that was never
// returned by Alloc on the same engine, or a size/alignment pair that does
// not match the original request, corrupts the free list; the hot path
// performs no validation. CheckIntegrity exists for tests and diagnostics.
//
// # Thread safety
//
// Engines are not goroutine-safe. The dualheap package wraps each engine in
// its own exclusion guard; nothing else may touch a region concurrently.
package alloc
