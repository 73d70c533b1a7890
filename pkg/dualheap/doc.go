// Package dualheap coordinates allocation across up to two independent
// memory regions behind a single allocator front-end.
//
// # Regions
//
// A Heap starts empty. Init attaches the first region, InitSecond the
// second. Each may be called at most once; later calls fail with
// ErrAlreadyInit. Running with only the first region is the common
// configuration, the second exists to absorb overflow (for example a
// slower or external memory bank).
//
// # Routing
//
// Alloc always tries region one first and falls through to region two
// only when region one is absent or full. Free routes by address: an
// address within region one's span (its top boundary included) is
// returned there, anything else is handed to region two without a range
// check. Freeing an address that was never allocated from either region
// therefore corrupts region two's free list. Callers own that contract,
// the same way they own passing the original size and alignment back to
// Free.
//
// # Locking
//
// Each region has its own mutex and the Heap never holds both at once.
// Aggregate figures (Used, Avail, Stats) are taken region by region, so
// under concurrent traffic they are a consistent snapshot per region
// but not across regions.
package dualheap
