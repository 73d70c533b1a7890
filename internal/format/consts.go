// Package format houses the low-level layout of the intrusive free-block
// records the allocator stores inside the managed memory itself. The goal is
// to keep the raw byte poking focused and allocation-free so the engine
// packages can stay expressed in terms of blocks and offsets.
package format

const (
	// BlockHeaderSize is the number of bytes a free block spends on its own
	// bookkeeping: a little-endian int32 span followed by a little-endian
	// int32 link to the next free block (NilLink terminates the list). The
	// header lives in the first bytes of the free block itself, so it costs
	// nothing while the bytes are allocated.
	BlockHeaderSize = 8

	// MinBlockSize is the smallest span a block may have, free or allocated.
	// It is one alignment granule beyond the header so that any remainder
	// split off an allocation can itself hold a header and still offer
	// usable payload. Requests smaller than this are rounded up.
	MinBlockSize = 16

	// BlockAlignment is the address granularity of every block boundary.
	// Block starts and spans are always multiples of this, which keeps every
	// header naturally aligned.
	BlockAlignment = 8

	// BlockAlignmentMask is BlockAlignment - 1, for round-up arithmetic.
	BlockAlignmentMask = BlockAlignment - 1

	// MaxRegionSize caps a single region at 2 GiB - 1 so that block offsets
	// and spans always fit in an int32.
	MaxRegionSize = 0x7FFFFFFF
)

// NilLink is the list terminator stored in a free block's link field.
const NilLink int32 = -1

const (
	// blockSizeOffset is where the span field sits within a block header.
	blockSizeOffset = 0

	// blockNextOffset is where the link field sits within a block header.
	blockNextOffset = 4
)
