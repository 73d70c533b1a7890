package alloc

import "errors"

var (
	// ErrNilRegion indicates an engine was constructed without a region.
	ErrNilRegion = errors.New("alloc: nil region")

	// ErrSpanTooSmall indicates the region's 8-aligned usable span cannot
	// hold even a single minimum-size block.
	ErrSpanTooSmall = errors.New("alloc: region span too small for a block")
)
