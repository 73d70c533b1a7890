package alloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type liveBlock struct {
	addr  uintptr
	size  int
	align int
	tag   byte
}

// Deterministic pseudo-random allocate/free traffic. After every burst the
// free list must remain a valid address-ordered partition, allocated
// contents must survive untouched, and once everything is freed the region
// must coalesce back to a single block with zero drift.
func Test_RandomTrafficInvariants(t *testing.T) {
	const regionSize = 1 << 16

	rng := rand.New(rand.NewSource(1))
	fl, r := newFreeList(t, regionSize)
	data := r.Bytes()

	aligns := []int{1, 8, 16, 32, 64}
	var live []liveBlock

	for i := 0; i < 10_000; i++ {
		if rng.Intn(3) > 0 || len(live) == 0 {
			size := 1 + rng.Intn(256)
			align := aligns[rng.Intn(len(aligns))]
			addr, ok := fl.Alloc(size, align)
			if !ok {
				continue // exhaustion under fragmentation is expected
			}
			require.Zero(t, addr%uintptr(align), "iteration %d: misaligned address", i)

			blk := liveBlock{addr: addr, size: size, align: align, tag: byte(i%251 + 1)}
			off := int(r.Offset(addr))
			for j := 0; j < size; j++ {
				data[off+j] = blk.tag
			}
			live = append(live, blk)
		} else {
			k := rng.Intn(len(live))
			blk := live[k]
			off := int(r.Offset(blk.addr))
			for j := 0; j < blk.size; j++ {
				require.Equal(t, blk.tag, data[off+j],
					"iteration %d: block at %d corrupted", i, off)
			}
			fl.Free(blk.addr, blk.size, blk.align)
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]
		}

		if i%512 == 0 {
			require.NoError(t, fl.CheckIntegrity(), "iteration %d", i)
			require.Equal(t, regionSize, fl.Used()+fl.Avail(), "iteration %d", i)
		}
	}

	for _, blk := range live {
		fl.Free(blk.addr, blk.size, blk.align)
	}
	require.NoError(t, fl.CheckIntegrity())
	require.Equal(t, regionSize, fl.Avail())
	require.Equal(t, 1, fl.FreeBlocks())
}
