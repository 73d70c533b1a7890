package alloc

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats holds an engine's operation counters. Counters are maintained by
// the engine under its caller's exclusion guard and read via Stats(); they
// exist for tests and diagnostics, not for control flow.
type Stats struct {
	AllocCalls     int64 // total Alloc calls
	AllocFails     int64 // Alloc calls that found no block
	FreeCalls      int64 // total Free calls
	Splits         int64 // trailing remainders returned to the list
	MergesForward  int64 // frees merged with the following block
	MergesBackward int64 // frees merged with the preceding block
	BytesAllocated int64 // consumed spans, cumulative
	BytesFreed     int64 // returned spans, cumulative
}

// Add returns the element-wise sum of s and o. Used to combine per-region
// counters into a whole-heap figure.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		AllocCalls:     s.AllocCalls + o.AllocCalls,
		AllocFails:     s.AllocFails + o.AllocFails,
		FreeCalls:      s.FreeCalls + o.FreeCalls,
		Splits:         s.Splits + o.Splits,
		MergesForward:  s.MergesForward + o.MergesForward,
		MergesBackward: s.MergesBackward + o.MergesBackward,
		BytesAllocated: s.BytesAllocated + o.BytesAllocated,
		BytesFreed:     s.BytesFreed + o.BytesFreed,
	}
}

// Dump writes a human-readable rendering of the counters to w, with byte
// figures grouped for readability.
func (s Stats) Dump(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "alloc calls:     %d (%d failed)\n", s.AllocCalls, s.AllocFails)
	p.Fprintf(w, "free calls:      %d\n", s.FreeCalls)
	p.Fprintf(w, "splits:          %d\n", s.Splits)
	p.Fprintf(w, "merges:          %d forward, %d backward\n", s.MergesForward, s.MergesBackward)
	p.Fprintf(w, "bytes allocated: %d\n", s.BytesAllocated)
	p.Fprintf(w, "bytes freed:     %d\n", s.BytesFreed)
}
