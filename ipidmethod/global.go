package ipidmethod

import (
	"sync/atomic"

	"github.com/codewanderer/ipidbench/packet"
)

// GlobalCounter is a single atomic 16-bit counter shared by every thread,
// modeling the simplest in-kernel design (spec.md §4.3). Relaxed ordering
// suffices: the benchmark measures the primitive's throughput, not any
// cross-thread happens-before relationship carried in the returned IPIDs.
type GlobalCounter struct {
	counter atomic.Uint32 // stored widened; wraps at 2^16 on read
}

// NewGlobalCounter returns a fresh counter initialized to 0, per spec.md §3.
func NewGlobalCounter() *GlobalCounter {
	return &GlobalCounter{}
}

// Assign performs fetch_add(1) and returns (prev+1) mod 2^16. threadID is
// unused; every thread hits the same counter.
//
//go:nosplit
//go:inline
func (g *GlobalCounter) Assign(_ packet.Packet, _ int) uint16 {
	prev := g.counter.Add(1)
	return uint16(prev)
}
