package ipidmethod

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/codewanderer/ipidbench/packet"
)

// PerBucketLState is the lock-free per-bucket variant (spec.md §4.6): each
// bucket's counter and last-access timestamp are independent atomics,
// updated without a shared critical section across the pair. This
// intentionally admits a benign race: two threads hitting the same
// bucket may both observe the same "last" value, mirroring the kernel's
// own discipline for this variant.
type PerBucketLState struct {
	keys     bucketKeys
	size     int
	counters []atomic.Uint32 // low 16 bits significant; widened to avoid CAS loops
	times    []atomic.Int64  // last-access, steady monotonic milliseconds

	// Per-thread RNGs for the increment draw (spec.md §4.6's documented
	// latitude: a shared RNG is allowed, but per-thread avoids turning the
	// RNG itself into contention — the open question this repo resolves in
	// DESIGN.md).
	rngs []rand.Rand
}

// NewPerBucketL returns a fresh lock-free per-bucket state with b buckets,
// sized for nThreads workers.
func NewPerBucketL(b, nThreads int) *PerBucketLState {
	pb := &PerBucketLState{
		keys:     newBucketKeys(),
		size:     b,
		counters: make([]atomic.Uint32, b),
		times:    make([]atomic.Int64, b),
		rngs:     make([]rand.Rand, nThreads),
	}
	now := monotonicMs()
	for i := range pb.times {
		pb.times[i].Store(now)
	}
	for i := range pb.rngs {
		pb.rngs[i] = *rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return pb
}

// Assign implements spec.md §4.6 steps 1-5.
func (pb *PerBucketLState) Assign(p packet.Packet, threadID int) uint16 {
	idx := pb.keys.index(p, pb.size)
	now := monotonicMs()

	last := pb.times[idx].Swap(now)
	elapsed := now - last
	if elapsed < 1 {
		elapsed = 1
	}

	inc := clampIncrement(&pb.rngs[threadID], elapsed)

	newVal := pb.counters[idx].Add(uint32(inc)) // equals prev+inc
	result := uint16(newVal)
	if result == 0 {
		result = 1
	}
	return result
}

var processStart = time.Now()

// monotonicMs returns milliseconds since process start on a steady,
// monotonic clock, per spec.md §9's "Time source" note.
func monotonicMs() int64 {
	return time.Since(processStart).Milliseconds()
}
