package ipidmethod

import (
	"math/rand/v2"
	"sync"

	"github.com/codewanderer/ipidbench/packet"
)

// bucketSlotM is one mutex-protected bucket: the full (exchange-time,
// sample, add) sequence of spec.md §4.7 runs inside its lock, unlike
// PerBucketL where the same two fields are touched by independent atomics.
type bucketSlotM struct {
	mu      sync.Mutex
	counter uint16
	lastMs  int64
	rng     rand.Rand // owned by this bucket's lock; no separate RNG mutex needed
}

// PerBucketMState is the mutex-per-bucket variant: identical arithmetic to
// PerBucketL, but exists to measure the cost of taking a lock per
// assignment against doing raw atomics (spec.md §4.7). The bucket slice is
// allocated once by NewPerBucketM and never copied afterward, so the
// sync.Mutex values embedded in it are safe despite being non-movable
// (spec.md §9's mutex-in-vector note).
type PerBucketMState struct {
	keys    bucketKeys
	size    int
	buckets []bucketSlotM
}

// NewPerBucketM returns a fresh mutex-per-bucket state with b buckets.
func NewPerBucketM(b int) *PerBucketMState {
	pm := &PerBucketMState{
		keys:    newBucketKeys(),
		size:    b,
		buckets: make([]bucketSlotM, b),
	}
	now := monotonicMs()
	for i := range pm.buckets {
		pm.buckets[i].lastMs = now
		pm.buckets[i].rng = *rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return pm
}

// Assign implements spec.md §4.7: the whole (exchange, sample, add)
// sequence runs under the bucket's own mutex.
func (pm *PerBucketMState) Assign(p packet.Packet, _ int) uint16 {
	idx := pm.keys.index(p, pm.size)
	slot := &pm.buckets[idx]

	slot.mu.Lock()
	defer slot.mu.Unlock()

	now := monotonicMs()
	elapsed := now - slot.lastMs
	slot.lastMs = now
	if elapsed < 1 {
		elapsed = 1
	}

	inc := clampIncrement(&slot.rng, elapsed)

	slot.counter += inc
	if slot.counter == 0 {
		slot.counter = 1
	}
	return slot.counter
}
