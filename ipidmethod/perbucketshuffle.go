package ipidmethod

import (
	"math/rand/v2"
	"sync"

	"github.com/codewanderer/ipidbench/packet"
)

// reservedShuffleWindow is the fixed reserved-IPID count for every bucket's
// shuffle state (spec.md §4.11: "fixed at 2^15 across buckets").
const reservedShuffleWindow = 1 << 15

// bucketShuffleSlot is one independent §4.9-style shuffle state, one per
// bucket, each with its own mutex and PRNG.
type bucketShuffleSlot struct {
	mu   sync.Mutex
	rng  rand.Rand
	perm [1 << 16]uint16
	head uint16
}

func newBucketShuffleSlot() *bucketShuffleSlot {
	s := &bucketShuffleSlot{rng: *rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	for i := range s.perm {
		s.perm[i] = uint16(i)
	}
	for i := len(s.perm) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
	}
	return s
}

func (s *bucketShuffleSlot) assign() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		sample := uint16(s.rng.IntN(reservedShuffleWindow))
		j := s.head - sample

		v := s.perm[s.head]
		s.perm[s.head], s.perm[j] = s.perm[j], s.perm[s.head]
		s.head++

		if v != 0 {
			return v
		}
	}
}

// PerBucketShuffleState is the proposed method of spec.md §4.11: B independent
// shuffle states, small enough (valid range 2..16) that total storage
// matches a coarse-grained per-bucket baseline, sharded by the same
// SipHash scheme as PerBucketL/PerBucketM.
type PerBucketShuffleState struct {
	keys    bucketKeys
	size    int
	buckets []*bucketShuffleSlot
}

// NewPerBucketShuffle returns a fresh state with b buckets (spec.md §6
// restricts b to [2, 16]).
func NewPerBucketShuffle(b int) *PerBucketShuffleState {
	ps := &PerBucketShuffleState{
		keys:    newBucketKeys(),
		size:    b,
		buckets: make([]*bucketShuffleSlot, b),
	}
	for i := range ps.buckets {
		ps.buckets[i] = newBucketShuffleSlot()
	}
	return ps
}

// Assign shards the packet into a bucket via SipHash, then delegates to
// that bucket's independent shuffle state.
func (ps *PerBucketShuffleState) Assign(p packet.Packet, _ int) uint16 {
	idx := ps.keys.index(p, ps.size)
	return ps.buckets[idx].assign()
}
