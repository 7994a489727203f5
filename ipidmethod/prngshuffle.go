package ipidmethod

import (
	"math/rand/v2"
	"sync"

	"github.com/codewanderer/ipidbench/packet"
)

// PRNGShuffleState is the OpenBSD-style allocator: a single array holding a
// permutation of the full 16-bit space, walked by a head pointer that wraps
// for free in u16 arithmetic, with a reserved window of the last k
// positions exchanged in rather than handed out directly (spec.md §4.9).
type PRNGShuffleState struct {
	mu   sync.Mutex
	rng  rand.Rand
	perm [1 << 16]uint16
	head uint16
	k    int // reserved-IPID window, the -a argument
}

// NewPRNGShuffle returns a fresh shuffle state reserving the most recent k
// IPIDs (spec.md §6 restricts k to [2^12, 2^15]).
func NewPRNGShuffle(k int) *PRNGShuffleState {
	s := &PRNGShuffleState{
		rng: *rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		k:   k,
	}
	for i := range s.perm {
		s.perm[i] = uint16(i)
	}
	// Fisher-Yates shuffle at construction (spec.md §4.9).
	for i := len(s.perm) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
	}
	return s
}

// Assign implements spec.md §4.9 steps 1-3. The u16 wraparound on both head
// and the head-minus-sample subtraction makes the "previous k positions"
// window cyclic for free; a wider-typed port would need an explicit
// (head + 2^16 - sample) mod 2^16.
func (s *PRNGShuffleState) Assign(_ packet.Packet, _ int) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		sample := uint16(s.rng.IntN(s.k))
		j := s.head - sample // wrapping u16 subtraction

		v := s.perm[s.head]
		s.perm[s.head], s.perm[j] = s.perm[j], s.perm[s.head]
		s.head++ // wraps mod 2^16 by virtue of the uint16 type

		if v != 0 {
			return v
		}
	}
}
