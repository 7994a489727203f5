package ipidmethod

import (
	"math/rand/v2"

	"github.com/codewanderer/ipidbench/packet"
)

// PRNGPureState gives every thread its own PRNG and touches no shared mutable
// state at all (spec.md §4.10); it is the method every other variant's
// locking cost is measured against, since it scales linearly with thread
// count by construction.
type PRNGPureState struct {
	rngs []rand.Rand
	salt uint16
}

// NewPRNGPure returns nThreads independent PRNGs seeded from a fixed
// 64-bit salt, folded to 8 bits per spec.md §4.10.
func NewPRNGPure(nThreads int, salt uint64) *PRNGPureState {
	p := &PRNGPureState{
		rngs: make([]rand.Rand, nThreads),
		salt: foldSalt(salt),
	}
	for i := range p.rngs {
		p.rngs[i] = *rand.New(rand.NewPCG(salt+uint64(i), rand.Uint64()))
	}
	return p
}

// foldSalt reduces a 64-bit salt to an 8-bit value by XORing its four
// 16-bit lanes and masking to the low byte, per spec.md §4.10's formula.
func foldSalt(s uint64) uint16 {
	return (uint16(s>>48) ^ uint16(s>>32) ^ uint16(s>>16) ^ uint16(s)) & 0xFF
}

// Assign draws a uniform u16, rejecting the salt value, and returns v^salt
// (spec.md §4.10). v==0 is also rejected: v==0 would otherwise produce
// v^salt==salt, violating "never returns the folded salt" (spec.md §8
// property 8), and v==salt would otherwise produce v^salt==0, violating
// the "assign never returns 0" invariant every method shares (spec.md §3).
func (p *PRNGPureState) Assign(_ packet.Packet, threadID int) uint16 {
	rng := &p.rngs[threadID]
	var v uint16
	for {
		v = uint16(rng.Uint32())
		if v != p.salt && v != 0 {
			break
		}
	}
	return v ^ p.salt
}
