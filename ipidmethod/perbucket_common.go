package ipidmethod

import (
	"math/rand/v2"

	"github.com/codewanderer/ipidbench/packet"
	"github.com/codewanderer/ipidbench/siphash"
)

// bucketKeys holds the two 64-bit SipHash keys sampled once at construction
// and shared by every per-bucket method variant (spec.md §3).
type bucketKeys struct {
	k1, k2 uint64
}

func newBucketKeys() bucketKeys {
	return bucketKeys{k1: rand.Uint64(), k2: rand.Uint64()}
}

func (k bucketKeys) index(p packet.Packet, b int) int {
	return siphash.BucketIndex(p.DstAddr, p.SrcAddr, p.Proto, k.k1, k.k2, b)
}

// clampIncrement draws a uniform increment from [1, elapsedMs], matching
// spec.md §4.6 step 4's "uniformly from [1, elapsed]". elapsedMs is first
// clamped to [1, 0xffff] so the increment always fits in a uint16.
func clampIncrement(rng *rand.Rand, elapsedMs int64) uint16 {
	if elapsedMs < 1 {
		elapsedMs = 1
	}
	if elapsedMs > 0xffff {
		elapsedMs = 0xffff
	}
	return uint16(1 + rng.IntN(int(elapsedMs)))
}
