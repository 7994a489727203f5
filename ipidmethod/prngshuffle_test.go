package ipidmethod

import (
	"testing"

	"github.com/codewanderer/ipidbench/packet"
)

func TestPRNGShuffleNeverReturnsZero(t *testing.T) {
	s := NewPRNGShuffle(1 << 12)
	p := packet.Packet{}
	for i := 0; i < 5000; i++ {
		if got := s.Assign(p, 0); got == 0 {
			t.Fatalf("Assign returned 0 on call %d", i)
		}
	}
}

func TestPRNGShufflePermInvariantAfterManyCalls(t *testing.T) {
	s := NewPRNGShuffle(1 << 12)
	p := packet.Packet{}
	for i := 0; i < 10000; i++ {
		s.Assign(p, 0)
	}

	seen := make(map[uint16]bool, len(s.perm))
	for _, v := range s.perm {
		if seen[v] {
			t.Fatalf("value %d appears more than once in perm, permutation invariant broken", v)
		}
		seen[v] = true
	}
	if len(seen) != len(s.perm) {
		t.Fatalf("perm has %d distinct values, want %d", len(seen), len(s.perm))
	}
}

func TestPerBucketShuffleNeverReturnsZero(t *testing.T) {
	ps := NewPerBucketShuffle(4)
	for i := 0; i < 5000; i++ {
		p := packet.Packet{DstAddr: uint32(i), SrcAddr: uint32(i * 3), Proto: uint32(i % 5)}
		if got := ps.Assign(p, 0); got == 0 {
			t.Fatalf("Assign returned 0 on call %d", i)
		}
	}
}

func TestPerBucketShufflePermInvariantPerBucket(t *testing.T) {
	ps := NewPerBucketShuffle(4)
	for i := 0; i < 5000; i++ {
		p := packet.Packet{DstAddr: uint32(i), SrcAddr: uint32(i * 3), Proto: uint32(i % 5)}
		ps.Assign(p, 0)
	}

	for bi, bucket := range ps.buckets {
		seen := make(map[uint16]bool, len(bucket.perm))
		for _, v := range bucket.perm {
			if seen[v] {
				t.Fatalf("bucket %d: value %d appears more than once in perm", bi, v)
			}
			seen[v] = true
		}
	}
}
