package ipidmethod

import (
	"testing"

	"github.com/codewanderer/ipidbench/packet"
)

func TestPerBucketLNeverReturnsZero(t *testing.T) {
	pb := NewPerBucketL(2048, 1)
	for i := 0; i < 2000; i++ {
		p := packet.Packet{DstAddr: uint32(i), SrcAddr: uint32(i * 7), Proto: uint32(i % 17)}
		if got := pb.Assign(p, 0); got == 0 {
			t.Fatalf("Assign returned 0 for i=%d", i)
		}
	}
}

func TestPerBucketLTimeUpdatesOnHit(t *testing.T) {
	pb := NewPerBucketL(4, 1)
	p := packet.Packet{DstAddr: 1, SrcAddr: 2, Proto: 6}

	before := monotonicMs()
	pb.Assign(p, 0)
	idx := pb.keys.index(p, pb.size)
	got := pb.times[idx].Load()
	if got < before {
		t.Errorf("times[idx] = %d, want >= %d (the call's now)", got, before)
	}
}

func TestPerBucketMNeverReturnsZero(t *testing.T) {
	pm := NewPerBucketM(2048)
	for i := 0; i < 2000; i++ {
		p := packet.Packet{DstAddr: uint32(i), SrcAddr: uint32(i * 7), Proto: uint32(i % 17)}
		if got := pm.Assign(p, 0); got == 0 {
			t.Fatalf("Assign returned 0 for i=%d", i)
		}
	}
}

func TestPerBucketMCounterMonotonicPerBucket(t *testing.T) {
	pm := NewPerBucketM(1) // force every packet into the same bucket
	p1 := packet.Packet{DstAddr: 1, SrcAddr: 2, Proto: 6}
	p2 := packet.Packet{DstAddr: 3, SrcAddr: 4, Proto: 17}

	a := pm.Assign(p1, 0)
	b := pm.Assign(p2, 0)
	if b <= a {
		// Increments are random in [1, elapsed], both positive, so the
		// running counter must strictly increase call over call here since
		// both share the only bucket.
		t.Errorf("counter did not increase: a=%d b=%d", a, b)
	}
}
