package ipidmethod

import (
	"testing"

	"github.com/codewanderer/ipidbench/packet"
)

func TestPRNGPureNeverReturnsZero(t *testing.T) {
	p := NewPRNGPure(1, 0xdeadbeefcafef00d)
	pkt := packet.Packet{}
	for i := 0; i < 5000; i++ {
		if got := p.Assign(pkt, 0); got == 0 {
			t.Fatalf("Assign returned 0 on call %d", i)
		}
	}
}

func TestPRNGPureNeverReturnsFoldedSalt(t *testing.T) {
	p := NewPRNGPure(1, 0xdeadbeefcafef00d)
	pkt := packet.Packet{}
	for i := 0; i < 5000; i++ {
		if got := p.Assign(pkt, 0); got == p.salt {
			t.Fatalf("Assign returned the folded salt %d on call %d", got, i)
		}
	}
}

func TestPRNGPureThreadsAreIndependent(t *testing.T) {
	p := NewPRNGPure(2, 0x1234)
	pkt := packet.Packet{}
	// Distinct threads draw from distinct PRNG state; over enough calls the
	// two streams should diverge at some point. This isn't a statistical
	// test, just a smoke check that threadID actually selects a separate
	// rngs[] slot rather than aliasing the same one.
	diverged := false
	for i := 0; i < 200; i++ {
		a := p.Assign(pkt, 0)
		b := p.Assign(pkt, 1)
		if a != b {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Error("threads 0 and 1 never diverged across 200 calls; suspect shared RNG state")
	}
}

func TestFoldSaltIsXorOfFourLanesMaskedToByte(t *testing.T) {
	var s uint64 = 0x1111_2222_3333_4444
	want := (uint16(0x1111) ^ uint16(0x2222) ^ uint16(0x3333) ^ uint16(0x4444)) & 0xFF
	if got := foldSalt(s); got != want {
		t.Errorf("foldSalt(%#x) = %#x, want %#x", s, got, want)
	}
	if got := foldSalt(s); got > 0xFF {
		t.Errorf("foldSalt(%#x) = %#x, exceeds the 8-bit mask", s, got)
	}
}
