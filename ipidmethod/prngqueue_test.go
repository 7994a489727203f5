package ipidmethod

import (
	"testing"

	"github.com/codewanderer/ipidbench/packet"
)

func TestPRNGQueueNeverReturnsZero(t *testing.T) {
	q := NewPRNGQueue(1 << 12)
	p := packet.Packet{}
	for i := 0; i < 5000; i++ {
		if got := q.Assign(p, 0); got == 0 {
			t.Fatalf("Assign returned 0 on call %d", i)
		}
	}
}

func TestPRNGQueuePresenceMatchesQueueContents(t *testing.T) {
	q := NewPRNGQueue(8)
	p := packet.Packet{}
	for i := 0; i < 100; i++ {
		q.Assign(p, 0)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	inQueue := make(map[uint16]bool, q.count)
	for i := 0; i < q.count; i++ {
		inQueue[q.queue[i]] = true
	}
	for v := 0; v < len(q.presence); v++ {
		if q.presence[v] != inQueue[uint16(v)] {
			t.Fatalf("presence[%d]=%v does not match queue membership %v", v, q.presence[v], inQueue[uint16(v)])
		}
	}
}

func TestPRNGQueueCardinalityNeverExceedsQ(t *testing.T) {
	qcap := 8
	q := NewPRNGQueue(qcap)
	p := packet.Packet{}
	for i := 0; i < 500; i++ {
		q.Assign(p, 0)
		q.mu.Lock()
		count := q.count
		q.mu.Unlock()
		if count > qcap {
			t.Fatalf("queue count %d exceeds capacity %d", count, qcap)
		}
	}
}

func TestPRNGQueueNoImmediateReuse(t *testing.T) {
	q := NewPRNGQueue(1 << 12)
	p := packet.Packet{}
	seen := make(map[uint16]bool)
	for i := 0; i < 2000; i++ {
		got := q.Assign(p, 0)
		if seen[got] {
			t.Fatalf("call %d reused IPID %d still in the reserved queue", i, got)
		}
		seen[got] = true
		if len(seen) > 1<<12 {
			// old entries have been evicted; stop tracking them to keep
			// this a reuse-within-window check, not a full-space check.
			seen = map[uint16]bool{got: true}
		}
	}
}
