package ipidmethod

import (
	"math/rand/v2"
	"sync"

	"github.com/codewanderer/ipidbench/packet"
)

// PRNGQueueState is the FreeBSD/XNU-style allocator: a ring buffer of Q reserved
// IPIDs plus a presence bitmap over the full 16-bit space, all under one
// mutex (spec.md §4.8). An IPID is never reissued while it sits in the
// queue; the presence array makes membership a O(1) check instead of an
// O(Q) scan.
type PRNGQueueState struct {
	mu sync.Mutex

	rng      rand.Rand
	presence [1 << 16]bool
	queue    []uint16 // length Q, ring-indexed by head
	head     int
	count    int
}

// NewPRNGQueue returns a fresh queue reserving the most recent q IPIDs
// (spec.md §6 restricts q to [2^12, 2^15]).
func NewPRNGQueue(q int) *PRNGQueueState {
	return &PRNGQueueState{
		rng:   *rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		queue: make([]uint16, q),
	}
}

// Assign implements spec.md §4.8 steps 1-4. Termination of the rejection
// loop is guaranteed: with q <= 2^15, at most q+1 values (0 and the queued
// set) are ever disallowed out of 2^16 candidates.
func (q *PRNGQueueState) Assign(_ packet.Packet, _ int) uint16 {
	q.mu.Lock()
	defer q.mu.Unlock()

	var ipid uint16
	for {
		ipid = uint16(q.rng.Uint32())
		if ipid != 0 && !q.presence[ipid] {
			break
		}
	}

	qcap := len(q.queue)
	if q.count < qcap {
		q.queue[q.count] = ipid
		q.presence[ipid] = true
		q.count++
		return ipid
	}

	evicted := q.queue[q.head]
	q.queue[q.head] = ipid
	q.head = (q.head + 1) % qcap
	q.presence[ipid] = true
	q.presence[evicted] = false
	return ipid
}
