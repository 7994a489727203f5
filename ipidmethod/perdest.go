package ipidmethod

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/codewanderer/ipidbench/packet"
)

// pathEntry is the per-destination state kept by PerDest, one per
// (src_addr, dst_addr) pair (spec.md §4.5, the Windows "PathSet").
type pathEntry struct {
	counter    uint16
	lastAccess int64 // monotonic nanoseconds
}

// PerDestState is the Windows-style per-destination allocator: a single mutex
// guards a hash table of PathSet entries plus the bookkeeping needed to
// purge it once it grows past threshold.
type PerDestState struct {
	mu sync.Mutex

	table     map[uint64]*pathEntry
	threshold int
	rng       *rand.Rand

	lastPurgeCheck  int64
	addedSinceCheck int
}

const purgeCheckInterval = 500 * time.Millisecond
const purgeStaleAge = 60 * time.Second

// NewPerDest returns a fresh PathSet whose purge threshold is threshold
// (the -a argument; spec.md §6 restricts it to {2^12, 2^15}).
func NewPerDest(threshold int) *PerDestState {
	return &PerDestState{
		table:          make(map[uint64]*pathEntry),
		threshold:      threshold,
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		lastPurgeCheck: time.Since(processStart).Nanoseconds(),
	}
}

// Assign implements the PathSet lookup/insert/purge sequence of spec.md §4.5.
func (d *PerDestState) Assign(p packet.Packet, _ int) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Since(processStart).Nanoseconds()

	if now-d.lastPurgeCheck >= int64(purgeCheckInterval) {
		d.purgeCheck(now)
		d.lastPurgeCheck = now
		d.addedSinceCheck = 0
	}

	key := p.Key()
	e, ok := d.table[key]
	if !ok {
		v := uint16(d.rng.Uint32())
		if v == 0 {
			v = 1
		}
		e = &pathEntry{counter: v, lastAccess: now}
		d.table[key] = e
		d.addedSinceCheck++
		return e.counter
	}

	e.counter++
	if e.counter == 0 {
		e.counter = 1
	}
	e.lastAccess = now
	return e.counter
}

// purgeCheck implements the size/age-bounded eviction of spec.md §4.5 step 1.
// Deletion order is map iteration order: spec.md explicitly permits this —
// it does not require reproducing Windows' exact victim choice, only the
// cost profile of growth and eviction under contention.
func (d *PerDestState) purgeCheck(now int64) {
	size := len(d.table)
	needsPurge := size > d.threshold || d.addedSinceCheck > 5000
	if !needsPurge {
		return
	}

	budget := d.addedSinceCheck
	if budget < 1000 {
		budget = 1000
	}

	if size > 2*d.threshold {
		for key := range d.table {
			if budget <= 0 || len(d.table) == 0 {
				break
			}
			delete(d.table, key)
			budget--
		}
		return
	}

	if size > d.threshold {
		staleBefore := now - int64(purgeStaleAge)
		for key, e := range d.table {
			if budget <= 0 {
				break
			}
			if e.lastAccess >= staleBefore {
				continue
			}
			delete(d.table, key)
			budget--
		}
	}
}
