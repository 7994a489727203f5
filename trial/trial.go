// Package trial is the benchmark's core driver: spawn N core-pinned worker
// goroutines, warm up, measure, and collect per-thread assignment counts.
// One goroutine per core, runtime.LockOSThread before the hot loop, no
// external cancellation, self-termination by a monotonic-clock check.
package trial

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/codewanderer/ipidbench/affinity"
	"github.com/codewanderer/ipidbench/ipidmethod"
	"github.com/codewanderer/ipidbench/packet"
)

// Config holds the knobs a single trial needs, passed by value per spec.md
// §9's global-state-avoidance note — nothing here is a package-level var.
type Config struct {
	CPUs    []int // physical CPU index per worker thread, length == n
	Warmup  time.Duration
	Measure time.Duration
}

// Run spawns len(cfg.CPUs) worker threads, each pinned to its entry in
// cfg.CPUs, each iterating packets and calling method.Assign in a tight
// loop: a discarded warmup phase followed by a counted measurement phase.
// It returns one assignment count per thread, in thread-id order
// (spec.md §4.12).
func Run(method ipidmethod.Method, packets []packet.Packet, cfg Config) ([]uint64, error) {
	if len(packets) == 0 {
		return nil, fmt.Errorf("trial: empty packet vector")
	}
	n := len(cfg.CPUs)
	counts := make([]uint64, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for t := 0; t < n; t++ {
		go func(threadID, cpu int) {
			defer wg.Done()
			errs[threadID] = worker(method, packets, threadID, cpu, cfg, &counts[threadID])
		}(t, cfg.CPUs[t])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return counts, nil
}

// worker is one pinned thread's full lifecycle: lock to an OS thread, pin
// it to cpu, warm up, measure, and write its count into out.
func worker(method ipidmethod.Method, packets []packet.Packet, threadID, cpu int, cfg Config, out *uint64) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := affinity.Pin(cpu); err != nil {
		return fmt.Errorf("trial: thread %d: %w", threadID, err)
	}

	n := len(packets)
	idx := rand.IntN(n)

	runUntil(method, packets, threadID, &idx, n, cfg.Warmup, nil)

	var count uint64
	runUntil(method, packets, threadID, &idx, n, cfg.Measure, &count)

	*out = count
	return nil
}

// clockCheckStride bounds how often the hot loop reads the monotonic clock,
// keeping the clock read outside assign's critical inner step (spec.md
// §4.12's last line) without paying a time.Now() on every single call.
const clockCheckStride = 256

// runUntil drives the assign loop for duration d, advancing idx through
// packets and optionally accumulating into count (nil during warmup, which
// discards its counts per spec.md §4.12 step 3).
func runUntil(method ipidmethod.Method, packets []packet.Packet, threadID int, idx *int, n int, d time.Duration, count *uint64) {
	deadline := time.Now().Add(d)
	for {
		for i := 0; i < clockCheckStride; i++ {
			method.Assign(packets[*idx], threadID)
			*idx++
			if *idx >= n {
				*idx = 0
			}
			if count != nil {
				*count++
			}
		}
		if time.Now().After(deadline) {
			return
		}
	}
}
