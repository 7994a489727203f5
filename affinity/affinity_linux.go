//go:build linux

// affinity_linux.go — CPU enumeration and pinning via sched_getaffinity(2) /
// sched_setaffinity(2), using golang.org/x/sys/unix's typed CPUSet for both
// the get and set sides (enumerating schedulable CPUs, spec.md §6).

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Available returns the CPU indices the calling process may be scheduled on.
func Available() ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("affinity: sched_getaffinity: %w", err)
	}
	cpus := make([]int, 0, set.Count())
	for i := 0; i < len(set)*64; i++ {
		if set.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus, nil
}

// Pin binds the calling OS thread to cpu. Callers must have already called
// runtime.LockOSThread: the lock must happen before setAffinity, never after.
func Pin(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity(cpu=%d): %w", cpu, err)
	}
	return nil
}
