//go:build !linux

// affinity_other.go — platforms without sched_setaffinity(2).
//
// A cross-platform stub that silently no-ops for API-compatibility would
// be the easy choice, but this benchmark's contract (spec.md §5) requires
// affinity failure to be loud: an unpinned thread invalidates the
// measurement, so Pin returns an error here instead of pretending to have
// succeeded.

package affinity

import (
	"fmt"
	"runtime"
)

// Available reports the platform's CPUs as schedulable since there is no
// portable affinity-mask query outside Linux; callers still get a bound on
// -c (spec.md §6's |available_cpus|), just not a true affinity-restricted set.
func Available() ([]int, error) {
	n := runtime.NumCPU()
	cpus := make([]int, n)
	for i := range cpus {
		cpus[i] = i
	}
	return cpus, nil
}

// Pin always fails: this platform has no thread-affinity syscall, and a
// benchmark that cannot guarantee pinning must not silently proceed.
func Pin(cpu int) error {
	return fmt.Errorf("affinity: CPU pinning unsupported on %s", runtime.GOOS)
}
