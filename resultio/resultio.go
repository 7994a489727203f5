// Package resultio writes the per-(method,cpu_count) result files
// spec.md §6 defines: one CSV per method[+arg] x CPU count, T rows of n
// comma-separated u64 counts, overwritten fresh on every run.
package resultio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/codewanderer/ipidbench/ipidmethod"
)

// FileName returns "<method><arg?>_<n>.csv" per spec.md §6.
func FileName(name ipidmethod.Name, arg, cpuCount int) string {
	if name.TakesArg() {
		return fmt.Sprintf("%s%d_%d.csv", name, arg, cpuCount)
	}
	return fmt.Sprintf("%s_%d.csv", name, cpuCount)
}

// EnsureDir creates dir if missing, matching spec.md §6's "results
// directory is created if missing".
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("resultio: create %s: %w", dir, err)
	}
	return nil
}

// Write overwrites dir/FileName(name,arg,cpuCount) with rows, one CSV row
// per trial, each holding cpuCount comma-separated thread counts in
// thread-id order.
func Write(dir string, name ipidmethod.Name, arg, cpuCount int, rows [][]uint64) error {
	path := filepath.Join(dir, FileName(name, arg, cpuCount))

	f, err := os.Create(path) // truncate-or-create, per spec.md §6's overwrite semantics
	if err != nil {
		return fmt.Errorf("resultio: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.FormatUint(v, 10)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("resultio: write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("resultio: flush %s: %w", path, err)
	}
	return nil
}
