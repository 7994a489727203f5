// Package harness is the dispatch layer: for each CPU count and trial, it
// builds a fresh method instance and hands it to the trial driver, then
// passes the results to resultio. Orchestration follows a simple
// bootstrap -> run -> report phasing, with debug.DropMessage marking
// progress between phases.
package harness

import (
	"fmt"
	"time"

	"github.com/codewanderer/ipidbench/debug"
	"github.com/codewanderer/ipidbench/ipidmethod"
	"github.com/codewanderer/ipidbench/packet"
	"github.com/codewanderer/ipidbench/resultio"
	"github.com/codewanderer/ipidbench/trial"
)

// Options is the full configuration the harness needs, passed by value
// (spec.md §9's global-state-avoidance note: the core never reads CLI
// globals directly).
type Options struct {
	Packets       []packet.Packet
	Method        ipidmethod.Name
	Arg           int
	Trials        int
	TrialDuration time.Duration
	Warmup        time.Duration
	MaxCPUs       int
	AvailableCPUs []int // at least MaxCPUs entries
	ResultsDir    string
}

// Run executes spec.md §4.13: for n in [1, MaxCPUs], for t in [1, Trials],
// construct a fresh method instance and invoke the trial driver; after all
// trials for a given n, write the T x n matrix to its result file.
func Run(opts Options) error {
	if err := resultio.EnsureDir(opts.ResultsDir); err != nil {
		return err
	}

	for n := 1; n <= opts.MaxCPUs; n++ {
		rows := make([][]uint64, 0, opts.Trials)
		cpus := opts.AvailableCPUs[:n]

		for t := 1; t <= opts.Trials; t++ {
			debug.DropMessage("TRIAL", fmt.Sprintf("method=%s arg=%d cpus=%d trial=%d/%d", opts.Method, opts.Arg, n, t, opts.Trials))

			method, err := ipidmethod.New(opts.Method, opts.Arg, n)
			if err != nil {
				return err
			}

			counts, err := trial.Run(method, opts.Packets, trial.Config{
				CPUs:    cpus,
				Warmup:  opts.Warmup,
				Measure: opts.TrialDuration,
			})
			if err != nil {
				return fmt.Errorf("harness: method=%s cpus=%d trial=%d: %w", opts.Method, n, t, err)
			}
			rows = append(rows, counts)
		}

		if err := resultio.Write(opts.ResultsDir, opts.Method, opts.Arg, n, rows); err != nil {
			return err
		}
	}

	debug.DropMessage("DONE", fmt.Sprintf("method=%s arg=%d cpus=1..%d trials=%d", opts.Method, opts.Arg, opts.MaxCPUs, opts.Trials))
	return nil
}
