// ─────────────────────────────────────────────────────────────────────────
// IPID Selection Benchmark — Main Entry Point
// ─────────────────────────────────────────────────────────────────────────
// Validates the CLI surface (spec.md §6), loads a packet trace, and hands
// off to the harness for dispatch across CPU counts and trials:
// validate -> load -> run -> report.
// ─────────────────────────────────────────────────────────────────────────

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/codewanderer/ipidbench/affinity"
	"github.com/codewanderer/ipidbench/debug"
	"github.com/codewanderer/ipidbench/harness"
	"github.com/codewanderer/ipidbench/ipidmethod"
	"github.com/codewanderer/ipidbench/tracecache"
)

// config is the parsed CLI surface, passed by value into the harness
// (spec.md §9: the core never reads process-wide globals).
type config struct {
	tracePath  string
	resultsDir string
	method     string
	arg        int
	trials     int
	trialSecs  int
	warmupMs   int
	maxCPUs    int
}

func main() {
	cfg, help := parseFlags()
	if help {
		printUsage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		debug.DropError("FATAL", err)
		os.Exit(1)
	}
}

func parseFlags() (config, bool) {
	fs := flag.NewFlagSet("ipidbench", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var cfg config
	var help bool
	fs.StringVar(&cfg.tracePath, "f", "packets.csv", "packet CSV trace path")
	fs.StringVar(&cfg.resultsDir, "r", "results", "results directory")
	fs.StringVar(&cfg.method, "m", "global", "method name")
	fs.IntVar(&cfg.arg, "a", 4096, "method-specific numeric argument")
	fs.IntVar(&cfg.trials, "t", 1, "trials per CPU count")
	fs.IntVar(&cfg.trialSecs, "d", 5, "trial duration, seconds")
	fs.IntVar(&cfg.warmupMs, "w", 100, "warmup duration, milliseconds")
	fs.IntVar(&cfg.maxCPUs, "c", 4, "max CPU count")
	fs.BoolVar(&help, "h", false, "help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		printUsage()
		os.Exit(1)
	}
	return cfg, help
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `ipidbench — benchmark IPID selection algorithms under concurrent load

Usage: ipidbench [flags]

  -f path     packet CSV trace path (default "packets.csv")
  -r dir      results directory (default "results")
  -m method   global|perconn|perdest|perbucketl|perbucketm|prngqueue|prngshuffle|prngpure|perbucketshuffle
  -a n        method-specific numeric argument (default 4096)
  -t n        trials per CPU count (default 1)
  -d secs     trial duration, seconds (default 5)
  -w ms       warmup duration, milliseconds (default 100)
  -c n        max CPU count (default 4)
  -h          show this help`)
}

func run(cfg config) error {
	name := ipidmethod.Name(cfg.method)
	if !name.Valid() {
		return fmt.Errorf("config: unknown method %q", cfg.method)
	}
	if err := ipidmethod.ValidateArg(name, cfg.arg); err != nil {
		return err
	}

	available, err := affinity.Available()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := validateBounds(cfg, len(available)); err != nil {
		return err
	}

	debug.DropMessage("INIT", fmt.Sprintf("loading trace %s", cfg.tracePath))
	packets, err := tracecache.Load(cfg.tracePath, cfg.tracePath+".cache.db")
	if err != nil {
		return err
	}
	debug.DropMessage("LOADED", fmt.Sprintf("%d packets", len(packets)))

	return harness.Run(harness.Options{
		Packets:       packets,
		Method:        name,
		Arg:           cfg.arg,
		Trials:        cfg.trials,
		TrialDuration: time.Duration(cfg.trialSecs) * time.Second,
		Warmup:        time.Duration(cfg.warmupMs) * time.Millisecond,
		MaxCPUs:       cfg.maxCPUs,
		AvailableCPUs: available,
		ResultsDir:    cfg.resultsDir,
	})
}

// validateBounds enforces spec.md §6's numeric constraints not already
// covered by ipidmethod.ValidateArg.
func validateBounds(cfg config, availableCPUs int) error {
	if cfg.trials < 1 {
		return fmt.Errorf("config: -t must be >= 1, got %d", cfg.trials)
	}
	if cfg.trialSecs < 1 {
		return fmt.Errorf("config: -d must be >= 1, got %d", cfg.trialSecs)
	}
	maxWarmup := cfg.trialSecs * 500
	if cfg.warmupMs < 10 || cfg.warmupMs > maxWarmup {
		return fmt.Errorf("config: -w must be in [10, %d] (d*500), got %d", maxWarmup, cfg.warmupMs)
	}
	if cfg.maxCPUs < 1 || cfg.maxCPUs > availableCPUs {
		return fmt.Errorf("config: -c must be in [1, %d] (available CPUs), got %d", availableCPUs, cfg.maxCPUs)
	}
	return nil
}
