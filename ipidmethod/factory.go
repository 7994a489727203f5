package ipidmethod

import (
	"fmt"
	"math/rand/v2"
)

// New constructs a fresh instance of the named method. arg is the method's
// numeric -a argument (ignored by methods that don't take one); nThreads is
// the CPU count the owning trial will spawn, needed up front by the methods
// that size per-thread state (PerBucketL, PRNGPure). Callers must validate
// arg's range beforehand (spec.md §6); New itself does not re-validate.
func New(name Name, arg, nThreads int) (Method, error) {
	switch name {
	case Global:
		return NewGlobalCounter(), nil
	case PerConn:
		return NewPerConn(), nil
	case PerDest:
		return NewPerDest(arg), nil
	case PerBucketL:
		return NewPerBucketL(arg, nThreads), nil
	case PerBucketM:
		return NewPerBucketM(arg), nil
	case PRNGQueue:
		return NewPRNGQueue(arg), nil
	case PRNGShuffle:
		return NewPRNGShuffle(arg), nil
	case PRNGPure:
		return NewPRNGPure(nThreads, rand.Uint64()), nil
	case PerBucketShuffle:
		return NewPerBucketShuffle(arg), nil
	default:
		return nil, fmt.Errorf("ipidmethod: unknown method %q", name)
	}
}

// ValidateArg checks arg against the per-method range spec.md §6 defines.
// Methods that take no argument accept any value (it is unused).
func ValidateArg(name Name, arg int) error {
	switch name {
	case PerDest:
		if arg != 1<<12 && arg != 1<<15 {
			return fmt.Errorf("ipidmethod: perdest argument must be one of {2^12, 2^15}, got %d", arg)
		}
	case PerBucketL, PerBucketM:
		if arg < 1<<11 || arg > 1<<18 {
			return fmt.Errorf("ipidmethod: %s argument must be in [2^11, 2^18], got %d", name, arg)
		}
	case PRNGQueue, PRNGShuffle:
		if arg < 1<<12 || arg > 1<<15 {
			return fmt.Errorf("ipidmethod: %s argument must be in [2^12, 2^15], got %d", name, arg)
		}
	case PerBucketShuffle:
		if arg < 2 || arg > 16 {
			return fmt.Errorf("ipidmethod: perbucketshuffle argument must be in [2, 16], got %d", arg)
		}
	}
	return nil
}
