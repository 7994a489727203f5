// Package ipidmethod is the catalog of IPID selection strategies the
// benchmark drives. Each strategy owns a disjoint state type and its own
// concurrency discipline (spec.md §3, §4); all nine share one dispatch
// surface so the trial driver never needs to know which is which.
package ipidmethod

import "github.com/codewanderer/ipidbench/packet"

// Method is the uniform contract every strategy implements: assign a 16-bit
// IPID for a packet, from worker thread threadID. threadID is stable across
// calls from the same worker within a trial (0..n-1); implementations that
// don't need it simply ignore it. Assign is total — it always returns a
// value, never an error, and must be safe to call concurrently from
// distinct threads under arbitrary interleaving (spec.md §4.2, §7).
type Method interface {
	Assign(p packet.Packet, threadID int) uint16
}

// Name identifies one of the nine catalog entries, as accepted by -m.
type Name string

const (
	Global           Name = "global"
	PerConn          Name = "perconn"
	PerDest          Name = "perdest"
	PerBucketL       Name = "perbucketl"
	PerBucketM       Name = "perbucketm"
	PRNGQueue        Name = "prngqueue"
	PRNGShuffle      Name = "prngshuffle"
	PRNGPure         Name = "prngpure"
	PerBucketShuffle Name = "perbucketshuffle"
)

// TakesArg reports whether Name consumes the -a numeric argument, and
// whether the CSV output file name carries that argument as a suffix
// (spec.md §6's "<method><arg?>" naming).
func (n Name) TakesArg() bool {
	switch n {
	case PerDest, PerBucketL, PerBucketM, PRNGQueue, PRNGShuffle, PerBucketShuffle:
		return true
	default:
		return false
	}
}

// Valid reports whether n is one of the nine catalog names.
func (n Name) Valid() bool {
	switch n {
	case Global, PerConn, PerDest, PerBucketL, PerBucketM, PRNGQueue, PRNGShuffle, PRNGPure, PerBucketShuffle:
		return true
	default:
		return false
	}
}
