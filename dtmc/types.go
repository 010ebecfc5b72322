package dtmc

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
)

// Sentinel errors shared across the package. Callers match with errors.Is.
var (
	// ErrIndexOutOfRange indicates a state index outside [0, n).
	ErrIndexOutOfRange = errors.New("dtmc: state index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between the
	// transition matrix and a supplied vector or matrix.
	ErrDimensionMismatch = errors.New("dtmc: dimension mismatch")

	// ErrUnknownLabel is returned when a formula references a label the
	// model does not define.
	ErrUnknownLabel = errors.New("dtmc: unknown label")
)

// Entry is one sparse edge endpoint: target column and weight.
type Entry[V any] struct {
	Col int
	Val V
}

// CompactIndex returns the position of state s inside the compacted index
// space induced by keep (ascending set-bit order), or -1 if s is not kept.
func CompactIndex(keep *bitset.BitSet, s int) int {
	if s < 0 || uint(s) >= keep.Len() || !keep.Test(uint(s)) {
		return -1
	}

	return int(keep.Rank(uint(s))) - 1
}

// CompactSet translates states∩keep into the compacted index space of keep.
// The result has exactly keep.Count() bits.
func CompactSet(keep, states *bitset.BitSet) *bitset.BitSet {
	out := bitset.New(uint(keep.Count()))
	next := 0
	for s, ok := keep.NextSet(0); ok; s, ok = keep.NextSet(s + 1) {
		if states.Test(s) {
			out.Set(uint(next))
		}
		next++
	}

	return out
}
