package elim

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvlmc/dtmc"
	"github.com/katalvlaran/lvlmc/scc"
)

// eliminateAll eliminates the given states in order, stopping on the
// first failure.
func (e *Eliminator[V]) eliminateAll(states []int) error {
	for _, s := range states {
		if err := e.eliminate(s, true, nil); err != nil {
			return err
		}
	}

	return nil
}

// treatSCC eliminates every non-entry state of sub, recursing into the
// SCC decomposition while components stay above o.MaxSCCSize. Trivial
// components go first in priority order; entry states of recursive calls
// are eliminated immediately or appended to queue per o.EntryStatesLast.
// At level 0 the entry set belongs to the caller and is left untouched.
// The forward matrix is only consulted for its sparsity pattern, so the
// immutable pre-elimination matrix serves at every level. Returns the
// deepest recursion level reached.
func (e *Eliminator[V]) treatSCC(forward *dtmc.Matrix[V], entry, sub *bitset.BitSet, level int, o Options, priorities []int, queue *[]int) (int, error) {
	maxDepth := level
	n := uint(forward.RowCount())

	if int(sub.Count()) > o.MaxSCCSize {
		inner := sub.Difference(entry)
		comps := scc.Decompose(forward, inner)

		var trivial []int
		for _, c := range comps {
			if c.Trivial {
				trivial = append(trivial, c.States[0])
			}
		}
		sortByPriority(trivial, priorities)
		if err := e.eliminateAll(trivial); err != nil {
			return 0, err
		}

		for _, c := range comps {
			if c.Trivial {
				continue
			}
			compSet := bitset.New(n)
			for _, s := range c.States {
				compSet.Set(uint(s))
			}

			// Entry states of the component: members still reachable
			// from outside it after the trivial eliminations.
			compEntry := bitset.New(n)
			for _, s := range c.States {
				for _, pe := range e.backward.Row(s) {
					if !compSet.Test(uint(pe.Col)) {
						compEntry.Set(uint(s))
						break
					}
				}
			}

			depth, err := e.treatSCC(forward, compEntry, compSet, level+1, o, priorities, queue)
			if err != nil {
				return 0, err
			}
			if depth > maxDepth {
				maxDepth = depth
			}
		}
	} else {
		states := setToSlice(sub.Difference(entry))
		sortByPriority(states, priorities)
		if err := e.eliminateAll(states); err != nil {
			return 0, err
		}
	}

	if level > 0 {
		if o.EntryStatesLast {
			*queue = append(*queue, setToSlice(entry)...)
		} else if err := e.eliminateAll(setToSlice(entry)); err != nil {
			return 0, err
		}
	}

	return maxDepth, nil
}
