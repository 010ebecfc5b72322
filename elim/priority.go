package elim

import (
	"math/rand"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvlmc/algebra"
	"github.com/katalvlaran/lvlmc/dtmc"
	"github.com/katalvlaran/lvlmc/reach"
)

// statePriorities assigns each state of the maybe-subgraph a rank used as
// the elimination order. Ranks are a pure heuristic: any order yields the
// same scalar, better orders produce less intermediate fill-in.
//
// Backward orders measure distance from the pseudo-target set — states
// with nonzero one-step probability — because the true targets were
// already carved out of the subgraph.
func statePriorities[V any](arith algebra.Arithmetic[V], forward, backward *dtmc.Matrix[V],
	initial *bitset.BitSet, oneStep []V, o Options) []int {
	n := forward.RowCount()
	states := make([]int, n)
	for i := range states {
		states[i] = i
	}

	if o.Order == OrderRandom {
		rng := rand.New(rand.NewSource(o.Seed))
		rng.Shuffle(n, func(i, j int) { states[i], states[j] = states[j], states[i] })
	} else {
		var dist []int
		switch o.Order {
		case OrderForward, OrderForwardReversed:
			dist = reach.Distances(forward, initial)
		default: // OrderBackward, OrderBackwardReversed
			pseudoTargets := bitset.New(uint(n))
			for s, v := range oneStep {
				if !arith.IsZero(v) {
					pseudoTargets.Set(uint(s))
				}
			}
			dist = reach.Distances(backward, pseudoTargets)
		}

		// Unreached states sort after every reached one.
		for s, d := range dist {
			if d == reach.Unreachable {
				dist[s] = n
			}
		}

		ascending := o.Order == OrderForward || o.Order == OrderBackward
		sort.SliceStable(states, func(i, j int) bool {
			if ascending {
				return dist[states[i]] < dist[states[j]]
			}

			return dist[states[i]] > dist[states[j]]
		})
	}

	priorities := make([]int, n)
	for rank, s := range states {
		priorities[s] = rank
	}

	return priorities
}

// sortByPriority orders states ascending by their priority rank, in place.
func sortByPriority(states []int, priorities []int) {
	sort.SliceStable(states, func(i, j int) bool {
		return priorities[states[i]] < priorities[states[j]]
	})
}

// setToSlice lists the members of a bitset in ascending order.
func setToSlice(set *bitset.BitSet) []int {
	out := make([]int, 0, set.Count())
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		out = append(out, int(s))
	}

	return out
}
