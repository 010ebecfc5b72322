package reach

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvlmc/dtmc"
)

// Unreachable marks states BFS never visited in a Distances result.
const Unreachable = -1

// Distances computes BFS hop distances in m from the given source set.
// Sources sit at distance 0; states never reached report Unreachable.
func Distances[V any](m *dtmc.Matrix[V], from *bitset.BitSet) []int {
	n := m.RowCount()
	dist := make([]int, n)
	for i := range dist {
		dist[i] = Unreachable
	}

	queue := make([]int, 0, n)
	for s, ok := from.NextSet(0); ok; s, ok = from.NextSet(s + 1) {
		dist[s] = 0
		queue = append(queue, int(s))
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, e := range m.Row(u) {
			if dist[e.Col] == Unreachable {
				dist[e.Col] = dist[u] + 1
				queue = append(queue, e.Col)
			}
		}
	}

	return dist
}

// Reachable returns the states reachable from initial on paths that stay
// inside constraint until they hit a target. Initial states are always
// included; target states are absorbed, never expanded.
func Reachable[V any](m *dtmc.Matrix[V], initial, constraint, targets *bitset.BitSet) *bitset.BitSet {
	n := m.RowCount()
	seen := bitset.New(uint(n))

	queue := make([]int, 0, n)
	for s, ok := initial.NextSet(0); ok; s, ok = initial.NextSet(s + 1) {
		seen.Set(s)
		queue = append(queue, int(s))
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		if !constraint.Test(uint(u)) || targets.Test(uint(u)) {
			continue
		}
		for _, e := range m.Row(u) {
			if !seen.Test(uint(e.Col)) {
				seen.Set(uint(e.Col))
				queue = append(queue, e.Col)
			}
		}
	}

	return seen
}

// ProbGreater0 returns the states satisfying phi U psi with positive
// probability: the backward closure of psi through phi states.
// backward must be the transposed transition matrix.
func ProbGreater0[V any](backward *dtmc.Matrix[V], phi, psi *bitset.BitSet) *bitset.BitSet {
	n := backward.RowCount()
	seen := bitset.New(uint(n))

	queue := make([]int, 0, n)
	for s, ok := psi.NextSet(0); ok; s, ok = psi.NextSet(s + 1) {
		seen.Set(s)
		queue = append(queue, int(s))
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, e := range backward.Row(u) {
			pred := uint(e.Col)
			if phi.Test(pred) && !seen.Test(pred) {
				seen.Set(pred)
				queue = append(queue, e.Col)
			}
		}
	}

	return seen
}

// Prob1 returns the states satisfying phi U psi almost surely.
// A state has probability below one exactly when it can reach the
// probability-zero region through phi-and-not-psi states, so the result
// is the complement of that second backward closure.
func Prob1[V any](backward *dtmc.Matrix[V], phi, psi *bitset.BitSet) *bitset.BitSet {
	prob0 := ProbGreater0(backward, phi, psi).Complement()
	through := phi.Difference(psi)

	return ProbGreater0(backward, through, prob0).Complement()
}

// Prob01 returns the probability-exactly-0 and probability-exactly-1
// partitions for phi U psi in one pass over the shared closure.
func Prob01[V any](backward *dtmc.Matrix[V], phi, psi *bitset.BitSet) (prob0, prob1 *bitset.BitSet) {
	prob0 = ProbGreater0(backward, phi, psi).Complement()
	through := phi.Difference(psi)
	prob1 = ProbGreater0(backward, through, prob0).Complement()

	return prob0, prob1
}
