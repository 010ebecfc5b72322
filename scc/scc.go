package scc

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvlmc/dtmc"
)

// Component is one strongly connected component of the restricted
// subgraph. Trivial components hold a single state without a self-loop.
type Component struct {
	States  []int
	Trivial bool
}

// Decompose computes the strongly connected components of the subgraph of
// m induced by the states in sub. Edges leaving sub are ignored.
//
// Recursion depth is bounded by the number of states in sub; the driver
// only hands in subgraphs it intends to eliminate, which keeps frames
// proportional to the working set.
func Decompose[V any](m *dtmc.Matrix[V], sub *bitset.BitSet) []Component {
	n := m.RowCount()
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var (
		stack []int
		comps []Component
		next  int
	)

	var connect func(v int)
	connect = func(v int) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		selfLoop := false
		for _, e := range m.Row(v) {
			w := e.Col
			if !sub.Test(uint(w)) {
				continue
			}
			if w == v {
				selfLoop = true
				continue
			}
			if index[w] == -1 {
				connect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && index[w] < lowlink[v] {
				lowlink[v] = index[w]
			}
		}

		if lowlink[v] != index[v] {
			return
		}

		// v roots a component; pop it off the stack.
		var states []int
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			states = append(states, w)
			if w == v {
				break
			}
		}
		sort.Ints(states)
		comps = append(comps, Component{
			States:  states,
			Trivial: len(states) == 1 && !selfLoop,
		})
	}

	for s, ok := sub.NextSet(0); ok; s, ok = sub.NextSet(s + 1) {
		if index[s] == -1 {
			connect(int(s))
		}
	}

	return comps
}
