package scc_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlmc/algebra"
	"github.com/katalvlaran/lvlmc/dtmc"
	"github.com/katalvlaran/lvlmc/scc"
)

func all(n uint) *bitset.BitSet { return bitset.New(n).Complement() }

// build assembles a unit-weight adjacency matrix from an edge list.
func build(t *testing.T, n int, edges [][2]int) *dtmc.Matrix[float64] {
	t.Helper()
	b := dtmc.NewBuilder[float64](n, algebra.DefaultFloat64())
	for _, e := range edges {
		require.NoError(t, b.Add(e[0], e[1], 1.0))
	}

	return b.Build()
}

func TestDecompose_CycleAndTail(t *testing.T) {
	// 0 -> 1 -> 2 -> 0 form a cycle; 3 hangs off it.
	m := build(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}})

	comps := scc.Decompose(m, all(4))
	require.Len(t, comps, 2)

	var cycle, tail *scc.Component
	for i := range comps {
		if len(comps[i].States) == 3 {
			cycle = &comps[i]
		} else {
			tail = &comps[i]
		}
	}
	require.NotNil(t, cycle)
	require.NotNil(t, tail)

	assert.Equal(t, []int{0, 1, 2}, cycle.States, "members sorted ascending")
	assert.False(t, cycle.Trivial)
	assert.Equal(t, []int{3}, tail.States)
	assert.True(t, tail.Trivial)
}

func TestDecompose_SelfLoopIsNontrivial(t *testing.T) {
	m := build(t, 2, [][2]int{{0, 1}, {1, 1}})

	comps := scc.Decompose(m, all(2))
	require.Len(t, comps, 2)
	for _, c := range comps {
		switch c.States[0] {
		case 0:
			assert.True(t, c.Trivial)
		case 1:
			assert.False(t, c.Trivial, "a self-loop makes a singleton non-trivial")
		}
	}
}

func TestDecompose_RespectsSubset(t *testing.T) {
	// The full graph is one big cycle, but cutting state 0 out of the
	// subset breaks it into singletons.
	m := build(t, 3, [][2]int{{0, 1}, {1, 2}, {2, 0}})

	sub := bitset.New(3)
	sub.Set(1)
	sub.Set(2)

	comps := scc.Decompose(m, sub)
	require.Len(t, comps, 2)
	for _, c := range comps {
		assert.True(t, c.Trivial)
		assert.Len(t, c.States, 1)
		assert.NotContains(t, c.States, 0)
	}
}

func TestDecompose_ReverseTopologicalOrder(t *testing.T) {
	// 0 -> 1: the sink component completes first under Tarjan.
	m := build(t, 2, [][2]int{{0, 1}})

	comps := scc.Decompose(m, all(2))
	require.Len(t, comps, 2)
	assert.Equal(t, []int{1}, comps[0].States)
	assert.Equal(t, []int{0}, comps[1].States)
}

func TestDecompose_EmptySubset(t *testing.T) {
	m := build(t, 3, [][2]int{{0, 1}})

	comps := scc.Decompose(m, bitset.New(3))
	assert.Empty(t, comps)
}
