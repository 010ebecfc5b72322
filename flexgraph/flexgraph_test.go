package flexgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlmc/algebra"
	"github.com/katalvlaran/lvlmc/dtmc"
	"github.com/katalvlaran/lvlmc/flexgraph"
)

func buildMatrix(t *testing.T) *dtmc.Matrix[float64] {
	t.Helper()
	b := dtmc.NewBuilder[float64](3, algebra.DefaultFloat64())
	require.NoError(t, b.Add(0, 0, 0.25))
	require.NoError(t, b.Add(0, 1, 0.75))
	require.NoError(t, b.Add(1, 2, 1.0))

	return b.Build()
}

func TestFromMatrix_CopiesWeights(t *testing.T) {
	m := buildMatrix(t)
	g := flexgraph.FromMatrix(m, algebra.DefaultFloat64(), false)

	require.Equal(t, 3, g.RowCount())
	row := g.Row(0)
	require.Len(t, row, 2)
	assert.Equal(t, 0.25, row[0].Val)
	assert.Equal(t, 0.75, row[1].Val)
	assert.Empty(t, g.Row(2))
}

func TestFromMatrix_UnitWeights(t *testing.T) {
	m := buildMatrix(t)
	g := flexgraph.FromMatrix(m, algebra.DefaultFloat64(), true)

	for s := 0; s < g.RowCount(); s++ {
		for _, e := range g.Row(s) {
			assert.Equal(t, 1.0, e.Val)
		}
	}
}

func TestGraph_RowMutation(t *testing.T) {
	m := buildMatrix(t)
	g := flexgraph.FromMatrix(m, algebra.DefaultFloat64(), false)

	g.SetRow(0, []dtmc.Entry[float64]{{Col: 2, Val: 1.0}})
	require.Len(t, g.Row(0), 1)
	assert.Equal(t, 2, g.Row(0)[0].Col)

	g.ClearRow(0)
	assert.Empty(t, g.Row(0))
	assert.Len(t, m.Row(0), 2, "the source matrix stays untouched")
}

func TestGraph_HasSelfLoop(t *testing.T) {
	m := buildMatrix(t)
	g := flexgraph.FromMatrix(m, algebra.DefaultFloat64(), false)

	assert.True(t, g.HasSelfLoop(0))
	assert.False(t, g.HasSelfLoop(1))
	assert.False(t, g.HasSelfLoop(2))
}
