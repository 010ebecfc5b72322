package dtmc_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlmc/algebra"
	"github.com/katalvlaran/lvlmc/dtmc"
)

// chain builds the three-state line 0 -0.5-> 1 -1.0-> 2 with a 0.5
// self-loop on 0 and an absorbing loop on 2.
func chain(t *testing.T) *dtmc.Matrix[float64] {
	t.Helper()
	b := dtmc.NewBuilder[float64](3, algebra.DefaultFloat64())
	require.NoError(t, b.Add(0, 0, 0.5))
	require.NoError(t, b.Add(0, 1, 0.5))
	require.NoError(t, b.Add(1, 2, 1.0))
	require.NoError(t, b.Add(2, 2, 1.0))

	return b.Build()
}

func TestBuilder_SortsAndSumsDuplicates(t *testing.T) {
	b := dtmc.NewBuilder[float64](2, algebra.DefaultFloat64())
	require.NoError(t, b.Add(0, 1, 0.25))
	require.NoError(t, b.Add(0, 0, 0.5))
	require.NoError(t, b.Add(0, 1, 0.25))

	m := b.Build()
	row := m.Row(0)
	require.Len(t, row, 2)
	assert.Equal(t, 0, row[0].Col)
	assert.Equal(t, 0.5, row[0].Val)
	assert.Equal(t, 1, row[1].Col)
	assert.Equal(t, 0.5, row[1].Val, "duplicate entries sum")
}

func TestBuilder_DropsZeroEntries(t *testing.T) {
	b := dtmc.NewBuilder[float64](2, algebra.DefaultFloat64())
	require.NoError(t, b.Add(0, 1, 0.0))
	require.NoError(t, b.Add(1, 0, 1.0))

	m := b.Build()
	assert.Empty(t, m.Row(0))
	assert.Equal(t, 1, m.EntryCount())
}

func TestBuilder_RejectsOutOfRange(t *testing.T) {
	b := dtmc.NewBuilder[float64](2, algebra.DefaultFloat64())

	assert.ErrorIs(t, b.Add(2, 0, 1.0), dtmc.ErrIndexOutOfRange)
	assert.ErrorIs(t, b.Add(0, -1, 1.0), dtmc.ErrIndexOutOfRange)
}

func TestMatrix_Transpose(t *testing.T) {
	m := chain(t)
	tr := m.Transpose()

	require.Equal(t, 3, tr.RowCount())
	require.Len(t, tr.Row(1), 1)
	assert.Equal(t, 0, tr.Row(1)[0].Col, "edge 0->1 reverses to 1<-0")
	assert.Equal(t, 0.5, tr.Row(1)[0].Val)

	// Column 2 collects both 1->2 and the self-loop 2->2, sorted.
	in2 := tr.Row(2)
	require.Len(t, in2, 2)
	assert.Equal(t, 1, in2[0].Col)
	assert.Equal(t, 2, in2[1].Col)
}

func TestMatrix_SubmatrixRemapsAndDrops(t *testing.T) {
	m := chain(t)
	keep := bitset.New(3)
	keep.Set(0)
	keep.Set(1)

	sub := m.Submatrix(keep)
	require.Equal(t, 2, sub.RowCount())

	// Row 0 keeps the self-loop and the edge to the remapped state 1.
	row0 := sub.Row(0)
	require.Len(t, row0, 2)
	assert.Equal(t, 0, row0[0].Col)
	assert.Equal(t, 1, row0[1].Col)

	// 1->2 leaves the kept set and disappears.
	assert.Empty(t, sub.Row(1))
}

func TestMatrix_ConstrainedRowSum(t *testing.T) {
	m := chain(t)
	a := algebra.DefaultFloat64()

	rows := bitset.New(3)
	rows.Set(0)
	rows.Set(1)
	cols := bitset.New(3)
	cols.Set(2)

	sums := m.ConstrainedRowSum(a, rows, cols)
	require.Len(t, sums, 2, "one entry per selected row, compacted")
	assert.Equal(t, 0.0, sums[0], "state 0 has no direct edge into the column set")
	assert.Equal(t, 1.0, sums[1])
}

func TestMatrix_PointwiseProductRowSum(t *testing.T) {
	a := algebra.DefaultFloat64()
	m := chain(t)

	rb := dtmc.NewBuilder[float64](3, a)
	require.NoError(t, rb.Add(0, 1, 4.0))
	require.NoError(t, rb.Add(1, 2, 2.0))
	rewards := rb.Build()

	out, err := m.PointwiseProductRowSum(a, rewards)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 2.0, out[0], 1e-12, "0.5 * 4.0 on the edge 0->1")
	assert.InDelta(t, 2.0, out[1], 1e-12)
	assert.Equal(t, 0.0, out[2])
}

func TestMatrix_PointwiseProductRowSum_ShapeMismatch(t *testing.T) {
	a := algebra.DefaultFloat64()
	m := chain(t)
	other := dtmc.NewBuilder[float64](2, a).Build()

	_, err := m.PointwiseProductRowSum(a, other)
	assert.ErrorIs(t, err, dtmc.ErrDimensionMismatch)
}

func TestCompactIndex(t *testing.T) {
	keep := bitset.New(5)
	keep.Set(1)
	keep.Set(3)
	keep.Set(4)

	assert.Equal(t, 0, dtmc.CompactIndex(keep, 1))
	assert.Equal(t, 1, dtmc.CompactIndex(keep, 3))
	assert.Equal(t, 2, dtmc.CompactIndex(keep, 4))
	assert.Equal(t, -1, dtmc.CompactIndex(keep, 2), "dropped states have no compact index")
}

func TestCompactSet(t *testing.T) {
	keep := bitset.New(5)
	keep.Set(1)
	keep.Set(3)
	states := bitset.New(5)
	states.Set(0)
	states.Set(3)

	compact := dtmc.CompactSet(keep, states)
	assert.False(t, compact.Test(0))
	assert.True(t, compact.Test(1), "state 3 remaps to compact index 1")
	assert.Equal(t, uint(1), compact.Count())
}

func TestModel_LabelsAndRewards(t *testing.T) {
	m := chain(t)
	init := bitset.New(3)
	init.Set(0)
	model := dtmc.NewModel(m, init)

	target := bitset.New(3)
	target.Set(2)
	model.AddLabel("done", target)

	got, err := model.StatesWithLabel("done")
	require.NoError(t, err)
	assert.True(t, got.Test(2))

	_, err = model.StatesWithLabel("missing")
	assert.ErrorIs(t, err, dtmc.ErrUnknownLabel)

	assert.False(t, model.HasRewards())
	assert.ErrorIs(t, model.SetStateRewards([]float64{1}), dtmc.ErrDimensionMismatch)
	require.NoError(t, model.SetStateRewards([]float64{1, 2, 0}))
	assert.True(t, model.HasRewards())
}
