package dtmc

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvlmc/algebra"
)

// Matrix is an immutable row-sparse square matrix over V.
// Rows are sorted by column and contain at most one entry per column.
// All derived views (Transpose, Submatrix) are fresh matrices; the
// receiver is never mutated after Build.
type Matrix[V any] struct {
	n       int
	rowPtr  []int
	entries []Entry[V]
}

// RowCount returns the number of rows (and columns).
func (m *Matrix[V]) RowCount() int { return m.n }

// EntryCount returns the number of stored (non-zero) entries.
func (m *Matrix[V]) EntryCount() int { return len(m.entries) }

// Row returns the sorted sparse row of state s.
// The returned slice aliases internal storage and must not be modified.
func (m *Matrix[V]) Row(s int) []Entry[V] {
	return m.entries[m.rowPtr[s]:m.rowPtr[s+1]]
}

// Transpose returns the reversed-edge matrix: entry (s, t, w) becomes
// (t, s, w). Rows of the result are sorted by construction, because the
// counting pass walks sources in ascending order.
func (m *Matrix[V]) Transpose() *Matrix[V] {
	counts := make([]int, m.n+1)
	for _, e := range m.entries {
		counts[e.Col+1]++
	}
	for i := 1; i <= m.n; i++ {
		counts[i] += counts[i-1]
	}

	entries := make([]Entry[V], len(m.entries))
	next := make([]int, m.n)
	copy(next, counts[:m.n])
	for s := 0; s < m.n; s++ {
		for _, e := range m.Row(s) {
			entries[next[e.Col]] = Entry[V]{Col: s, Val: e.Val}
			next[e.Col]++
		}
	}

	return &Matrix[V]{n: m.n, rowPtr: counts, entries: entries}
}

// Submatrix restricts the matrix to the states in keep, re-indexing the
// surviving states into the compacted space [0, keep.Count()).
// Entries leading out of keep are dropped.
func (m *Matrix[V]) Submatrix(keep *bitset.BitSet) *Matrix[V] {
	n2 := int(keep.Count())
	remap := make([]int, m.n)
	for i := range remap {
		remap[i] = -1
	}
	next := 0
	for s, ok := keep.NextSet(0); ok; s, ok = keep.NextSet(s + 1) {
		remap[s] = next
		next++
	}

	rowPtr := make([]int, n2+1)
	var entries []Entry[V]
	row := 0
	for s, ok := keep.NextSet(0); ok; s, ok = keep.NextSet(s + 1) {
		for _, e := range m.Row(int(s)) {
			if remap[e.Col] >= 0 {
				entries = append(entries, Entry[V]{Col: remap[e.Col], Val: e.Val})
			}
		}
		row++
		rowPtr[row] = len(entries)
	}

	return &Matrix[V]{n: n2, rowPtr: rowPtr, entries: entries}
}

// ConstrainedRowSum sums, for every state in rows (ascending order), the
// weights of its entries whose target lies in cols. The result lives in
// the compacted index space of rows; this is the one-step vector of the
// maybe-subgraph when cols is the probability-one set.
func (m *Matrix[V]) ConstrainedRowSum(arith algebra.Arithmetic[V], rows, cols *bitset.BitSet) []V {
	out := make([]V, 0, rows.Count())
	for s, ok := rows.NextSet(0); ok; s, ok = rows.NextSet(s + 1) {
		sum := arith.Zero()
		for _, e := range m.Row(int(s)) {
			if cols.Test(uint(e.Col)) {
				sum = arith.Add(sum, e.Val)
			}
		}
		out = append(out, sum)
	}

	return out
}

// PointwiseProductRowSum computes, per row, the sum over shared columns of
// m(s,t)*other(s,t). Used to fold a transition-reward matrix into a state
// reward vector: expected one-step reward = Σ_t P(s,t)·R(s,t).
func (m *Matrix[V]) PointwiseProductRowSum(arith algebra.Arithmetic[V], other *Matrix[V]) ([]V, error) {
	if other == nil || other.n != m.n {
		return nil, ErrDimensionMismatch
	}

	out := make([]V, m.n)
	for s := 0; s < m.n; s++ {
		sum := arith.Zero()
		a, b := m.Row(s), other.Row(s)
		i, j := 0, 0
		for i < len(a) && j < len(b) {
			switch {
			case a[i].Col < b[j].Col:
				i++
			case a[i].Col > b[j].Col:
				j++
			default:
				sum = arith.Add(sum, arith.Mul(a[i].Val, b[j].Val))
				i++
				j++
			}
		}
		out[s] = arith.Canonicalize(sum)
	}

	return out, nil
}
