package flexgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/lvlmc/algebra"
	"github.com/katalvlaran/lvlmc/dtmc"
)

// Graph is a mutable row-sparse adjacency structure.
// Rows are sorted by column; mutation happens through SetRow/ClearRow so
// the sorted/deduplicated invariant is the caller's to maintain.
type Graph[V any] struct {
	rows [][]dtmc.Entry[V]
}

// FromMatrix converts an immutable matrix into a flexible graph.
// Entries whose weight the arithmetic considers zero are dropped.
// With unitWeights set, every retained entry gets weight one — used for
// the backward bookkeeping graph, where only structure matters.
func FromMatrix[V any](m *dtmc.Matrix[V], arith algebra.Arithmetic[V], unitWeights bool) *Graph[V] {
	g := &Graph[V]{rows: make([][]dtmc.Entry[V], m.RowCount())}
	for s := 0; s < m.RowCount(); s++ {
		src := m.Row(s)
		row := make([]dtmc.Entry[V], 0, len(src))
		for _, e := range src {
			if arith.IsZero(e.Val) {
				continue
			}
			if unitWeights {
				row = append(row, dtmc.Entry[V]{Col: e.Col, Val: arith.One()})
			} else {
				row = append(row, e)
			}
		}
		g.rows[s] = row
	}

	return g
}

// RowCount returns the number of rows.
func (g *Graph[V]) RowCount() int { return len(g.rows) }

// Row returns the live row of state s. The slice aliases internal storage;
// callers rebuilding a row must write through SetRow, never append in place.
func (g *Graph[V]) Row(s int) []dtmc.Entry[V] { return g.rows[s] }

// SetRow replaces the row of state s.
func (g *Graph[V]) SetRow(s int, row []dtmc.Entry[V]) { g.rows[s] = row }

// ClearRow empties the row of state s, releasing its storage.
func (g *Graph[V]) ClearRow(s int) { g.rows[s] = nil }

// HasSelfLoop reports whether state s carries an edge to itself.
// Θ(log deg) via binary search on the sorted row.
func (g *Graph[V]) HasSelfLoop(s int) bool {
	row := g.rows[s]
	i := sort.Search(len(row), func(i int) bool { return row[i].Col >= s })

	return i < len(row) && row[i].Col == s
}

// String renders the adjacency lists, one row per line. Debug aid only.
func (g *Graph[V]) String() string {
	var b strings.Builder
	for s, row := range g.rows {
		fmt.Fprintf(&b, "%d -", s)
		for _, e := range row {
			fmt.Fprintf(&b, " (%d, %v)", e.Col, e.Val)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
