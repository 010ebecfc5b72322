package dtmc

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlmc/algebra"
)

// Builder accumulates entries of an n×n sparse matrix in arbitrary order.
// Build produces sorted, deduplicated rows: parallel entries on the same
// (row, col) pair are summed, and entries that sum to exact zero (per the
// arithmetic's comparator) are dropped.
type Builder[V any] struct {
	n     int
	arith algebra.Arithmetic[V]
	rows  [][]Entry[V]
}

// NewBuilder returns a Builder for an n×n matrix.
func NewBuilder[V any](n int, arith algebra.Arithmetic[V]) *Builder[V] {
	return &Builder[V]{n: n, arith: arith, rows: make([][]Entry[V], n)}
}

// Add records the entry (row, col, v). Returns ErrIndexOutOfRange for
// indices outside [0, n).
func (b *Builder[V]) Add(row, col int, v V) error {
	if row < 0 || row >= b.n || col < 0 || col >= b.n {
		return fmt.Errorf("dtmc: Add(%d, %d): %w", row, col, ErrIndexOutOfRange)
	}
	b.rows[row] = append(b.rows[row], Entry[V]{Col: col, Val: v})

	return nil
}

// Build finalizes the matrix. The Builder may not be reused afterwards.
func (b *Builder[V]) Build() *Matrix[V] {
	rowPtr := make([]int, b.n+1)
	var entries []Entry[V]
	for s := 0; s < b.n; s++ {
		row := b.rows[s]
		sort.SliceStable(row, func(i, j int) bool { return row[i].Col < row[j].Col })

		// Merge duplicates and drop zero-weight entries.
		for i := 0; i < len(row); {
			sum := row[i].Val
			j := i + 1
			for j < len(row) && row[j].Col == row[i].Col {
				sum = b.arith.Add(sum, row[j].Val)
				j++
			}
			if !b.arith.IsZero(sum) {
				entries = append(entries, Entry[V]{Col: row[i].Col, Val: sum})
			}
			i = j
		}
		rowPtr[s+1] = len(entries)
	}

	return &Matrix[V]{n: b.n, rowPtr: rowPtr, entries: entries}
}
