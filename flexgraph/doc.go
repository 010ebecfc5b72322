// Package flexgraph provides the mutable adjacency structure state
// elimination works on.
//
// A Graph is built once from an immutable dtmc.Matrix and then rewritten
// in place while states are folded out. Each row is a slice of entries
// sorted by target column with at most one entry per target; elimination
// rebuilds affected rows as fresh slices and swaps them in, so a row
// being read is never the row being written.
//
// Two graphs are kept per query: the forward graph carries the actual
// probabilities, the backward graph mirrors it with unit weights and
// exists purely for predecessor bookkeeping.
package flexgraph
