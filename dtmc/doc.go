// Package dtmc provides the sparse representation of a discrete-time
// Markov chain and the read-only matrix views consumed by the
// state-elimination engine.
//
// What:
//
//   - Matrix[V]: an immutable row-sparse (CSR) transition matrix with
//     sorted rows. Supports transposition, restriction to a state subset
//     with compacted indices, constrained row sums (the one-step vector),
//     and pointwise-product row sums (transition-reward folding).
//   - Builder[V]: deterministic construction; duplicate (row, col) entries
//     are summed, exact-zero entries are dropped.
//   - Model[V]: transition matrix plus initial states, labeling, and
//     optional state/transition reward structures.
//
// Determinism:
//
//   - Row entries are kept sorted by column; iteration order is stable.
//   - Submatrix index compaction follows ascending state order.
//
// Errors:
//
//   - ErrIndexOutOfRange    a state index is outside [0, n)
//   - ErrDimensionMismatch  vectors/matrices of incompatible shape
//   - ErrUnknownLabel       a label was referenced but never defined
package dtmc
