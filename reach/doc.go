// Package reach implements the qualitative graph analyses that precede
// state elimination: BFS hop distances, constrained forward reachability,
// backward "probability greater zero" closures, and the 0/1-probability
// partition for until formulas over a discrete-time Markov chain.
//
// All functions are pure breadth-first traversals over the sparse
// transition structure; weights are never inspected beyond presence (the
// matrix builder already dropped zero entries).
//
// Conventions:
//
//   - Backward analyses take the transposed transition matrix; callers
//     transpose once and reuse it.
//   - All state sets are fixed-width bitsets over [0, n); results are
//     freshly allocated and never alias the inputs.
//
// Complexity: every routine is O(V + E) time, O(V) space.
package reach
