// Package scc decomposes a subgraph of a sparse transition matrix into
// strongly connected components using Tarjan's algorithm.
//
// The decomposition is restricted to a caller-supplied state subset:
// states outside it, and edges touching them, are invisible. Components
// are reported in order of root completion (reverse topological order of
// the condensation), with states ascending inside each component, so the
// output is deterministic for a fixed input.
//
// A component is trivial when it consists of a single state without a
// self-loop inside the subset; the hybrid elimination driver folds those
// out immediately and only recurses on the rest.
//
// Complexity: O(V + E) time, O(V) space.
package scc
