// Package elim computes exact reachability probabilities, expected
// cumulative rewards, and conditional reachability probabilities on a
// discrete-time Markov chain by state elimination.
//
// What:
//
//   - Eliminator: the single-state elimination primitive. Removing a state
//     extracts its self-loop, rescales the remaining outgoing mass by
//     1/(1-p), folds the row into every predecessor with a sorted
//     merge-join, and keeps the forward/backward adjacency mirrors
//     consistent. Probability mode threads a one-step vector; reward mode
//     threads a reward vector instead.
//   - Driver: whole-graph reduction, either flat in priority order
//     (MethodState) or by recursive SCC decomposition bounded by a size
//     threshold (MethodHybrid), optionally deferring entry states to a
//     queue consumed last.
//   - Checker: the query entry points — UntilProbability,
//     EventuallyProbability, ReachabilityReward, ConditionalProbability —
//     which carve the maybe-subgraph, run the driver, eliminate the
//     initial state last, and read the scalar result.
//
// The engine is generic over the algebra.Arithmetic value type; results
// are exact whenever the arithmetic is.
//
// Concurrency: none. A query exclusively owns its graphs and vectors;
// nothing here is safe for concurrent use on shared instances.
//
// Errors:
//
//   - ErrPrecondition     malformed query or model (fatal, no retry)
//   - ErrDegenerateLoop   eliminating a state whose self-loop mass is one
//   - ErrIllConditioned   conditional probability over a zero-probability
//     condition
//   - ErrOptionViolation  invalid functional option
package elim
