// Package algebra defines the closed value algebra the elimination engine
// is generic over, together with its two standard instances.
//
// What:
//
//   - Arithmetic[V]: additive/multiplicative identities, the four ring
//     operations, zero/one predicates, and an idempotent Canonicalize
//     (simplification) step applied after compound operations.
//   - Float64: IEEE float64 with a per-instance tolerance for the
//     zero/one predicates. Canonicalization is the identity.
//   - Rational: exact arithmetic over *big.Rat with exact predicates.
//     All operations are non-mutating; inputs are never aliased.
//
// Why:
//
//   - State elimination is the same algorithm whether weights are floats
//     or exact rationals; only equality testing and simplification differ.
//     Keeping the comparator inside the arithmetic instance makes the
//     tolerance a per-query decision instead of a process-wide constant.
//
// Errors: none. Constructors panic on nonsensical parameters
// (programmer error), mirroring option validation in sibling packages.
package algebra
