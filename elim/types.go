package elim

import (
	"errors"
	"fmt"
)

// Sentinel errors for elimination queries. Matched with errors.Is.
var (
	// ErrPrecondition is returned for malformed models or queries: not
	// exactly one initial state, reward query without a reward model,
	// mismatched vector lengths, nil inputs.
	ErrPrecondition = errors.New("elim: precondition violation")

	// ErrDegenerateLoop is returned when a state scheduled for elimination
	// loops to itself with probability one; such a state can never pass
	// its mass on and indicates a malformed input model.
	ErrDegenerateLoop = errors.New("elim: self-loop probability is one")

	// ErrIllConditioned is returned when a conditional probability is
	// requested but the condition has probability zero — a modeling error
	// in the query, not a bug.
	ErrIllConditioned = errors.New("elim: condition has zero probability")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("elim: invalid option supplied")

	// errMissingTransition signals a broken mirror invariant between the
	// forward and backward graphs; it is an internal consistency failure.
	errMissingTransition = errors.New("elim: predecessor has no edge to eliminated state")
)

// Method selects the whole-graph reduction strategy.
type Method int

const (
	// MethodState eliminates every maybe-state flatly in priority order.
	MethodState Method = iota

	// MethodHybrid decomposes into SCCs bounded by MaxSCCSize, folding
	// trivial components immediately and recursing on the rest.
	MethodHybrid
)

// Order selects the elimination-order heuristic. The order never affects
// the result, only intermediate fill-in.
type Order int

const (
	// OrderForward eliminates states by ascending BFS distance from the
	// initial state.
	OrderForward Order = iota

	// OrderForwardReversed is OrderForward descending.
	OrderForwardReversed

	// OrderBackward eliminates by ascending BFS distance, in the
	// transposed graph, from the pseudo-target set (states with nonzero
	// one-step probability).
	OrderBackward

	// OrderBackwardReversed is OrderBackward descending.
	OrderBackwardReversed

	// OrderRandom applies a seeded pseudo-random permutation.
	OrderRandom
)

// Defaults for the configuration surface.
const (
	// DefaultMaxSCCSize bounds the size of SCCs the hybrid driver
	// eliminates without further decomposition.
	DefaultMaxSCCSize = 20

	// DefaultSeed feeds the random elimination order when no explicit
	// seed is configured.
	DefaultSeed int64 = 1
)

// Option configures a Checker via functional arguments. Invalid values
// are recorded and surfaced as ErrOptionViolation at construction.
type Option func(*Options)

// Options holds the elimination configuration surface.
type Options struct {
	// Method selects flat or hybrid reduction.
	Method Method

	// Order selects the elimination-order heuristic.
	Order Order

	// MaxSCCSize bounds direct elimination in the hybrid driver.
	MaxSCCSize int

	// EntryStatesLast defers SCC entry states to a queue consumed once at
	// the top level instead of eliminating them as recursion unwinds.
	EntryStatesLast bool

	// Seed drives OrderRandom; identical seeds give identical orders.
	Seed int64

	// OnEliminated, if set, is invoked after each elimination with the
	// state index, the count eliminated so far, and the subgraph total.
	OnEliminated func(state, eliminated, total int)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns the documented defaults: MethodState,
// OrderForward, DefaultMaxSCCSize, entry states eliminated in recursion
// order, DefaultSeed, no progress hook.
func DefaultOptions() Options {
	return Options{
		Method:     MethodState,
		Order:      OrderForward,
		MaxSCCSize: DefaultMaxSCCSize,
		Seed:       DefaultSeed,
	}
}

// WithMethod selects the reduction strategy.
func WithMethod(m Method) Option {
	return func(o *Options) {
		if m != MethodState && m != MethodHybrid {
			o.err = fmt.Errorf("%w: unknown method %d", ErrOptionViolation, m)
			return
		}
		o.Method = m
	}
}

// WithOrder selects the elimination-order heuristic.
func WithOrder(ord Order) Option {
	return func(o *Options) {
		if ord < OrderForward || ord > OrderRandom {
			o.err = fmt.Errorf("%w: unknown order %d", ErrOptionViolation, ord)
			return
		}
		o.Order = ord
	}
}

// WithMaxSCCSize bounds direct elimination in the hybrid driver.
// n must be positive.
func WithMaxSCCSize(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxSCCSize must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSCCSize = n
	}
}

// WithEntryStatesLast defers SCC entry states to the top-level queue.
func WithEntryStatesLast(last bool) Option {
	return func(o *Options) { o.EntryStatesLast = last }
}

// WithSeed fixes the permutation used by OrderRandom. Required for
// reproducible runs; there is no unseeded global randomness.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithOnEliminated registers a progress hook invoked after every single
// state elimination.
func WithOnEliminated(fn func(state, eliminated, total int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEliminated = fn
		}
	}
}

// Result pairs the originating initial state with the computed scalar.
// Infinite is set only by reward queries whose expected reward diverges;
// Value is then left at the arithmetic's zero.
type Result[V any] struct {
	State    int
	Value    V
	Infinite bool
}
