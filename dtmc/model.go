package dtmc

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Model bundles a transition matrix with the designated initial states,
// the atomic-proposition labeling, and optional reward structures.
// Reward structures are optional; the elimination checker rejects reward
// queries against models that carry neither.
type Model[V any] struct {
	transitions       *Matrix[V]
	initial           *bitset.BitSet
	labels            map[string]*bitset.BitSet
	stateRewards      []V
	transitionRewards *Matrix[V]
}

// NewModel creates a model over the given transition matrix and initial
// state set. The initial set is not copied; callers hand over ownership.
func NewModel[V any](transitions *Matrix[V], initial *bitset.BitSet) *Model[V] {
	return &Model[V]{
		transitions: transitions,
		initial:     initial,
		labels:      make(map[string]*bitset.BitSet),
	}
}

// Transitions returns the transition matrix.
func (m *Model[V]) Transitions() *Matrix[V] { return m.transitions }

// Initial returns the initial state set.
func (m *Model[V]) Initial() *bitset.BitSet { return m.initial }

// StateCount returns the number of states.
func (m *Model[V]) StateCount() int { return m.transitions.RowCount() }

// AddLabel associates name with the given state set, replacing any
// previous association.
func (m *Model[V]) AddLabel(name string, states *bitset.BitSet) {
	m.labels[name] = states
}

// StatesWithLabel resolves an atomic label to its satisfying state set.
// Returns ErrUnknownLabel if the model never defined the label.
func (m *Model[V]) StatesWithLabel(name string) (*bitset.BitSet, error) {
	states, ok := m.labels[name]
	if !ok {
		return nil, fmt.Errorf("dtmc: label %q: %w", name, ErrUnknownLabel)
	}

	return states, nil
}

// SetStateRewards attaches a per-state reward vector.
// Returns ErrDimensionMismatch if its length differs from the state count.
func (m *Model[V]) SetStateRewards(rewards []V) error {
	if len(rewards) != m.StateCount() {
		return fmt.Errorf("dtmc: state rewards length %d for %d states: %w",
			len(rewards), m.StateCount(), ErrDimensionMismatch)
	}
	m.stateRewards = rewards

	return nil
}

// SetTransitionRewards attaches a per-transition reward matrix.
// Returns ErrDimensionMismatch on a shape mismatch.
func (m *Model[V]) SetTransitionRewards(rewards *Matrix[V]) error {
	if rewards == nil || rewards.RowCount() != m.StateCount() {
		return fmt.Errorf("dtmc: transition reward matrix shape: %w", ErrDimensionMismatch)
	}
	m.transitionRewards = rewards

	return nil
}

// Validate checks the structural invariants: transitions and initial set
// present, initial states within range, and any attached reward structure
// matching the state count.
func (m *Model[V]) Validate() error {
	if m.transitions == nil || m.initial == nil {
		return fmt.Errorf("dtmc: model missing transitions or initial set: %w", ErrDimensionMismatch)
	}
	n := m.StateCount()
	if s, ok := m.initial.NextSet(uint(n)); ok {
		return fmt.Errorf("dtmc: initial state %d of %d: %w", s, n, ErrIndexOutOfRange)
	}
	if m.stateRewards != nil && len(m.stateRewards) != n {
		return fmt.Errorf("dtmc: state rewards length %d for %d states: %w",
			len(m.stateRewards), n, ErrDimensionMismatch)
	}
	if m.transitionRewards != nil && m.transitionRewards.RowCount() != n {
		return fmt.Errorf("dtmc: transition reward matrix shape: %w", ErrDimensionMismatch)
	}

	return nil
}

// StateRewards returns the state reward vector, or nil if absent.
func (m *Model[V]) StateRewards() []V { return m.stateRewards }

// TransitionRewards returns the transition reward matrix, or nil if absent.
func (m *Model[V]) TransitionRewards() *Matrix[V] { return m.transitionRewards }

// HasRewards reports whether any reward structure is attached.
func (m *Model[V]) HasRewards() bool {
	return m.stateRewards != nil || m.transitionRewards != nil
}
