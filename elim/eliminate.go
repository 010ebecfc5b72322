package elim

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvlmc/algebra"
	"github.com/katalvlaran/lvlmc/dtmc"
	"github.com/katalvlaran/lvlmc/flexgraph"
)

// mode tags the computation the eliminator threads through each step:
// probability mode maintains the one-step vector, reward mode the reward
// vector. The branch is taken once at construction, not per call.
type mode int

const (
	modeProbability mode = iota
	modeReward
)

// Eliminator owns the mutable state of one in-flight reduction: the
// forward and backward flexible graphs (always mutual mirrors between
// eliminations) and the value vectors. Not safe for concurrent use.
type Eliminator[V any] struct {
	arith    algebra.Arithmetic[V]
	forward  *flexgraph.Graph[V]
	backward *flexgraph.Graph[V]
	oneStep  []V
	rewards  []V
	mode     mode

	total        int
	eliminated   int
	onEliminated func(state, eliminated, total int)
}

// NewProbabilityEliminator builds an eliminator in probability mode.
// oneStep must hold one entry per graph row; it is updated in place.
func NewProbabilityEliminator[V any](arith algebra.Arithmetic[V], forward, backward *flexgraph.Graph[V], oneStep []V) (*Eliminator[V], error) {
	if err := validateGraphs(forward, backward, len(oneStep)); err != nil {
		return nil, err
	}

	return &Eliminator[V]{
		arith:    arith,
		forward:  forward,
		backward: backward,
		oneStep:  oneStep,
		mode:     modeProbability,
		total:    forward.RowCount(),
	}, nil
}

// NewRewardEliminator builds an eliminator in reward mode. The one-step
// vector is still carried (the ordering heuristics read it) but only the
// reward vector is updated during elimination.
func NewRewardEliminator[V any](arith algebra.Arithmetic[V], forward, backward *flexgraph.Graph[V], oneStep, rewards []V) (*Eliminator[V], error) {
	if err := validateGraphs(forward, backward, len(oneStep)); err != nil {
		return nil, err
	}
	if len(rewards) != forward.RowCount() {
		return nil, fmt.Errorf("%w: reward vector length %d for %d states",
			ErrPrecondition, len(rewards), forward.RowCount())
	}

	return &Eliminator[V]{
		arith:    arith,
		forward:  forward,
		backward: backward,
		oneStep:  oneStep,
		rewards:  rewards,
		mode:     modeReward,
		total:    forward.RowCount(),
	}, nil
}

func validateGraphs[V any](forward, backward *flexgraph.Graph[V], vecLen int) error {
	if forward == nil || backward == nil {
		return fmt.Errorf("%w: nil graph", ErrPrecondition)
	}
	if forward.RowCount() != backward.RowCount() {
		return fmt.Errorf("%w: forward/backward row counts differ (%d vs %d)",
			ErrPrecondition, forward.RowCount(), backward.RowCount())
	}
	if vecLen != forward.RowCount() {
		return fmt.Errorf("%w: one-step vector length %d for %d states",
			ErrPrecondition, vecLen, forward.RowCount())
	}

	return nil
}

// Eliminate removes state from the graph, redistributing its probability
// mass (or reward) onto all predecessors and clearing both of its rows.
func (e *Eliminator[V]) Eliminate(state int) error {
	return e.eliminate(state, true, nil)
}

// EliminateConstrained is Eliminate with explicit control: keepForward
// preserves the state's outgoing row after elimination, and a non-nil
// constraint restricts predecessor relinking to members of the set.
func (e *Eliminator[V]) EliminateConstrained(state int, keepForward bool, constraint *bitset.BitSet) error {
	return e.eliminate(state, !keepForward, constraint)
}

// eliminate is the core primitive. With removeForward unset the state's
// outgoing row survives for later inspection (initial-state and chain
// eliminations). A non-nil constraint restricts predecessor relinking to
// members of the set; excluded predecessors keep their edge to state and
// are recorded in its incoming row with weight one.
func (e *Eliminator[V]) eliminate(state int, removeForward bool, constraint *bitset.BitSet) error {
	a := e.arith
	if state < 0 || state >= e.forward.RowCount() {
		return fmt.Errorf("%w: state %d out of range", ErrPrecondition, state)
	}

	// Step 1: self-loop extraction. The loop entry is recorded and
	// removed; it is never relinked.
	successors := e.forward.Row(state)
	hasLoop := false
	var loopScale V
	if i := findColumn(successors, state); i >= 0 {
		p := successors[i].Val
		if a.IsOne(p) {
			return fmt.Errorf("state %d: %w", state, ErrDegenerateLoop)
		}
		hasLoop = true

		// Step 2: rescale the remaining outgoing mass by 1/(1-p).
		loopScale = a.Canonicalize(a.Div(a.One(), a.Sub(a.One(), p)))
		scaled := make([]dtmc.Entry[V], 0, len(successors)-1)
		for _, en := range successors {
			if en.Col == state {
				continue
			}
			scaled = append(scaled, dtmc.Entry[V]{Col: en.Col, Val: a.Canonicalize(a.Mul(en.Val, loopScale))})
		}
		successors = scaled
		e.forward.SetRow(state, scaled)
		if e.mode == modeProbability {
			e.oneStep[state] = a.Canonicalize(a.Mul(e.oneStep[state], loopScale))
		}
	}

	// Step 3: predecessor relinking. Each eligible predecessor's row is
	// rebuilt by a pure merge-join and swapped in whole; the row being
	// read is never the row being written.
	preds := e.backward.Row(state)
	var retained []dtmc.Entry[V]
	for _, pe := range preds {
		pred := pe.Col
		if pred == state {
			continue
		}
		if constraint != nil && !constraint.Test(uint(pred)) {
			retained = append(retained, dtmc.Entry[V]{Col: pred, Val: a.One()})
			continue
		}

		predRow := e.forward.Row(pred)
		i := findColumn(predRow, state)
		if i < 0 {
			return fmt.Errorf("state %d, predecessor %d: %w", state, pred, errMissingTransition)
		}
		w := predRow[i].Val

		e.forward.SetRow(pred, mergeSuccessors(a, predRow, successors, w, state))

		if e.mode == modeProbability {
			e.oneStep[pred] = a.Add(e.oneStep[pred], a.Canonicalize(a.Mul(w, e.oneStep[state])))
		} else {
			r := e.rewards[state]
			if hasLoop {
				r = a.Mul(loopScale, r)
			}
			e.rewards[pred] = a.Add(e.rewards[pred], a.Canonicalize(a.Mul(w, r)))
		}
	}

	// Step 4: successor relinking. Every successor inherits the state's
	// former predecessors (minus the state itself, minus predecessors
	// excluded by the constraint).
	for _, se := range successors {
		in := e.backward.Row(se.Col)
		e.backward.SetRow(se.Col, mergePredecessors(in, preds, state, removeForward, constraint))
	}

	// Step 5: cleanup.
	if removeForward {
		e.forward.ClearRow(state)
	}
	if constraint == nil {
		e.backward.ClearRow(state)
	} else {
		e.backward.SetRow(state, retained)
	}

	e.eliminated++
	if e.onEliminated != nil {
		e.onEliminated(state, e.eliminated, e.total)
	}

	return nil
}

// mergeSuccessors combines predRow with succRow scaled by factor,
// producing a fresh sorted row. The drop column (the state being
// eliminated) is excluded; succRow is assumed not to contain it.
// Shared targets combine as pred→t + factor·state→t.
func mergeSuccessors[V any](a algebra.Arithmetic[V], predRow, succRow []dtmc.Entry[V], factor V, drop int) []dtmc.Entry[V] {
	out := make([]dtmc.Entry[V], 0, len(predRow)+len(succRow))
	i, j := 0, 0
	for i < len(predRow) && j < len(succRow) {
		if predRow[i].Col == drop {
			i++
			continue
		}
		switch {
		case predRow[i].Col < succRow[j].Col:
			out = append(out, predRow[i])
			i++
		case predRow[i].Col > succRow[j].Col:
			out = append(out, dtmc.Entry[V]{
				Col: succRow[j].Col,
				Val: a.Canonicalize(a.Mul(factor, succRow[j].Val)),
			})
			j++
		default:
			out = append(out, dtmc.Entry[V]{
				Col: predRow[i].Col,
				Val: a.Canonicalize(a.Add(predRow[i].Val, a.Canonicalize(a.Mul(factor, succRow[j].Val)))),
			})
			i++
			j++
		}
	}
	for ; i < len(predRow); i++ {
		if predRow[i].Col != drop {
			out = append(out, predRow[i])
		}
	}
	for ; j < len(succRow); j++ {
		out = append(out, dtmc.Entry[V]{
			Col: succRow[j].Col,
			Val: a.Canonicalize(a.Mul(factor, succRow[j].Val)),
		})
	}

	return out
}

// mergePredecessors splices preds into a successor's incoming row as a
// sorted set union, keeping existing entries on collisions. The state
// being eliminated is dropped from the incoming row only when its forward
// row is being removed; constrained-out predecessors are never spliced.
func mergePredecessors[V any](in, preds []dtmc.Entry[V], state int, removeForward bool, constraint *bitset.BitSet) []dtmc.Entry[V] {
	keep := func(col int) bool {
		if col == state {
			return false
		}

		return constraint == nil || constraint.Test(uint(col))
	}

	out := make([]dtmc.Entry[V], 0, len(in)+len(preds))
	i, j := 0, 0
	for i < len(in) && j < len(preds) {
		if removeForward && in[i].Col == state {
			i++
			continue
		}
		if !keep(preds[j].Col) {
			j++
			continue
		}
		switch {
		case in[i].Col < preds[j].Col:
			out = append(out, in[i])
			i++
		case in[i].Col > preds[j].Col:
			out = append(out, preds[j])
			j++
		default:
			out = append(out, in[i])
			i++
			j++
		}
	}
	for ; i < len(in); i++ {
		if !(removeForward && in[i].Col == state) {
			out = append(out, in[i])
		}
	}
	for ; j < len(preds); j++ {
		if keep(preds[j].Col) {
			out = append(out, preds[j])
		}
	}

	return out
}

// findColumn locates col in a sorted row, or returns -1.
func findColumn[V any](row []dtmc.Entry[V], col int) int {
	i := sort.Search(len(row), func(i int) bool { return row[i].Col >= col })
	if i < len(row) && row[i].Col == col {
		return i
	}

	return -1
}
