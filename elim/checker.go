package elim

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvlmc/algebra"
	"github.com/katalvlaran/lvlmc/dtmc"
	"github.com/katalvlaran/lvlmc/flexgraph"
	"github.com/katalvlaran/lvlmc/reach"
)

// Checker answers reachability queries on one model by state elimination.
// Each query builds its own working copies, so a Checker may serve any
// number of queries; it is not safe for concurrent use only because the
// progress hook is shared.
type Checker[V any] struct {
	model   *dtmc.Model[V]
	arith   algebra.Arithmetic[V]
	opts    Options
	initial int
}

// NewChecker validates the model (exactly one initial state) and the
// options, and binds them for subsequent queries.
func NewChecker[V any](model *dtmc.Model[V], arith algebra.Arithmetic[V], opts ...Option) (*Checker[V], error) {
	if model == nil {
		return nil, fmt.Errorf("%w: nil model", ErrPrecondition)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if model.Initial() == nil || model.Initial().Count() != 1 {
		return nil, fmt.Errorf("%w: model must have exactly one initial state", ErrPrecondition)
	}
	init, _ := model.Initial().NextSet(0)

	return &Checker[V]{model: model, arith: arith, opts: o, initial: int(init)}, nil
}

// UntilProbability computes the probability of reaching a psi state
// along phi states only, from the initial state.
func (c *Checker[V]) UntilProbability(phi, psi *bitset.BitSet) (Result[V], error) {
	a := c.arith
	res := Result[V]{State: c.initial, Value: a.Zero()}
	if phi == nil || psi == nil {
		return res, fmt.Errorf("%w: nil state set", ErrPrecondition)
	}

	trans := c.model.Transitions()
	backward := trans.Transpose()

	// Qualitative precomputation settles every state outside the maybe
	// set without touching arithmetic.
	prob0, prob1 := reach.Prob01(backward, phi, psi)
	if !prob0.Test(uint(c.initial)) && prob1.Test(uint(c.initial)) {
		res.Value = a.One()
		return res, nil
	}
	maybe := prob0.Union(prob1).Complement()
	if !maybe.Test(uint(c.initial)) {
		return res, nil // initial has probability zero
	}

	reachable := reach.Reachable(trans, c.model.Initial(), maybe, prob1)
	maybe.InPlaceIntersection(reachable)

	oneStep := trans.ConstrainedRowSum(a, maybe, prob1)
	sub := trans.Submatrix(maybe)
	subT := sub.Transpose()
	newInitial := dtmc.CompactIndex(maybe, c.initial)

	v, err := c.reduce(sub, subT, newInitial, oneStep, nil)
	if err != nil {
		return res, err
	}
	res.Value = v

	return res, nil
}

// EventuallyProbability computes the unconstrained probability of
// reaching a psi state from the initial state.
func (c *Checker[V]) EventuallyProbability(psi *bitset.BitSet) (Result[V], error) {
	return c.UntilProbability(allSet(c.model.StateCount()), psi)
}

// ReachabilityReward computes the expected reward accumulated until a
// psi state is first reached. States that reach psi with probability
// below one yield an infinite expectation, reported via Result.Infinite.
func (c *Checker[V]) ReachabilityReward(psi *bitset.BitSet) (Result[V], error) {
	a := c.arith
	res := Result[V]{State: c.initial, Value: a.Zero()}
	if psi == nil {
		return res, fmt.Errorf("%w: nil state set", ErrPrecondition)
	}
	if !c.model.HasRewards() {
		return res, fmt.Errorf("%w: model carries no reward structure", ErrPrecondition)
	}

	trans := c.model.Transitions()
	n := trans.RowCount()
	backward := trans.Transpose()

	prob1 := reach.Prob1(backward, allSet(n), psi)
	infinity := prob1.Complement()
	if infinity.Test(uint(c.initial)) {
		res.Infinite = true
		return res, nil
	}
	if psi.Test(uint(c.initial)) {
		return res, nil // target reached before any reward accrues
	}

	maybe := psi.Union(infinity).Complement()
	reachable := reach.Reachable(trans, c.model.Initial(), maybe, psi)
	maybe.InPlaceIntersection(reachable)

	oneStep := trans.ConstrainedRowSum(a, maybe, psi)
	sub := trans.Submatrix(maybe)
	subT := sub.Transpose()
	newInitial := dtmc.CompactIndex(maybe, c.initial)

	rewards, err := c.compactRewards(maybe)
	if err != nil {
		return res, err
	}

	v, err := c.reduce(sub, subT, newInitial, oneStep, rewards)
	if err != nil {
		return res, err
	}
	res.Value = v

	return res, nil
}

// compactRewards projects the model's reward structure onto the kept
// states, folding transition rewards into expected per-state values.
func (c *Checker[V]) compactRewards(keep *bitset.BitSet) ([]V, error) {
	a := c.arith
	trans := c.model.Transitions()

	var pointwise []V
	if tr := c.model.TransitionRewards(); tr != nil {
		var err error
		pointwise, err = trans.PointwiseProductRowSum(a, tr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPrecondition, err)
		}
	}
	sr := c.model.StateRewards()

	out := make([]V, 0, keep.Count())
	for s, ok := keep.NextSet(0); ok; s, ok = keep.NextSet(s + 1) {
		r := a.Zero()
		if pointwise != nil {
			r = a.Add(r, pointwise[s])
		}
		if sr != nil {
			r = a.Add(r, sr[s])
		}
		out = append(out, r)
	}

	return out, nil
}

// reduce eliminates every state of the compacted subsystem except the
// initial one, then resolves the initial state itself: in probability
// mode by a final elimination, in reward mode by folding a residual
// self-loop directly into its reward.
func (c *Checker[V]) reduce(sub, subT *dtmc.Matrix[V], initial int, oneStep, rewards []V) (V, error) {
	a := c.arith
	n := sub.RowCount()

	initialSet := bitset.New(uint(n))
	initialSet.Set(uint(initial))

	priorities := statePriorities(a, sub, subT, initialSet, oneStep, c.opts)
	fwd := flexgraph.FromMatrix(sub, a, false)
	bwd := flexgraph.FromMatrix(subT, a, true)

	var (
		e   *Eliminator[V]
		err error
	)
	if rewards == nil {
		e, err = NewProbabilityEliminator(a, fwd, bwd, oneStep)
	} else {
		e, err = NewRewardEliminator(a, fwd, bwd, oneStep, rewards)
	}
	if err != nil {
		return a.Zero(), err
	}
	e.onEliminated = c.opts.OnEliminated

	switch c.opts.Method {
	case MethodState:
		states := setToSlice(initialSet.Complement())
		sortByPriority(states, priorities)
		if err = e.eliminateAll(states); err != nil {
			return a.Zero(), err
		}
	case MethodHybrid:
		var queue []int
		if _, err = e.treatSCC(sub, initialSet, allSet(n), 0, c.opts, priorities, &queue); err != nil {
			return a.Zero(), err
		}
		if c.opts.EntryStatesLast {
			if err = e.eliminateAll(queue); err != nil {
				return a.Zero(), err
			}
		}
	default:
		return a.Zero(), fmt.Errorf("%w: unknown method %d", ErrPrecondition, c.opts.Method)
	}

	if rewards == nil {
		if err = e.eliminate(initial, true, nil); err != nil {
			return a.Zero(), err
		}

		return a.Canonicalize(oneStep[initial]), nil
	}

	// At this point only a self-loop can remain on the initial state;
	// surviving with probability p costs the state reward 1/(1-p) times.
	if row := fwd.Row(initial); len(row) > 0 {
		if len(row) != 1 || row[0].Col != initial {
			return a.Zero(), fmt.Errorf("%w: residual transitions at initial state", ErrPrecondition)
		}
		p := row[0].Val
		if a.IsOne(p) {
			return a.Zero(), fmt.Errorf("initial state %d: %w", initial, ErrDegenerateLoop)
		}
		scale := a.Canonicalize(a.Div(a.One(), a.Sub(a.One(), p)))
		rewards[initial] = a.Canonicalize(a.Mul(rewards[initial], scale))
		fwd.ClearRow(initial)
	}

	return a.Canonicalize(rewards[initial]), nil
}

// ConditionalProbability computes P(reach phi | reach psi) from the
// initial state. A condition of probability zero is ill-conditioned.
func (c *Checker[V]) ConditionalProbability(phi, psi *bitset.BitSet) (Result[V], error) {
	a := c.arith
	res := Result[V]{State: c.initial, Value: a.Zero()}
	if phi == nil || psi == nil {
		return res, fmt.Errorf("%w: nil state set", ErrPrecondition)
	}

	trans := c.model.Transitions()
	n := trans.RowCount()
	trueStates := allSet(n)
	backward := trans.Transpose()

	// Restrict psi to occurrences actually reachable from the initial
	// state; unreachable psi states cannot witness the condition.
	psiR := reach.Reachable(trans, c.model.Initial(), trueStates, psi)
	psiR.InPlaceIntersection(psi)

	condGreater0 := reach.ProbGreater0(backward, trueStates, psiR)
	condProb1 := reach.Prob1(backward, trueStates, psiR)

	if !condGreater0.Test(uint(c.initial)) {
		return res, ErrIllConditioned
	}
	if condProb1.Test(uint(c.initial)) {
		// Condition holds almost surely; plain reachability suffices.
		return c.UntilProbability(trueStates, phi)
	}

	// Keep states on a path witnessing both events, plus everything that
	// still reaches the condition.
	afterPsi := reach.ProbGreater0(trans, trueStates, psiR)
	beforePhi := reach.ProbGreater0(backward, trueStates, phi)
	maybe := afterPsi.Intersection(beforePhi)
	maybe.InPlaceUnion(condGreater0)

	sub := trans.Submatrix(maybe)
	subT := sub.Transpose()
	newInitial := dtmc.CompactIndex(maybe, c.initial)
	phiM := dtmc.CompactSet(maybe, phi)
	psiM := dtmc.CompactSet(maybe, psiR)
	if phiM.None() {
		return res, nil // objective unreachable, no division needed
	}

	n2 := sub.RowCount()
	oneStep := make([]V, n2)
	for i := range oneStep {
		oneStep[i] = a.Zero()
	}

	newInitialSet := bitset.New(uint(n2))
	newInitialSet.Set(uint(newInitial))

	priorities := statePriorities(a, sub, subT, newInitialSet, oneStep, c.opts)
	fwd := flexgraph.FromMatrix(sub, a, false)
	bwd := flexgraph.FromMatrix(subT, a, true)
	e, err := NewProbabilityEliminator(a, fwd, bwd, oneStep)
	if err != nil {
		return res, err
	}
	e.onEliminated = c.opts.OnEliminated

	// Bulk elimination of everything that is neither phi, psi, nor the
	// initial state.
	toEliminate := phiM.Union(psiM)
	toEliminate.InPlaceUnion(newInitialSet)
	toEliminate = toEliminate.Complement()
	states := setToSlice(toEliminate)
	sortByPriority(states, priorities)
	if err = e.eliminateAll(states); err != nil {
		return res, err
	}

	// Fold away transitions re-entering the initial state, keeping its
	// outgoing row for the assembly below.
	if len(bwd.Row(newInitial)) > 0 {
		if err = e.eliminate(newInitial, false, nil); err != nil {
			return res, err
		}
	}

	// Collapse phi-only and psi-only chains so every remaining path of
	// interest is at most two hops long.
	for _, t1 := range snapshotRow(fwd.Row(newInitial)) {
		succ := uint(t1.Col)
		switch {
		case phiM.Test(succ) && !psiM.Test(succ):
			err = e.eliminateChains(t1.Col, psiM, phiM)
		case psiM.Test(succ) && !phiM.Test(succ):
			err = e.eliminateChains(t1.Col, phiM, psiM)
		}
		if err != nil {
			return res, err
		}
	}

	// Two-hop assembly of numerator (phi and psi both seen) and
	// denominator (psi seen).
	numerator, denominator := a.Zero(), a.Zero()
	for _, t1 := range fwd.Row(newInitial) {
		succ := uint(t1.Col)
		if phiM.Test(succ) {
			if psiM.Test(succ) {
				numerator = a.Add(numerator, t1.Val)
				denominator = a.Add(denominator, t1.Val)
			} else {
				add := a.Zero()
				for _, t2 := range fwd.Row(t1.Col) {
					if psiM.Test(uint(t2.Col)) {
						add = a.Add(add, t2.Val)
					}
				}
				add = a.Mul(t1.Val, add)
				numerator = a.Add(numerator, add)
				denominator = a.Add(denominator, add)
			}
		} else {
			denominator = a.Add(denominator, t1.Val)
			add := a.Zero()
			for _, t2 := range fwd.Row(t1.Col) {
				if phiM.Test(uint(t2.Col)) {
					add = a.Add(add, t2.Val)
				}
			}
			numerator = a.Add(numerator, a.Mul(t1.Val, add))
		}
	}

	if a.IsZero(denominator) {
		return res, ErrIllConditioned
	}
	res.Value = a.Canonicalize(a.Div(numerator, denominator))

	return res, nil
}

// eliminateChains repeatedly folds out successors of start that are not
// in stop, constraining relinking to constraint members, until start's
// row holds only stop states (or a lone self-loop).
func (e *Eliminator[V]) eliminateChains(start int, stop, constraint *bitset.BitSet) error {
	for changed := true; changed; {
		changed = false
		row := e.forward.Row(start)
		if len(row) == 0 || (len(row) == 1 && row[0].Col == start) {
			break
		}
		for _, en := range snapshotRow(row) {
			if stop.Test(uint(en.Col)) {
				continue
			}
			srow := e.forward.Row(en.Col)
			if len(srow) > 1 || (len(srow) == 1 && srow[0].Col != en.Col) {
				if err := e.eliminate(en.Col, false, constraint); err != nil {
					return err
				}
				changed = true
			}
		}
	}

	return nil
}

// snapshotRow copies a live row so it can be ranged over while
// eliminations rewrite the underlying graph.
func snapshotRow[V any](row []dtmc.Entry[V]) []dtmc.Entry[V] {
	return append([]dtmc.Entry[V](nil), row...)
}

// allSet returns the full state set {0, ..., n-1}.
func allSet(n int) *bitset.BitSet {
	return bitset.New(uint(n)).Complement()
}
