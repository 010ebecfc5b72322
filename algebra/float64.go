package algebra

import "math"

// DefaultEpsilon is the default non-negative tolerance used by the
// Float64 zero/one predicates.
const DefaultEpsilon = 1e-9

// panicEpsilonInvalid guards NewFloat64 against nonsensical tolerances.
const panicEpsilonInvalid = "algebra: NewFloat64: eps must be finite, non-negative"

// Float64 implements Arithmetic over float64 with a tolerance-based
// comparator. The zero value uses an exact comparator (eps == 0).
type Float64 struct {
	eps float64
}

// NewFloat64 returns a Float64 arithmetic whose IsZero/IsOne predicates
// accept values within eps of the respective identity.
// Panics if eps is NaN, infinite, or negative.
func NewFloat64(eps float64) Float64 {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return Float64{eps: eps}
}

// DefaultFloat64 returns a Float64 arithmetic with DefaultEpsilon.
func DefaultFloat64() Float64 { return Float64{eps: DefaultEpsilon} }

// Epsilon reports the configured tolerance.
func (f Float64) Epsilon() float64 { return f.eps }

func (Float64) Zero() float64 { return 0 }

func (Float64) One() float64 { return 1 }

func (Float64) Add(a, b float64) float64 { return a + b }

func (Float64) Sub(a, b float64) float64 { return a - b }

func (Float64) Mul(a, b float64) float64 { return a * b }

func (Float64) Div(a, b float64) float64 { return a / b }

func (f Float64) IsZero(v float64) bool { return math.Abs(v) <= f.eps }

func (f Float64) IsOne(v float64) bool { return math.Abs(v-1) <= f.eps }

// Canonicalize is the identity: float64 has no growing representation.
func (Float64) Canonicalize(v float64) float64 { return v }
