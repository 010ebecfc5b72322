package algebra

import "math/big"

// Rational implements Arithmetic over exact rationals (*big.Rat).
// Every operation allocates a fresh result; arguments are never mutated,
// so rows holding shared values stay safe to rebuild and swap.
type Rational struct{}

// NewRational returns the exact rational arithmetic.
func NewRational() Rational { return Rational{} }

func (Rational) Zero() *big.Rat { return new(big.Rat) }

func (Rational) One() *big.Rat { return big.NewRat(1, 1) }

func (Rational) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }

func (Rational) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }

func (Rational) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

func (Rational) Div(a, b *big.Rat) *big.Rat { return new(big.Rat).Quo(a, b) }

func (Rational) IsZero(v *big.Rat) bool { return v.Sign() == 0 }

func (Rational) IsOne(v *big.Rat) bool { return v.Num().Cmp(v.Denom()) == 0 && v.Sign() > 0 }

// Canonicalize returns a defensive copy; big.Rat keeps itself in lowest
// terms, so the copy is already canonical.
func (Rational) Canonicalize(v *big.Rat) *big.Rat { return new(big.Rat).Set(v) }
