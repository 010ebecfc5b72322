package algebra

// Arithmetic is the closed algebra over an opaque value type V.
// Implementations must satisfy:
//
//   - Zero is the additive identity, One the multiplicative identity.
//   - Div(a, b) is only called where b is known to be non-zero.
//   - IsZero/IsOne may be tolerance-based (floating representations) or
//     exact (symbolic ones).
//   - Canonicalize is idempotent: Canonicalize(Canonicalize(v)) yields a
//     value equal to Canonicalize(v).
//
// Implementations must not retain or mutate their arguments.
type Arithmetic[V any] interface {
	Zero() V
	One() V
	Add(a, b V) V
	Sub(a, b V) V
	Mul(a, b V) V
	Div(a, b V) V
	IsZero(v V) bool
	IsOne(v V) bool
	Canonicalize(v V) V
}
