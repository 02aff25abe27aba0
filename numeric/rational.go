// Package numeric provides the exact-rational arithmetic the damage and
// dispatch pipelines need. Multipliers folded through a chain of handlers
// must never lose precision to floating point rounding,
// since two hosts running the same seed must reach bit-identical state.
package numeric

// Rational is an exact fraction Num/Den, Den always > 0.
type Rational struct {
	Num int64
	Den int64
}

// One is the multiplicative identity.
var One = Rational{Num: 1, Den: 1}

// R builds a Rational, normalizing the sign onto the numerator.
func R(num, den int64) Rational {
	if den < 0 {
		num, den = -num, -den
	}
	return Rational{Num: num, Den: den}
}

// Mul returns the exact product a*b.
func (a Rational) Mul(b Rational) Rational {
	return Rational{Num: a.Num * b.Num, Den: a.Den * b.Den}
}

// ApplyFloor multiplies x by the rational and floors to an integer, the
// operation the damage pipeline uses at every multiplicative stage.
func (a Rational) ApplyFloor(x int64) int64 {
	num := x * a.Num
	den := a.Den
	if den == 1 {
		return num
	}
	q := num / den
	if num%den != 0 && (num < 0) != (den < 0) {
		q--
	}
	return q
}

// IsOne reports whether the rational is exactly 1 (after cross-multiplying,
// so unreduced fractions like 2/2 also count).
func (a Rational) IsOne() bool { return a.Num == a.Den }

// IsZero reports whether the rational is exactly 0.
func (a Rational) IsZero() bool { return a.Num == 0 }

// Chain multiplies a sequence of rationals in order, used to fold a list of
// handler-returned multipliers into one exact product.
func Chain(rs ...Rational) Rational {
	acc := One
	for _, r := range rs {
		acc = acc.Mul(r)
	}
	return acc
}
