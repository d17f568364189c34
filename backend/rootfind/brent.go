// Package rootfind implements a Brent-Dekker root finder with an optional
// bit-pattern bisection fallback for pathologically scaled brackets, and a
// currency-rounding, memoizing wrapper used by the GPT specified-amount
// solver.
package rootfind

import (
	"math"

	"gpt7702/backend/mathx"
)

// Bias controls which side of a converged bracket FindRoot prefers when the
// two endpoints do not agree to machine precision.
type Bias int

const (
	// BiasNone returns Brent's own best approximation, b.
	BiasNone Bias = iota
	// BiasLower returns a root z with f(z) <= 0 when the bracket allows it.
	BiasLower
	// BiasHigher returns a root z with f(z) >= 0 when the bracket allows it.
	BiasHigher
)

// Validity classifies the outcome of a root-finding attempt.
type Validity int

const (
	// ValidityConverged means the returned root satisfies the requested
	// tolerance.
	ValidityConverged Validity = iota
	// ValidityNotBracketed means f(a) and f(b) share a sign; the caller's
	// fallback sentinel is the discipline of the caller, not of this
	// package.
	ValidityNotBracketed
	// ValidityImproperBounds means a == b (no bracket at all).
	ValidityImproperBounds
)

// Result is the outcome of a FindRoot or DecimalRoot call.
type Result struct {
	Root     float64
	NEval    int
	Validity Validity
}

// NoSprauchlingLimit disables the binary64-bisection fallback: Brent
// iteration alone is trusted to converge.
const NoSprauchlingLimit = math.MaxInt32

// dblEpsilon is the binary64 machine epsilon, 2^-52.
const dblEpsilon = 2.220446049250313e-16

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FindRoot finds a zero of f within [a, b] using Brent-Dekker's method,
// switching to IEEE-754 bit-pattern bisection after sprauchlingLimit
// evaluations have been spent without convergence. Pass
// NoSprauchlingLimit to disable the fallback.
//
// Preconditions: a != b; f(a) and f(b) are finite; either one of them is
// zero or they have opposite sign. a == b is reported as
// ValidityImproperBounds and endpoint values of the same sign as
// ValidityNotBracketed; a non-finite f(a) or f(b) panics.
func FindRoot(f func(float64) float64, a, b, tolerance float64, bias Bias, sprauchlingLimit int) Result {
	if a == b {
		return Result{Root: a, Validity: ValidityImproperBounds}
	}

	fa := f(a)
	fb := f(b)
	nEval := 2

	if !isFinite(fa) || !isFinite(fb) {
		panic("rootfind: FindRoot: non-finite function value at endpoint")
	}
	if fa == 0 {
		return Result{Root: a, NEval: nEval, Validity: ValidityConverged}
	}
	if fb == 0 {
		return Result{Root: b, NEval: nEval, Validity: ValidityConverged}
	}
	if mathx.Signum(fa) == mathx.Signum(fb) {
		return Result{Root: b, NEval: nEval, Validity: ValidityNotBracketed}
	}

	c, fc := b, fb
	d := b - a
	e := d

	for {
		// Whenever b and c no longer bracket the root, discard c and
		// re-bracket against the prior a. This runs every iteration. not
		// just once at setup, so a bracket lost to interpolation drift
		// gets re-established immediately.
		if (0 < fb) == (0 < fc) {
			c, fc = a, fa
			d, e = b-a, b-a
		}

		// If c is a closer approximant than b, swap them so b is always
		// the best approximation found so far, discarding the old a.
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := 2*dblEpsilon*math.Abs(b) + tolerance
		m := 0.5 * (c - b)

		if fb == 0 || math.Abs(m) <= tol {
			switch {
			case bias == BiasNone, bias == BiasLower && fb <= 0, bias == BiasHigher && 0 <= fb:
				return Result{Root: b, NEval: nEval, Validity: ValidityConverged}
			case math.Abs(m) <= 2*dblEpsilon*math.Abs(c)+tolerance:
				return Result{Root: c, NEval: nEval, Validity: ValidityConverged}
			default:
				// Neither b nor c satisfies the requested bias yet;
				// fall through and keep iterating instead of settling.
			}
		}

		if nEval > sprauchlingLimit {
			n := mathx.Binary64Midpoint(b, c)
			d, e = n-b, n-b
		} else if math.Abs(e) < tol || math.Abs(fa) <= math.Abs(fb) {
			// Bisection.
			e, d = m, m
		} else {
			var p, q float64
			s := fb / fa
			if a == c {
				// Linear secant.
				p = 2 * m * s
				q = 1 - s
			} else {
				// Inverse quadratic interpolation.
				q = fa / fc
				r := fb / fc
				p = s * (2 * m * q * (q - r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if 2*p < 3*m*q-math.Abs(tol*q) && p < math.Abs(0.5*e*q) {
				e, d = d, p/q
			} else {
				e, d = m, m
			}
		}

		a, fa = b, fb
		if tol < math.Abs(d) {
			b += d
		} else if m > 0 {
			b += tol
		} else {
			b -= tol
		}
		fb = f(b)
		nEval++
	}
}
