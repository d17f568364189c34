package rootfind

import (
	"math"
	"testing"
)

func floatEquals(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestFindRootLinear(t *testing.T) {
	// f(x) = x - 3, root at 3.
	f := func(x float64) float64 { return x - 3 }
	res := FindRoot(f, 0, 10, 1e-9, BiasNone, NoSprauchlingLimit)
	if res.Validity != ValidityConverged {
		t.Fatalf("expected converged, got %v", res.Validity)
	}
	if !floatEquals(res.Root, 3, 1e-6) {
		t.Errorf("expected root 3, got %v", res.Root)
	}
}

func TestFindRootQuadratic(t *testing.T) {
	// f(x) = x^2 - 2, root at sqrt(2).
	f := func(x float64) float64 { return x*x - 2 }
	res := FindRoot(f, 0, 2, 1e-12, BiasNone, NoSprauchlingLimit)
	if !floatEquals(res.Root, math.Sqrt2, 1e-8) {
		t.Errorf("expected %v, got %v", math.Sqrt2, res.Root)
	}
}

func TestFindRootNotBracketed(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	res := FindRoot(f, -1, 1, 1e-9, BiasNone, NoSprauchlingLimit)
	if res.Validity != ValidityNotBracketed {
		t.Errorf("expected ValidityNotBracketed, got %v", res.Validity)
	}
}

func TestFindRootImproperBounds(t *testing.T) {
	f := func(x float64) float64 { return x }
	res := FindRoot(f, 5, 5, 1e-9, BiasNone, NoSprauchlingLimit)
	if res.Validity != ValidityImproperBounds {
		t.Errorf("expected ValidityImproperBounds, got %v", res.Validity)
	}
}

func TestFindRootBiasLowerAndHigher(t *testing.T) {
	f := func(x float64) float64 { return x - 3 }
	lower := FindRoot(f, 0, 10, 1e-3, BiasLower, NoSprauchlingLimit)
	if f(lower.Root) > 1e-3 {
		t.Errorf("bias lower: f(z)=%v should be <= tolerance", f(lower.Root))
	}
	higher := FindRoot(f, 0, 10, 1e-3, BiasHigher, NoSprauchlingLimit)
	if f(higher.Root) < -1e-3 {
		t.Errorf("bias higher: f(z)=%v should be >= -tolerance", f(higher.Root))
	}
}

func TestFindRootSprauchlingLimitConverges(t *testing.T) {
	f := func(x float64) float64 { return x - 1e250 }
	res := FindRoot(f, 0, math.MaxFloat64, 1e-6, BiasNone, 4)
	if res.Validity != ValidityConverged {
		t.Fatalf("expected converged via bisection fallback, got %v", res.Validity)
	}
	if !floatEquals(res.Root/1e250, 1, 1e-9) {
		t.Errorf("expected root near 1e250, got %v", res.Root)
	}
}

func TestDecimalRootRoundsAndMemoizes(t *testing.T) {
	calls := 0
	f := func(x float64) float64 {
		calls++
		return x - 3.14159
	}
	res := DecimalRoot(f, 0, 10, BiasNone, 2, NoSprauchlingLimit)
	if !floatEquals(res.Root, 3.14, 1e-9) {
		t.Errorf("expected rounded root 3.14, got %v", res.Root)
	}
	if res.NEval != calls {
		t.Errorf("expected NEval (%d) to equal unique calls (%d)", res.NEval, calls)
	}
}
