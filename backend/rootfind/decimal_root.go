package rootfind

import (
	"github.com/shopspring/decimal"
)

// DecimalRoot wraps f in a currency-rounded, memoized evaluator: every
// iterate x is rounded to decimals places before f is called, and repeated
// roundings to the same value are served from a cache rather than
// re-evaluating f. This matters because Brent's interpolation steps often
// produce several unrounded iterates that collapse to the same rounded
// currency amount — each of those should count as one evaluation of f, not
// several, both for performance and because f may have side effects the
// caller wants counted accurately (e.g. a premium formula with its own
// internal state).
//
// The returned Result.Root is itself rounded to decimals places, and
// Result.NEval reports the number of distinct rounded arguments actually
// evaluated, not the number of Brent iterations.
func DecimalRoot(f func(float64) float64, a, b float64, bias Bias, decimals int32, sprauchlingLimit int) Result {
	cache := make(map[string]float64)

	round := func(x float64) decimal.Decimal {
		return decimal.NewFromFloat(x).Round(decimals)
	}

	wrapped := func(x float64) float64 {
		r := round(x)
		key := r.String()
		if v, ok := cache[key]; ok {
			return v
		}
		v, _ := r.Float64()
		fv := f(v)
		cache[key] = fv
		return fv
	}

	tolerance := 0.5 * pow10(-int(decimals))

	res := FindRoot(wrapped, a, b, tolerance, bias, sprauchlingLimit)
	res.Root, _ = round(res.Root).Float64()
	res.NEval = len(cache)
	return res
}

func pow10(n int) float64 {
	result := 1.0
	if n >= 0 {
		for i := 0; i < n; i++ {
			result *= 10
		}
		return result
	}
	for i := 0; i < -n; i++ {
		result *= 10
	}
	return 1 / result
}
