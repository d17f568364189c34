// Package commute implements the ordinary-life and universal-life
// commutation-function engines: discounted mortality/interest primitives
// that the GPT calculator builds its premium formulas on.
package commute

import (
	"fmt"

	"gpt7702/backend/mathx"
)

// OL holds the ordinary-life commutation functions built from a single
// (mortality, interest) rate pair. All fields are immutable once
// constructed and have length n, the length of the input vectors; the
// end-of-year values of D, including the terminal one, are in ED
// (ED[t] is D at t+1).
type OL struct {
	D  []float64
	C  []float64
	N  []float64
	M  []float64
	ED []float64
}

// NewOL builds the ordinary-life commutation functions from annual
// mortality rates q and annual interest rates i, both of length n with
// i[t] > -1 and q[t] in [0,1].
func NewOL(q, i []float64) (*OL, error) {
	n := len(q)
	if len(i) != n {
		return nil, fmt.Errorf("commute: NewOL: mismatched vector lengths q=%d i=%d", n, len(i))
	}
	for t := 0; t < n; t++ {
		if q[t] < 0 || q[t] > 1 {
			return nil, fmt.Errorf("commute: NewOL: q[%d]=%v out of [0,1]", t, q[t])
		}
		if i[t] <= -1 {
			return nil, fmt.Errorf("commute: NewOL: i[%d]=%v must exceed -1", t, i[t])
		}
	}

	d := make([]float64, n+1)
	c := make([]float64, n)
	d[0] = 1.0
	for t := 0; t < n; t++ {
		v := 1.0 / (1.0 + i[t])
		p := 1.0 - q[t]
		c[t] = d[t] * v * q[t]
		d[t+1] = d[t] * v * p
	}

	ed := make([]float64, n)
	copy(ed, d[1:])

	return &OL{
		D:  d[:n],
		C:  c,
		N:  mathx.BackSum(d[:n]),
		M:  mathx.BackSum(c),
		ED: ed,
	}, nil
}
