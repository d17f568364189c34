package commute

import (
	"fmt"
	"math"

	"gpt7702/backend/mathx"
)

// DBOption7702 distinguishes the two §7702 death benefit options: level
// face amount (Option1) or face amount plus account value (Option2).
type DBOption7702 int

const (
	Option1 DBOption7702 = iota
	Option2
)

// Mode is the n-iversary processing frequency, expressed as periods per
// year. Monthly (12) is by far the most common UL processing mode, but the
// commutation-function math itself is mode-agnostic.
type Mode int

const (
	Annual       Mode = 1
	Semiannual   Mode = 2
	Quarterly    Mode = 4
	Monthly      Mode = 12
)

// UL holds the universal-life commutation functions derived per Eckley's
// TSA XXIX formulas from monthly mortality and interest vectors. AD has
// length n (the "annual" D at the start of each period); EAD, KD, KC, AN,
// and KM each have length n as well.
type UL struct {
	AD      []float64
	KD      []float64
	KC      []float64
	AN      []float64
	KM      []float64
	EAD     []float64
	ADOmega float64

	DBOpt DBOption7702
	Mode  Mode
}

// NewUL builds the universal-life commutation functions from Eckley's
// three rate vectors: qc (mortality), ic (current interest), and ig
// (guaranteed interest), all on the processing mode's period, plus the
// death benefit option and mode themselves.
//
// Extreme inputs are tolerated by construction, not specially cased: when
// qc=ic=ig=0 throughout, every f, q, and kC value in the loop below comes
// out to exactly zero, vp comes out to exactly 1, ka is forced to 1 (the
// vp==1 branch), and aD stays 1 at every duration — which is exactly the
// degenerate aDω=1, kC[last]=0 case the specification calls out, without
// needing a special branch for it.
func NewUL(qc, ic, ig []float64, dbo DBOption7702, mode Mode) (*UL, error) {
	n := len(qc)
	if len(ic) != n || len(ig) != n {
		return nil, fmt.Errorf("commute: NewUL: mismatched vector lengths qc=%d ic=%d ig=%d", n, len(ic), len(ig))
	}
	for t := 0; t < n; t++ {
		if qc[t] < 0 || qc[t] > 1 {
			return nil, fmt.Errorf("commute: NewUL: qc[%d]=%v out of [0,1]", t, qc[t])
		}
		if ic[t] <= -1 {
			return nil, fmt.Errorf("commute: NewUL: ic[%d]=%v must exceed -1", t, ic[t])
		}
		if ig[t] < 0 {
			return nil, fmt.Errorf("commute: NewUL: ig[%d]=%v must be nonnegative", t, ig[t])
		}
	}

	periodsPerYear := int(mode)
	monthsPerPeriod := 12 / periodsPerYear

	ad := make([]float64, n+1)
	kd := make([]float64, n)
	kc := make([]float64, n)
	ad[0] = 1.0

	for t := 0; t < n; t++ {
		// Eckley equations (7) and (8).
		f := qc[t] * (1 + ic[t]) / (1 + ig[t])
		g := 1.0 / (1.0 + f)
		// Eckley equation (11).
		i := (ic[t] + ig[t]*f) * g
		// Eckley equation (12).
		q := f * g
		if dbo == Option2 {
			// Eckley equation (19).
			i -= q
		}
		if i == -1 {
			return nil, fmt.Errorf("commute: NewUL: degenerate i=-1 at duration %d", t)
		}
		v := 1.0 / (1.0 + i)
		p := 1.0 - q
		vp := v * p
		vp12 := math.Pow(vp, 12)
		vpn := math.Pow(vp, float64(periodsPerYear))

		ka := 1.0
		if vp != 1.0 {
			ka = (1.0 - vp12) / (1.0 - math.Pow(vp, float64(monthsPerPeriod)))
		}

		kd[t] = ka * ad[t]
		kc[t] = ka * ad[t] * v * q
		ad[t+1] = ad[t] * vpn
	}

	ead := make([]float64, n)
	copy(ead, ad[1:])

	ul := &UL{
		AD:    ad[:n],
		KD:    kd,
		KC:    kc,
		AN:    mathx.BackSum(ad[:n]),
		KM:    mathx.BackSum(kc),
		EAD:   ead,
		DBOpt: dbo,
		Mode:  mode,
	}
	if n > 0 {
		ul.ADOmega = ead[n-1]
	} else {
		ul.ADOmega = 1.0
	}
	return ul, nil
}
