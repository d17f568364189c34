package gpt

import "gpt7702/backend/mathx"

// InterestRateInputs are the product-level, per-duration facts §7702
// interest-rate derivation depends on, one entry per contract duration:
// the statutory floor the jurisdiction imposes, the contractual guaranteed
// rate, whatever a variable-loan provision implies at that duration, and
// the account-value/separate-account loads to net out before applying the
// floor. Every slice must be the same length as the contract's duration
// count; durational variation matters because a product can, for example,
// disallow fixed loans in the issue year, or step its AV load down after
// a surrender-charge period ends.
type InterestRateInputs struct {
	// StatutoryRateUsual is the jurisdiction's annual statutory rate for
	// the "usual" §7702 interest series, before the GLP/GSP adjustments.
	StatutoryRateUsual []float64
	// StatutoryRateGSP is StatutoryRateUsual plus the 2 percentage points
	// §7702(b) adds for the guideline single premium.
	StatutoryRateGSP []float64
	// GuaranteedRate is the contract's own guaranteed annual interest
	// rate (DB_GuarInt in the product-database sense).
	GuaranteedRate []float64
	// AllowFixedLoan marks durations at which a fixed policy loan is
	// available; where true, the guaranteed rate used for §7702 purposes
	// is floored at GrossLoanRate minus GuarLoanSpread, since a borrower
	// can always achieve at least that net rate.
	AllowFixedLoan []bool
	GrossLoanRate  []float64
	GuarLoanSpread []float64
	// AVLoad is the current account-value load to net out of the
	// contractual rate at each duration.
	AVLoad []float64
	// SepAcctLoadApplies and MinTieredSepAcctLoad add the minimum
	// tiered separate-account load at durations where the product
	// offers a separate account but no general account.
	SepAcctLoadApplies   []bool
	MinTieredSepAcctLoad []float64
}

// guaranteedAt returns the §7702 guaranteed rate floor at duration t: the
// contractual guaranteed rate, raised to the fixed-loan net rate wherever
// a fixed loan is available and that net rate is higher.
func guaranteedAt(in InterestRateInputs, t int) float64 {
	g := in.GuaranteedRate[t]
	if t < len(in.AllowFixedLoan) && in.AllowFixedLoan[t] {
		loanNet := in.GrossLoanRate[t] - in.GuarLoanSpread[t]
		if loanNet > g {
			g = loanNet
		}
	}
	return g
}

// avLoadAt returns the account-value load to net out of the guaranteed
// rate at duration t, including the tiered separate-account load where
// the product applies one.
func avLoadAt(in InterestRateInputs, t int) float64 {
	load := in.AVLoad[t]
	if t < len(in.SepAcctLoadApplies) && in.SepAcctLoadApplies[t] {
		load += in.MinTieredSepAcctLoad[t]
	}
	return load
}

// InterestRates derives the three pairs of monthly §7702 interest-rate
// vectors — usual, GLP, and GSP — duration by duration, per spec §4.8.
// Each series takes the greater of the jurisdiction's statutory rate and
// the contract's guaranteed rate (itself floored at the fixed-loan net
// rate where offered), nets the AV and separate-account loads out of it,
// and converts the result to its monthly-equivalent rate. lmi's product
// database additionally lets 'ig' diverge from 'ic' via a per-contract
// NAAR discount; this rewrite has no such per-product discount schedule
// to consult, so ic and ig coincide at every duration here, matching
// lmi's own behavior for a product with no contractual NAAR discount.
func InterestRates(inputs InterestRateInputs, length int) (icUsual, igUsual, icGLP, igGLP, icGSP, igGSP []float64) {
	icUsual = make([]float64, length)
	igUsual = make([]float64, length)
	icGLP = make([]float64, length)
	igGLP = make([]float64, length)
	icGSP = make([]float64, length)
	igGSP = make([]float64, length)

	for t := 0; t < length; t++ {
		guar := guaranteedAt(inputs, t)
		load := avLoadAt(inputs, t)

		usualAnnual := inputs.StatutoryRateUsual[t]
		if guar > usualAnnual {
			usualAnnual = guar
		}
		gspAnnual := inputs.StatutoryRateGSP[t]
		if guar > gspAnnual {
			gspAnnual = guar
		}

		icUsual[t] = mathx.IUpperTwelveOverTwelveFromI(usualAnnual - load)
		icGLP[t] = icUsual[t]
		icGSP[t] = mathx.IUpperTwelveOverTwelveFromI(gspAnnual - load)

		igUsual[t] = icUsual[t]
		igGLP[t] = icGLP[t]
		igGSP[t] = icGSP[t]
	}
	return icUsual, igUsual, icGLP, igGLP, icGSP, igGSP
}

// UniformInterestRateInputs builds an InterestRateInputs that replicates a
// single set of scalar product facts across every duration — the shape
// most of this codebase's callers actually have on hand, since they track
// one guaranteed rate and one AV load per contract rather than a full
// durational schedule pulled from a product database.
func UniformInterestRateInputs(length int, guaranteedRate float64, allowFixedLoan bool, grossLoanRate, guarLoanSpread, avLoad float64, sepAcctLoadApplies bool, minTieredSepAcctLoad float64) InterestRateInputs {
	fill := func(v float64) []float64 {
		out := make([]float64, length)
		for i := range out {
			out[i] = v
		}
		return out
	}
	fillBool := func(v bool) []bool {
		out := make([]bool, length)
		for i := range out {
			out[i] = v
		}
		return out
	}
	return InterestRateInputs{
		StatutoryRateUsual:   fill(statutoryFloorUsual),
		StatutoryRateGSP:     fill(statutoryFloorGSP),
		GuaranteedRate:       fill(guaranteedRate),
		AllowFixedLoan:       fillBool(allowFixedLoan),
		GrossLoanRate:        fill(grossLoanRate),
		GuarLoanSpread:       fill(guarLoanSpread),
		AVLoad:               fill(avLoad),
		SepAcctLoadApplies:   fillBool(sepAcctLoadApplies),
		MinTieredSepAcctLoad: fill(minTieredSepAcctLoad),
	}
}

const (
	statutoryFloorUsual = 0.04
	statutoryFloorGSP   = 0.06 // 4% + 2% per §7702(b)
)
