// Package gpt implements the IRC §7702 Guideline Premium Test: the
// commutation triad that prices GLP/GSP, the contract-level state machine
// that tracks cumulative premiums and processes adjustment events, and the
// specified-amount solver that inverts the premium formula.
package gpt

import (
	"fmt"

	"gpt7702/backend/commute"
)

// GLPOrGSP selects which statutory guideline the triad's premium formula
// is evaluating.
type GLPOrGSP int

const (
	GLP GLPOrGSP = iota
	GSP
)

// VectorParms holds the per-duration charge vectors folded into the GPT
// commutation triad: premium loads, policy fees, the specified-amount
// load, and the six §7702(f)(5) qualified-additional-benefit rates.
type VectorParms struct {
	TargetLoad       []float64
	ExcessLoad       []float64
	MonthlyPolicyFee []float64
	AnnualPolicyFee  []float64
	SpecAmtLoad      []float64
	QABGIORate       []float64
	QABADBRate       []float64
	QABTermRate      []float64
	QABSpouseRate    []float64
	QABChildRate     []float64
	QABWaiverRate    []float64
}

// ScalarParms holds the transaction-time scalar inputs to a premium
// calculation: the duration being evaluated, the benefits in force at
// that duration, and the six QAB benefit amounts.
type ScalarParms struct {
	Duration          int
	F3Benefit         float64 // §7702(f)(3) benefit (generally the death benefit)
	EndowmentBenefit  float64 // must not exceed F3Benefit
	TargetPremium     float64
	ChargeSpecAmtBase float64
	DBOpt             commute.DBOption7702
	QABGIOAmount      float64
	QABADBAmount      float64
	QABTermAmount     float64
	QABSpouseAmount   float64
	QABChildAmount    float64
	QABWaiverAmount   float64
}

// commFns is one of the triad's three specialized UL commutation objects,
// with premium-relevant charges folded in as backward partial sums over
// the commutation functions' own issue-date basis.
type commFns struct {
	ul *commute.UL

	dEndowment float64 // aD at final maturity duration: PV-to-maturity discount factor
	dNetTarget []float64
	dNetExcess []float64
	nNetTarget []float64
	nNetExcess []float64
	nFees      []float64
	nSpecAmt   []float64
	nQABGIO    []float64
	nQABADB    []float64
	nQABTerm   []float64
	nQABSpouse []float64
	nQABChild  []float64
	nQABWaiver []float64
	m          []float64
}

func backSum(v []float64) []float64 {
	out := make([]float64, len(v))
	var running float64
	for t := len(v) - 1; t >= 0; t-- {
		running += v[t]
		out[t] = running
	}
	return out
}

func newCommFns(qc, ic, ig []float64, dbo commute.DBOption7702, charges VectorParms) (*commFns, error) {
	ul, err := commute.NewUL(qc, ic, ig, dbo, commute.Monthly)
	if err != nil {
		return nil, fmt.Errorf("gpt: triad commutation functions: %w", err)
	}
	n := len(qc)
	for name, v := range map[string][]float64{
		"TargetLoad": charges.TargetLoad, "ExcessLoad": charges.ExcessLoad,
		"MonthlyPolicyFee": charges.MonthlyPolicyFee, "AnnualPolicyFee": charges.AnnualPolicyFee,
		"SpecAmtLoad": charges.SpecAmtLoad,
		"QABGIORate": charges.QABGIORate, "QABADBRate": charges.QABADBRate, "QABTermRate": charges.QABTermRate,
		"QABSpouseRate": charges.QABSpouseRate, "QABChildRate": charges.QABChildRate, "QABWaiverRate": charges.QABWaiverRate,
	} {
		if len(v) != n {
			return nil, fmt.Errorf("gpt: triad charge vector %s has length %d, want %d", name, len(v), n)
		}
	}

	dNetTarget := make([]float64, n)
	dNetExcess := make([]float64, n)
	feeExpense := make([]float64, n)
	specAmtExpense := make([]float64, n)
	qabGIOExpense := make([]float64, n)
	qabADBExpense := make([]float64, n)
	qabTermExpense := make([]float64, n)
	qabSpouseExpense := make([]float64, n)
	qabChildExpense := make([]float64, n)
	qabWaiverExpense := make([]float64, n)

	for t := 0; t < n; t++ {
		dNetTarget[t] = ul.AD[t] * (1 - charges.TargetLoad[t])
		dNetExcess[t] = ul.AD[t] * (1 - charges.ExcessLoad[t])
		if dNetTarget[t] <= 0 || dNetExcess[t] <= 0 {
			return nil, fmt.Errorf("gpt: triad precondition violated: D-net value not strictly positive at duration %d", t)
		}
		feeExpense[t] = (charges.MonthlyPolicyFee[t]*12 + charges.AnnualPolicyFee[t]) * ul.AD[t]
		specAmtExpense[t] = charges.SpecAmtLoad[t] * 12 * ul.KD[t]
		qabGIOExpense[t] = charges.QABGIORate[t] * 12 * ul.KD[t]
		qabADBExpense[t] = charges.QABADBRate[t] * 12 * ul.KD[t]
		qabTermExpense[t] = charges.QABTermRate[t] * 12 * ul.KD[t]
		qabSpouseExpense[t] = charges.QABSpouseRate[t] * 12 * ul.KD[t]
		qabChildExpense[t] = charges.QABChildRate[t] * 12 * ul.KD[t]
		qabWaiverExpense[t] = charges.QABWaiverRate[t] * 12 * ul.KD[t]
	}

	dEndowment := 1.0
	if n > 0 {
		dEndowment = ul.ADOmega
	}

	return &commFns{
		ul:         ul,
		dEndowment: dEndowment,
		dNetTarget: dNetTarget,
		dNetExcess: dNetExcess,
		nNetTarget: backSum(dNetTarget),
		nNetExcess: backSum(dNetExcess),
		nFees:      backSum(feeExpense),
		nSpecAmt:   backSum(specAmtExpense),
		nQABGIO:    backSum(qabGIOExpense),
		nQABADB:    backSum(qabADBExpense),
		nQABTerm:   backSum(qabTermExpense),
		nQABSpouse: backSum(qabSpouseExpense),
		nQABChild:  backSum(qabChildExpense),
		nQABWaiver: backSum(qabWaiverExpense),
		m:          ul.KM,
	}, nil
}

// calculatePremium implements spec §4.5's numerator/breakpoint-crossing
// formula. glpOrGSP selects whether the denominator is the single-payment
// D-net (GSP) or the level-annuity N-net (GLP).
func (cf *commFns) calculatePremium(glpOrGSP GLPOrGSP, sp ScalarParms) (float64, error) {
	t := sp.Duration
	if t < 0 || t >= len(cf.m) {
		return 0, fmt.Errorf("gpt: calculatePremium: duration %d out of range [0,%d)", t, len(cf.m))
	}

	numerator := cf.dEndowment*sp.EndowmentBenefit +
		cf.m[t]*sp.F3Benefit +
		cf.nFees[t] +
		cf.nSpecAmt[t]*sp.ChargeSpecAmtBase +
		cf.nQABGIO[t]*sp.QABGIOAmount +
		cf.nQABADB[t]*sp.QABADBAmount +
		cf.nQABTerm[t]*sp.QABTermAmount +
		cf.nQABSpouse[t]*sp.QABSpouseAmount +
		cf.nQABChild[t]*sp.QABChildAmount +
		cf.nQABWaiver[t]*sp.QABWaiverAmount

	var denomTarget, denomExcess float64
	if glpOrGSP == GSP {
		denomTarget, denomExcess = cf.dNetTarget[t], cf.dNetExcess[t]
	} else {
		denomTarget, denomExcess = cf.nNetTarget[t], cf.nNetExcess[t]
	}

	premium := numerator / denomTarget
	if premium > sp.TargetPremium {
		premium = (numerator + sp.TargetPremium*(denomExcess-denomTarget)) / denomExcess
	}
	if premium < 0 {
		panic("gpt: calculatePremium: computed premium is negative")
	}
	return premium, nil
}

// Triad is the three specialized UL commutation objects the GPT calculator
// builds once per product definition: GLP under each death benefit
// option, and GSP (which the statute always evaluates under option 1).
type Triad struct {
	glpDBO1 *commFns
	glpDBO2 *commFns
	gsp     *commFns
}

// NewTriad builds the GPT commutation triad from a common mortality
// vector, separate GLP and GSP interest-rate vectors, and the charge
// vectors common to all three.
func NewTriad(qc, icGLP, igGLP, icGSP, igGSP []float64, charges VectorParms) (*Triad, error) {
	glpDBO1, err := newCommFns(qc, icGLP, igGLP, commute.Option1, charges)
	if err != nil {
		return nil, fmt.Errorf("gpt: NewTriad: GLP option1: %w", err)
	}
	glpDBO2, err := newCommFns(qc, icGLP, igGLP, commute.Option2, charges)
	if err != nil {
		return nil, fmt.Errorf("gpt: NewTriad: GLP option2: %w", err)
	}
	gsp, err := newCommFns(qc, icGSP, igGSP, commute.Option1, charges)
	if err != nil {
		return nil, fmt.Errorf("gpt: NewTriad: GSP: %w", err)
	}
	return &Triad{glpDBO1: glpDBO1, glpDBO2: glpDBO2, gsp: gsp}, nil
}

// CalculatePremium dispatches to the commutation object matching
// (glpOrGSP, dbopt): GSP always evaluates under option 1 regardless of the
// contract's own death benefit option, per the statutory GSP definition.
func (tr *Triad) CalculatePremium(glpOrGSP GLPOrGSP, dbopt commute.DBOption7702, sp ScalarParms) (float64, error) {
	if glpOrGSP == GSP {
		return tr.gsp.calculatePremium(GSP, sp)
	}
	if dbopt == commute.Option2 {
		return tr.glpDBO2.calculatePremium(GLP, sp)
	}
	return tr.glpDBO1.calculatePremium(GLP, sp)
}

// Length returns the number of durations the triad was built over.
func (tr *Triad) Length() int {
	return len(tr.glpDBO1.m)
}
