package gpt

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gpt7702/backend/commute"
)

// DefnLifeIns is the contract's §7702 definition-of-life-insurance
// election. Only DefnGPT actually constrains premiums; DefnCVAT and
// DefnNone make every GPT operation a no-op, per spec §4.6's "CVAT mode"
// short-circuit.
type DefnLifeIns int

const (
	DefnCVAT DefnLifeIns = iota
	DefnGPT
	DefnNone
)

func roundDownCents(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x).Truncate(2)
}

// Engine is the per-contract GPT state machine: gpt7702's unrounded
// binary64 accumulators for GLP/GSP, its rounded-currency bookkeeping of
// cumulative premiums paid, and its queue of pending transactions.
type Engine struct {
	triad *Triad
	defn  DefnLifeIns

	// Unrounded accumulators. Kept as float64, never rounded, because
	// rounding on every update would accumulate drift over a century of
	// contract life; only the guideline limit derived from them is
	// rounded, at the moment it is compared against cumulative premiums.
	glp    float64
	cumGLP float64
	gsp    float64

	cumF1A         decimal.Decimal
	forceoutAmount decimal.Decimal
	rejectedPmt    decimal.Decimal

	sParms             ScalarParms
	duration           int
	fractionalDuration float64

	exch1035Pending     bool
	exch1035Amount      float64
	f1ADecreasePending  bool
	f1ADecreaseAmount   float64
	adjEventPending     bool
	adjEventNewParms    ScalarParms
}

// NewEngine constructs an engine bound to triad under the given
// definition-of-life-insurance election. The engine must then be brought
// to a starting state with InitializeGPT before any other operation.
func NewEngine(triad *Triad, defn DefnLifeIns) *Engine {
	return &Engine{triad: triad, defn: defn}
}

// IsIssuedToday reports whether the contract is at its very first moment:
// duration 0 and no elapsed fraction of the first year.
func (e *Engine) IsIssuedToday() bool {
	return e.duration == 0 && e.fractionalDuration == 0
}

// GuidelineLimit is round-down-to-cents(max(cum_glp, gsp)), the ceiling
// cumulative premiums paid under §7702(f)(1)(A) may never exceed.
func (e *Engine) GuidelineLimit() decimal.Decimal {
	limit := e.cumGLP
	if e.gsp > limit {
		limit = e.gsp
	}
	return roundDownCents(limit)
}

func (e *Engine) assertWithinLimit() {
	if e.defn != DefnGPT {
		return
	}
	if e.cumF1A.GreaterThan(e.GuidelineLimit()) {
		panic(fmt.Sprintf("gpt: invariant violated: cum_f1A %s exceeds guideline limit %s", e.cumF1A, e.GuidelineLimit()))
	}
}

// RawGLP, RawCumGLP, and RawGSP expose the unrounded accumulators for
// diagnostic use, per spec §6.
func (e *Engine) RawGLP() float64    { return e.glp }
func (e *Engine) RawCumGLP() float64 { return e.cumGLP }
func (e *Engine) RawGSP() float64    { return e.gsp }

// RoundedGLP, RoundedCumGLP, and RoundedGSP round the corresponding
// unrounded accumulator down to cents.
func (e *Engine) RoundedGLP() decimal.Decimal    { return roundDownCents(e.glp) }
func (e *Engine) RoundedCumGLP() decimal.Decimal { return roundDownCents(e.cumGLP) }
func (e *Engine) RoundedGSP() decimal.Decimal    { return roundDownCents(e.gsp) }

// CumF1A returns cumulative premiums paid net of nontaxable distributions
// under §7702(f)(1)(A).
func (e *Engine) CumF1A() decimal.Decimal { return e.cumF1A }

// InitializeGPT brings the engine to its starting state. If the contract
// is issued today (duration 0, fractionalDuration 0), GLP and GSP are
// computed from first principles via the commutation triad; otherwise the
// caller-supplied inforce values are accepted as-is, and if
// fractionalDuration is exactly 0 (an exact anniversary), cum_glp is
// advanced by one annual step before returning.
func (e *Engine) InitializeGPT(defn DefnLifeIns, fractionalDuration float64, inforceGLP, inforceCumGLP, inforceGSP, inforceCumF1A float64, parms ScalarParms) error {
	e.defn = defn
	e.fractionalDuration = fractionalDuration
	e.duration = parms.Duration
	e.sParms = parms
	e.cumF1A = roundDownCents(inforceCumF1A)

	if e.duration == 0 && fractionalDuration == 0 {
		glp, err := e.triad.CalculatePremium(GLP, parms.DBOpt, parms)
		if err != nil {
			return fmt.Errorf("gpt: InitializeGPT: %w", err)
		}
		gsp, err := e.triad.CalculatePremium(GSP, parms.DBOpt, parms)
		if err != nil {
			return fmt.Errorf("gpt: InitializeGPT: %w", err)
		}
		e.glp = glp
		e.gsp = gsp
		e.cumGLP = glp
	} else {
		e.glp = inforceGLP
		e.gsp = inforceGSP
		e.cumGLP = inforceCumGLP
		if fractionalDuration == 0 {
			e.cumGLP += e.glp
		}
	}

	if e.defn == DefnGPT && e.cumF1A.GreaterThan(e.GuidelineLimit()) {
		return fmt.Errorf("gpt: InitializeGPT: postcondition violated: cum_f1A %s exceeds guideline limit %s", e.cumF1A, e.GuidelineLimit())
	}
	return nil
}

// EnqueueExch1035 records a pending 1035 exchange of the given gross
// amount, to be applied on the next UpdateGPT call.
func (e *Engine) EnqueueExch1035(grossAmount float64) error {
	if grossAmount <= 0 {
		return fmt.Errorf("gpt: EnqueueExch1035: amount must be positive")
	}
	if e.exch1035Pending {
		return fmt.Errorf("gpt: EnqueueExch1035: an exchange is already queued")
	}
	e.exch1035Pending = true
	e.exch1035Amount = grossAmount
	return nil
}

// EnqueueF1ADecrease records a pending decrease to cumulative
// §7702(f)(1)(A) premiums paid, e.g. from a nontaxable withdrawal.
func (e *Engine) EnqueueF1ADecrease(decrement float64) error {
	if decrement <= 0 {
		return fmt.Errorf("gpt: EnqueueF1ADecrease: amount must be positive")
	}
	if e.f1ADecreasePending {
		return fmt.Errorf("gpt: EnqueueF1ADecrease: a decrease is already queued")
	}
	e.f1ADecreasePending = true
	e.f1ADecreaseAmount = decrement
	return nil
}

// EnqueueAdjEvent records a pending A+B−C guideline adjustment (from a
// death benefit option change, specified amount change, or QAB amount
// change). The new scalar parameters are snapshotted now and applied when
// UpdateGPT runs.
func (e *Engine) EnqueueAdjEvent(newParms ScalarParms) error {
	if e.adjEventPending {
		return fmt.Errorf("gpt: EnqueueAdjEvent: an adjustment event is already queued")
	}
	e.adjEventPending = true
	e.adjEventNewParms = newParms
	return nil
}

// adjustGuidelines implements the A+B−C formula for both GLP and GSP: A is
// the currently stored premium, B is the premium recomputed at the
// current duration under the new parameters, and C is the premium
// recomputed at the current duration under the old parameters.
func (e *Engine) adjustGuidelines(newParms ScalarParms) error {
	oldParms := e.sParms
	oldParms.Duration = newParms.Duration

	bGLP, err := e.triad.CalculatePremium(GLP, newParms.DBOpt, newParms)
	if err != nil {
		return err
	}
	cGLP, err := e.triad.CalculatePremium(GLP, oldParms.DBOpt, oldParms)
	if err != nil {
		return err
	}
	e.glp = e.glp + bGLP - cGLP

	bGSP, err := e.triad.CalculatePremium(GSP, newParms.DBOpt, newParms)
	if err != nil {
		return err
	}
	cGSP, err := e.triad.CalculatePremium(GSP, oldParms.DBOpt, oldParms)
	if err != nil {
		return err
	}
	e.gsp = e.gsp + bGSP - cGSP

	e.sParms = newParms
	return nil
}

// UpdateGPT processes all pending transactions in the fixed dequeue order
// — f1A decrease, 1035 exchange, adjustment event, annual increment,
// forceout — and returns the amount forced out. Callers must have
// combined every event occurring on the same calendar day into this
// single call; the engine has no way to undo a committed update.
func (e *Engine) UpdateGPT(parms ScalarParms, fractionalDuration float64, f2AValue float64) (decimal.Decimal, error) {
	if e.defn != DefnGPT {
		e.fractionalDuration = fractionalDuration
		e.duration = parms.Duration
		e.sParms = parms
		return decimal.Zero, nil
	}

	newYear := false
	if fractionalDuration == 0 && parms.Duration == e.duration+1 {
		newYear = true
		e.duration = parms.Duration
	} else if parms.Duration != e.duration {
		panic(fmt.Sprintf("gpt: UpdateGPT: duration jumped from %d to %d off-anniversary", e.duration, parms.Duration))
	}
	e.fractionalDuration = fractionalDuration

	if e.f1ADecreasePending {
		e.cumF1A = e.cumF1A.Sub(roundDownCents(e.f1ADecreaseAmount))
		e.f1ADecreasePending = false
		e.f1ADecreaseAmount = 0
	}

	if e.exch1035Pending {
		if !e.IsIssuedToday() && e.duration != 0 {
			return decimal.Zero, fmt.Errorf("gpt: UpdateGPT: 1035 exchange precondition violated: not at issue")
		}
		amt := roundDownCents(e.exch1035Amount)
		if amt.GreaterThan(e.GuidelineLimit()) {
			return decimal.Zero, fmt.Errorf("gpt: UpdateGPT: 1035 exchange %s exceeds guideline limit %s", amt, e.GuidelineLimit())
		}
		e.cumF1A = e.cumF1A.Add(amt)
		e.exch1035Pending = false
		e.exch1035Amount = 0
	}

	if e.adjEventPending {
		if err := e.adjustGuidelines(e.adjEventNewParms); err != nil {
			return decimal.Zero, fmt.Errorf("gpt: UpdateGPT: adjustment event: %w", err)
		}
		e.adjEventPending = false
	} else {
		e.sParms = parms
	}

	if newYear {
		e.cumGLP += e.glp
	}

	forceout := e.forceOut(f2AValue)
	e.assertWithinLimit()
	return forceout, nil
}

// AcceptPayment returns the accepted and rejected portions of payment.
// Under CVAT or no §7702 definition, the full payment is always accepted.
func (e *Engine) AcceptPayment(payment float64) (accepted, rejected decimal.Decimal) {
	pay := decimal.NewFromFloat(payment)
	if e.defn != DefnGPT {
		e.cumF1A = e.cumF1A.Add(pay)
		return pay, decimal.Zero
	}

	allowed := e.GuidelineLimit().Sub(e.cumF1A)
	if allowed.IsNegative() {
		allowed = decimal.Zero
	}
	accepted = pay
	if pay.GreaterThan(allowed) {
		accepted = allowed
	}
	rejected = pay.Sub(accepted)
	e.cumF1A = e.cumF1A.Add(accepted)
	e.rejectedPmt = rejected
	e.assertWithinLimit()
	return accepted, rejected
}

// forceOut returns the amount forced out of cumulative §7702(f)(1)(A)
// premiums to bring the contract back within the guideline limit,
// bounded by the §7702(f)(2)(A) cash value available, f2AValue.
func (e *Engine) forceOut(f2AValue float64) decimal.Decimal {
	if e.defn != DefnGPT {
		return decimal.Zero
	}
	limit := e.GuidelineLimit()
	if !e.cumF1A.GreaterThan(limit) {
		return decimal.Zero
	}
	excess := e.cumF1A.Sub(limit)
	cashValue := decimal.NewFromFloat(f2AValue)
	forceout := excess
	if cashValue.LessThan(excess) {
		forceout = cashValue
	}
	e.cumF1A = e.cumF1A.Sub(forceout)
	e.forceoutAmount = forceout
	return forceout
}

// ForceOut is exported for callers that need to trigger a forceout outside
// the normal UpdateGPT sequence (e.g. an explicit distribution request).
func (e *Engine) ForceOut(f2AValue float64) decimal.Decimal {
	fo := e.forceOut(f2AValue)
	e.assertWithinLimit()
	return fo
}

// DBOpt returns the death benefit option currently in force.
func (e *Engine) DBOpt() commute.DBOption7702 {
	return e.sParms.DBOpt
}

// CurrentParms returns the scalar parameters last applied to the
// contract, for callers (such as the specified-amount solver) that need
// to hold every benefit fixed except the one dimension under test.
func (e *Engine) CurrentParms() ScalarParms {
	return e.sParms
}

// Duration returns the contract's current duration.
func (e *Engine) Duration() int {
	return e.duration
}

// Triad returns the commutation triad the engine was built against.
func (e *Engine) Triad() *Triad {
	return e.triad
}
