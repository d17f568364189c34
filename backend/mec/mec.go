// Package mec implements the IRC §7702A seven-pay test: the rolling
// testing-period machinery that determines whether a life insurance
// contract has become a modified endowment contract. It is grounded on
// lmi's Irc7702A class (ihs_irc7702a.hpp): a testing period opened at
// issue or at a material change, tracking cumulative premiums against a
// seven-pay benchmark premium priced off the lowest death benefit seen
// during that period, exactly as Irc7702A's TestBftDecrease/Determine7PP/
// DetermineLowestBft machinery does. Irc7702A folds monthly account-value
// bookkeeping (deemed cash value, necessary/unnecessary premium splits,
// corridor-adjusted benefit) into the same class; this package keeps only
// the seven-pay test itself and takes benefit and payment events from its
// caller, the same division of labor package gpt draws between its own
// engine and package commute's rate primitives.
package mec

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gpt7702/backend/gpt"
)

// Status is a contract's lifetime MEC determination. Once Failed, a
// contract never returns to NotMEC — §7702A(b) has no cure once the
// seven-pay limit is exceeded.
type Status int

const (
	NotMEC Status = iota
	Failed
)

func (s Status) String() string {
	if s == Failed {
		return "MEC"
	}
	return "not a MEC"
}

// testingPeriod is one rolling seven-year window opened at issue or at a
// material change. sevenPP is the benchmark premium, priced against
// lowestBenefit — the lowest death benefit seen since the period opened,
// per Irc7702A::DetermineLowestBft — and recomputed whenever the benefit
// decreases further. cumPremium is premiums paid since the period opened,
// rounded to cents the same way package gpt rounds cumulative
// §7702(f)(1)(A) premiums.
type testingPeriod struct {
	startDuration int
	sevenPP       float64
	lowestBenefit float64
	cumPremium    decimal.Decimal
}

// allowedThrough returns the cumulative premium ceiling at duration,
// relative to this period's start: the seven-pay premium times the
// number of contract years elapsed since the period opened, capped at
// seven years since no further premium is ever required after the
// period's end.
func (p *testingPeriod) allowedThrough(duration int) decimal.Decimal {
	years := duration - p.startDuration + 1
	if years > 7 {
		years = 7
	}
	if years < 0 {
		years = 0
	}
	return decimal.NewFromFloat(p.sevenPP * float64(years)).Truncate(2)
}

// Engine tracks every open testing period against a single contract's
// full-duration mortality and interest vectors, and the contract's
// lifetime MEC status.
type Engine struct {
	q []float64
	i []float64

	periods []*testingPeriod
	status  Status
}

// NewEngine opens the contract's first testing period at issue, pricing
// the seven-pay premium against the initial death benefit. q and i are
// the contract's full-duration mortality and guaranteed-interest
// vectors; at least seven years of each are required.
func NewEngine(q, i []float64, initialBenefit float64) (*Engine, error) {
	e := &Engine{q: q, i: i}
	if err := e.openPeriod(0, initialBenefit); err != nil {
		return nil, fmt.Errorf("mec: NewEngine: %w", err)
	}
	return e, nil
}

func (e *Engine) openPeriod(duration int, benefit float64) error {
	if duration < 0 || duration+7 > len(e.q) || duration+7 > len(e.i) {
		return fmt.Errorf("mec: openPeriod: insufficient rate vector length for a testing period starting at duration %d", duration)
	}
	sevenPP, err := gpt.SevenPayPremium(e.q[duration:], e.i[duration:], benefit)
	if err != nil {
		return fmt.Errorf("mec: openPeriod: %w", err)
	}
	e.periods = append(e.periods, &testingPeriod{startDuration: duration, sevenPP: sevenPP, lowestBenefit: benefit})
	return nil
}

// BenefitDecrease handles a death-benefit reduction at duration: every
// still-open testing period (one still within its seven-year window) has
// its benchmark premium recomputed against newBenefit if newBenefit is
// lower than any benefit already seen in that period, mirroring
// Irc7702A::TestBftDecrease and Determine7PP's retroactive repricing off
// DetermineLowestBft. A benefit increase is not a decrease and never
// reprices an existing period — it instead opens its own new period via
// MaterialChange.
func (e *Engine) BenefitDecrease(duration int, newBenefit float64) error {
	for _, p := range e.periods {
		if duration-p.startDuration > 6 {
			continue
		}
		if newBenefit >= p.lowestBenefit {
			continue
		}
		sevenPP, err := gpt.SevenPayPremium(e.q[p.startDuration:], e.i[p.startDuration:], newBenefit)
		if err != nil {
			return fmt.Errorf("mec: BenefitDecrease: %w", err)
		}
		p.lowestBenefit = newBenefit
		p.sevenPP = sevenPP
		if p.cumPremium.GreaterThan(p.allowedThrough(duration)) {
			e.status = Failed
		}
	}
	return nil
}

// MaterialChange opens a new seven-pay testing period at duration, priced
// against the benefit in force immediately after the change. Prior
// testing periods remain open and continue to accumulate premiums
// alongside the new one — a contract fails the moment any open period's
// limit is exceeded, per §7702A(c)(3)'s rule that a material change
// never cures an existing testing period's limit, it only adds another.
func (e *Engine) MaterialChange(duration int, newBenefit float64) error {
	return e.openPeriod(duration, newBenefit)
}

// Pay records a premium payment at duration against every open testing
// period and returns the contract's resulting status. The amount is
// rounded down to cents before it is accumulated. A period whose
// seven-year window has closed (duration beyond its start+6) no longer
// accrues or limits premiums; it stays in the engine's period list and
// is still counted by OpenPeriodCount.
func (e *Engine) Pay(duration int, amount float64) Status {
	pay := decimal.NewFromFloat(amount).Truncate(2)
	for _, p := range e.periods {
		if duration-p.startDuration > 6 {
			continue
		}
		p.cumPremium = p.cumPremium.Add(pay)
		if p.cumPremium.GreaterThan(p.allowedThrough(duration)) {
			e.status = Failed
		}
	}
	return e.status
}

// Status returns the contract's current lifetime MEC determination.
func (e *Engine) Status() Status {
	return e.status
}

// OpenPeriodCount reports how many testing periods a material-change
// history has accumulated, including periods whose seven-year window has
// since closed.
func (e *Engine) OpenPeriodCount() int {
	return len(e.periods)
}

// SevenPayPremiumAt returns the benchmark seven-pay premium priced for
// the testing period that opened at startDuration, or an error if no
// period opened at that duration.
func (e *Engine) SevenPayPremiumAt(startDuration int) (float64, error) {
	for _, p := range e.periods {
		if p.startDuration == startDuration {
			return p.sevenPP, nil
		}
	}
	return 0, fmt.Errorf("mec: SevenPayPremiumAt: no testing period opened at duration %d", startDuration)
}
