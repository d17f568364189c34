package mec

import (
	"math"
	"testing"
)

func floatEquals(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func flatVector(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestNewEngineOpensFirstPeriod(t *testing.T) {
	q := flatVector(20, 0.002)
	i := flatVector(20, 0.04)
	e, err := NewEngine(q, i, 100000)
	if err != nil {
		t.Fatal(err)
	}
	if e.OpenPeriodCount() != 1 {
		t.Errorf("expected 1 open period at issue, got %d", e.OpenPeriodCount())
	}
	pp, err := e.SevenPayPremiumAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if pp <= 0 {
		t.Errorf("expected positive seven-pay premium, got %v", pp)
	}
}

func TestNewEngineRejectsShortVectors(t *testing.T) {
	q := flatVector(3, 0.002)
	i := flatVector(3, 0.04)
	if _, err := NewEngine(q, i, 100000); err == nil {
		t.Error("expected error for insufficient rate vector length")
	}
}

func TestPayWithinLimitStaysNotMEC(t *testing.T) {
	q := flatVector(20, 0.002)
	i := flatVector(20, 0.04)
	e, err := NewEngine(q, i, 100000)
	if err != nil {
		t.Fatal(err)
	}
	pp, _ := e.SevenPayPremiumAt(0)
	if status := e.Pay(0, pp); status != NotMEC {
		t.Errorf("expected NotMEC paying exactly the seven-pay premium, got %v", status)
	}
}

func TestPayExceedingLimitFails(t *testing.T) {
	q := flatVector(20, 0.002)
	i := flatVector(20, 0.04)
	e, err := NewEngine(q, i, 100000)
	if err != nil {
		t.Fatal(err)
	}
	pp, _ := e.SevenPayPremiumAt(0)
	status := e.Pay(0, pp*2)
	if status != Failed {
		t.Errorf("expected Failed paying twice the seven-pay premium in one year, got %v", status)
	}
	if e.Status() != Failed {
		t.Errorf("expected lifetime status Failed, got %v", e.Status())
	}
}

func TestFailureIsPermanent(t *testing.T) {
	q := flatVector(20, 0.002)
	i := flatVector(20, 0.04)
	e, _ := NewEngine(q, i, 100000)
	pp, _ := e.SevenPayPremiumAt(0)
	e.Pay(0, pp*3)
	if e.Status() != Failed {
		t.Fatal("expected immediate failure")
	}
	// A year of zero premium afterward must not clear the determination.
	e.Pay(1, 0)
	if e.Status() != Failed {
		t.Errorf("expected failure to persist, got %v", e.Status())
	}
}

func TestMaterialChangeOpensAdditionalPeriod(t *testing.T) {
	q := flatVector(20, 0.002)
	i := flatVector(20, 0.04)
	e, err := NewEngine(q, i, 100000)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.MaterialChange(3, 200000); err != nil {
		t.Fatal(err)
	}
	if e.OpenPeriodCount() != 2 {
		t.Errorf("expected 2 open periods after a material change, got %d", e.OpenPeriodCount())
	}
	ppNew, err := e.SevenPayPremiumAt(3)
	if err != nil {
		t.Fatal(err)
	}
	ppOld, _ := e.SevenPayPremiumAt(0)
	if !(ppNew > ppOld) {
		t.Errorf("expected the larger post-change benefit to price a larger seven-pay premium: old=%v new=%v", ppOld, ppNew)
	}
}

func TestMaterialChangeDoesNotCureAnExistingFailure(t *testing.T) {
	q := flatVector(20, 0.002)
	i := flatVector(20, 0.04)
	e, _ := NewEngine(q, i, 100000)
	pp, _ := e.SevenPayPremiumAt(0)
	e.Pay(0, pp*3)
	if e.Status() != Failed {
		t.Fatal("expected immediate failure before the material change")
	}
	if err := e.MaterialChange(1, 500000); err != nil {
		t.Fatal(err)
	}
	e.Pay(1, 0)
	if e.Status() != Failed {
		t.Errorf("expected a material change to never clear an existing failure, got %v", e.Status())
	}
}

func TestAllowedThroughCapsAtSevenYears(t *testing.T) {
	p := &testingPeriod{startDuration: 0, sevenPP: 100}
	if got := p.allowedThrough(0); !floatEquals(got.InexactFloat64(), 100, 1e-9) {
		t.Errorf("year 1 allowed = %v, want 100", got)
	}
	if got := p.allowedThrough(6); !floatEquals(got.InexactFloat64(), 700, 1e-9) {
		t.Errorf("year 7 allowed = %v, want 700", got)
	}
	if got := p.allowedThrough(20); !floatEquals(got.InexactFloat64(), 700, 1e-9) {
		t.Errorf("year 21 allowed should still cap at 700, got %v", got)
	}
}

func TestBenefitDecreaseRepricesSevenPP(t *testing.T) {
	q := flatVector(20, 0.002)
	i := flatVector(20, 0.04)
	e, _ := NewEngine(q, i, 100000)
	ppBefore, _ := e.SevenPayPremiumAt(0)

	if err := e.BenefitDecrease(2, 50000); err != nil {
		t.Fatal(err)
	}
	ppAfter, _ := e.SevenPayPremiumAt(0)
	if !(ppAfter < ppBefore) {
		t.Errorf("expected a lower benefit to reprice a smaller seven-pay premium: before=%v after=%v", ppBefore, ppAfter)
	}
}

func TestBenefitDecreaseIgnoresSubsequentIncrease(t *testing.T) {
	q := flatVector(20, 0.002)
	i := flatVector(20, 0.04)
	e, _ := NewEngine(q, i, 100000)

	if err := e.BenefitDecrease(2, 50000); err != nil {
		t.Fatal(err)
	}
	ppLow, _ := e.SevenPayPremiumAt(0)
	if err := e.BenefitDecrease(3, 200000); err != nil {
		t.Fatal(err)
	}
	ppStillLow, _ := e.SevenPayPremiumAt(0)
	if ppLow != ppStillLow {
		t.Errorf("a subsequent increase must not undo the lowest-benefit repricing: low=%v after-increase=%v", ppLow, ppStillLow)
	}
}

func TestBenefitDecreaseCanTriggerFailure(t *testing.T) {
	q := flatVector(20, 0.002)
	i := flatVector(20, 0.04)
	e, _ := NewEngine(q, i, 100000)
	ppInitial, _ := e.SevenPayPremiumAt(0)
	e.Pay(0, ppInitial) // within the limit for the original, larger benefit

	if e.Status() != NotMEC {
		t.Fatal("expected the initial payment to stay within the original seven-pay limit")
	}
	if err := e.BenefitDecrease(1, 1000); err != nil {
		t.Fatal(err)
	}
	if e.Status() != Failed {
		t.Errorf("expected a sharp benefit decrease to push cumulative premiums over the repriced limit")
	}
}
