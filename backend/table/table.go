// Package table reads SOA-format actuarial mortality tables: aggregate
// tables indexed by attained age, and select-and-ultimate tables indexed by
// both issue age and duration, with three strategies for handling an
// inforce contract whose effective underwriting age has moved since issue.
package table

import "fmt"

// Table holds one parsed mortality table, either aggregate
// (SelectPeriod == 0) or select-and-ultimate (SelectPeriod > 0).
type Table struct {
	Number       int32
	Name         string
	MinAge       int
	MaxAge       int
	SelectPeriod int
	MaxSelectAge int

	// Ultimate holds q[attained_age] for attained_age in [MinAge, MaxAge],
	// used directly for aggregate tables and for durations at or beyond
	// SelectPeriod in select-and-ultimate tables.
	Ultimate []float64

	// SelectRates[i] holds the select-period rates for issue age
	// MinAge+i, for i in [0, MaxSelectAge-MinAge]. Each row has
	// SelectPeriod entries. Empty for aggregate tables.
	SelectRates [][]float64
}

// IsSelectAndUltimate reports whether t has a nonzero select period.
func (t *Table) IsSelectAndUltimate() bool {
	return t.SelectPeriod > 0
}

func (t *Table) validateIssueAge(issueAge int) error {
	if issueAge < t.MinAge || issueAge > t.MaxAge {
		return fmt.Errorf("table: issue age %d outside [%d, %d]", issueAge, t.MinAge, t.MaxAge)
	}
	return nil
}

func (t *Table) validateLength(issueAge, length int) error {
	if length < 0 || length > 1+t.MaxAge-issueAge {
		return fmt.Errorf("table: length %d invalid for issue age %d (max %d)", length, issueAge, 1+t.MaxAge-issueAge)
	}
	return nil
}

// Values returns the `length` mortality rates for a contract issued at
// issueAge, using the plain (never re-enters the select period) lookup.
//
// For select-and-ultimate tables with issueAge beyond MaxSelectAge, the
// issue age is walked back to MaxSelectAge and the select row is then
// stepped forward by the difference, which is how lmi's "re-enter never"
// semantics fall naturally out of select-table structure: an
// already-substandard issue age simply starts partway through the nearest
// available select row.
func (t *Table) Values(issueAge, length int) ([]float64, error) {
	if err := t.validateIssueAge(issueAge); err != nil {
		return nil, err
	}
	if err := t.validateLength(issueAge, length); err != nil {
		return nil, err
	}

	if !t.IsSelectAndUltimate() {
		out := make([]float64, length)
		copy(out, t.Ultimate[issueAge-t.MinAge:issueAge-t.MinAge+length])
		return out, nil
	}

	effectiveIssueAge := issueAge
	shift := 0
	if effectiveIssueAge > t.MaxSelectAge {
		shift = effectiveIssueAge - t.MaxSelectAge
		effectiveIssueAge = t.MaxSelectAge
	}
	row := t.SelectRates[effectiveIssueAge-t.MinAge]

	out := make([]float64, length)
	for d := 0; d < length; d++ {
		duration := d + shift
		if duration < t.SelectPeriod {
			out[d] = row[duration]
			continue
		}
		attainedAge := effectiveIssueAge + duration
		out[d] = t.Ultimate[attainedAge-t.MinAge]
	}
	return out, nil
}

// ReenterMethod selects one of the three extended select-table lookup
// strategies used for inforce contracts.
type ReenterMethod int

const (
	// ReenterNever is the default plain lookup; it must be invoked through
	// Values, not ValuesElaborate.
	ReenterNever ReenterMethod = iota
	// ReenterAtInforceDuration treats the inforce duration as a fresh
	// issue: rates start over at (issueAge + inforceDuration) with a full
	// new select period, and the leading inforceDuration positions of the
	// returned vector are zero-filled (the contract was already inforce
	// for those durations under different terms).
	ReenterAtInforceDuration
	// ReenterUponRateReset shifts the effective issue age by resetDuration
	// relative to the contract's current duration: a positive
	// resetDuration represents an age setback available only after the
	// contract has been inforce that long, and the leading resetDuration
	// positions are zero-filled; a negative resetDuration (re-entering at
	// an older effective age) fills the whole vector, clamped so the
	// effective age never drops below the table's minimum age.
	ReenterUponRateReset
)

// ValuesElaborate implements the two extended select-table lookup
// strategies, ReenterAtInforceDuration and ReenterUponRateReset, as
// described on those constants. ReenterNever is rejected here
// deliberately: it is the plain interface's job, not this one's.
func (t *Table) ValuesElaborate(method ReenterMethod, issueAge, inforceDuration, resetDuration, length int) ([]float64, error) {
	switch method {
	case ReenterNever:
		return nil, fmt.Errorf("table: reenter_never must be invoked through Values, not ValuesElaborate")

	case ReenterAtInforceDuration:
		newIssueAge := issueAge + inforceDuration
		if newIssueAge > t.MaxAge {
			return nil, fmt.Errorf("table: inforce duration %d pushes issue age %d past max age %d", inforceDuration, issueAge, t.MaxAge)
		}
		tailLen := length - inforceDuration
		if tailLen < 0 {
			tailLen = 0
		}
		tail, err := t.Values(newIssueAge, minInt(tailLen, 1+t.MaxAge-newIssueAge))
		if err != nil {
			return nil, err
		}
		out := make([]float64, length)
		copy(out[inforceDuration:], tail)
		return out, nil

	case ReenterUponRateReset:
		if resetDuration > inforceDuration {
			return nil, fmt.Errorf("table: reset duration %d exceeds inforce duration %d", resetDuration, inforceDuration)
		}
		effectiveAge := issueAge + inforceDuration - resetDuration
		if effectiveAge < t.MinAge {
			effectiveAge = t.MinAge
		}
		pad := 0
		if resetDuration > 0 {
			pad = resetDuration
		}
		tailLen := length - pad
		if tailLen < 0 {
			tailLen = 0
		}
		if tailLen > 1+t.MaxAge-effectiveAge {
			tailLen = 1 + t.MaxAge - effectiveAge
		}
		tail, err := t.Values(effectiveAge, tailLen)
		if err != nil {
			return nil, err
		}
		out := make([]float64, length)
		copy(out[pad:], tail)
		return out, nil

	default:
		return nil, fmt.Errorf("table: unknown reenter method %d", method)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
