package gpt

import (
	"gpt7702/backend/commute"
	"gpt7702/backend/rootfind"
)

// SpecAmtParams bundles the inputs InvertSpecAmt needs beyond the
// specified amount itself: everything in ScalarParms that does not depend
// on specamt, plus the caller's rule for rebuilding the specamt-dependent
// fields (face amount, endowment benefit, charge base, QAB amounts that
// scale with specamt) for a trial specamt value.
type SpecAmtParams struct {
	Triad         *Triad
	GLPOrGSP      GLPOrGSP
	DBOpt         commute.DBOption7702
	Duration      int
	Premium       float64
	MinIssueSpecAmt float64
	MaxSpecAmt      float64
	Decimals        int32

	// BuildScalarParms produces the duration's ScalarParms for a trial
	// specified amount S, applying whatever caps and relationships
	// (target premium, ADD charge basis, specamt load base) depend on S
	// for this product.
	BuildScalarParms func(specAmt float64) ScalarParms
}

// InvertSpecAmt finds the specified amount S such that
// CalculatePremium(GLPOrGSP, DBOpt, BuildScalarParms(S)) equals Premium,
// searching [MinIssueSpecAmt, MaxSpecAmt] with decimal_root biased toward
// the higher root (so that a qualifying contract never ends up
// underfunded by a rounding hair). If the search range fails to bracket a
// root, MinIssueSpecAmt is returned, matching gpt_specamt's
// root-not-bracketed behavior.
func InvertSpecAmt(p SpecAmtParams) (float64, rootfind.Validity) {
	objective := func(specAmt float64) float64 {
		sp := p.BuildScalarParms(specAmt)
		premium, err := p.Triad.CalculatePremium(p.GLPOrGSP, p.DBOpt, sp)
		if err != nil {
			panic(err)
		}
		return premium - p.Premium
	}

	res := rootfind.DecimalRoot(objective, p.MinIssueSpecAmt, p.MaxSpecAmt, rootfind.BiasHigher, p.Decimals, rootfind.NoSprauchlingLimit)
	if res.Validity != rootfind.ValidityConverged {
		return p.MinIssueSpecAmt, res.Validity
	}
	return res.Root, res.Validity
}
