package gpt

import (
	"fmt"

	"gpt7702/backend/commute"
	"gpt7702/backend/table"
)

// CSOEra identifies which generation of Commissioners' Standard Ordinary
// mortality table a product is rated on.
type CSOEra int

const (
	CSO1980 CSOEra = 1980
	CSO2001 CSOEra = 2001
	CSO2017 CSOEra = 2017
)

// Gender and Smoker select the CSO sub-table; Unisex and Unismoke collapse
// the distinction for products that do not rate on it.
type Gender int

const (
	Male Gender = iota
	Female
	Unisex
)

type Smoker int

const (
	NonSmoker Smoker = iota
	SmokerRated
	Unismoke
)

// AgeBasis selects how a contract's nominal age is derived from birthdate:
// age last birthday, or age nearest birthday with ties resolved toward the
// younger or older age. This is lmi's alb_or_anb.
type AgeBasis int

const (
	AgeLastBirthday AgeBasis = iota
	AgeNearestTiesYounger
	AgeNearestTiesOlder
)

// Autopisty selects which published edition of a CSO table cell applies:
// "orthodox" tables are the values as promulgated; "heterodox" tables are
// an alternative smoother or extrapolated variant some jurisdictions or
// products elect instead. This is lmi's autopisty knob (spec §6):
// cso_table() takes it as a distinct axis from cso_era, alongside
// alb_or_anb, gender, and smoking — each combination of all five selects a
// genuinely different published table, not just a different view onto one.
type Autopisty int

const (
	Orthodox Autopisty = iota
	Heterodox
)

// TableKey identifies one cell of the CSO table cube: era, age basis,
// autopisty variant, gender, and smoker distinction together select a
// single published table, mirroring lmi's
// cso_table(cso_era, autopisty, alb_or_anb, gender, smoking, ...).
type TableKey struct {
	Era       CSOEra
	AgeBasis  AgeBasis
	Autopisty Autopisty
	Gender    Gender
	Smoker    Smoker
}

// TableRegistry maps a CSO table cube cell to the loaded SOA table that
// supplies its q-vector.
type TableRegistry map[TableKey]*table.Table

// BuildCSOQVector selects the table matching key — era, age basis,
// autopisty, gender, and smoker together identify one published CSO table
// — and returns the q-vector of length `length` starting at issueAge.
func BuildCSOQVector(registry TableRegistry, key TableKey, issueAge, length int) ([]float64, error) {
	tbl, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("gpt: BuildCSOQVector: no table registered for %+v", key)
	}
	return tbl.Values(issueAge, length)
}

// cvatCorridorPercent is the §7702(d)(2) corridor percentage schedule by
// attained age, expressed as percent of cash value. Ages beyond the last
// entry use the final (100%) value.
var cvatCorridorPercent = []struct {
	age     int
	percent float64
}{
	{40, 250}, {41, 243}, {42, 236}, {43, 229}, {44, 222}, {45, 215}, {46, 209}, {47, 203},
	{48, 197}, {49, 191}, {50, 185}, {51, 178}, {52, 171}, {53, 164}, {54, 157}, {55, 150},
	{56, 146}, {57, 142}, {58, 138}, {59, 134}, {60, 130}, {61, 128}, {62, 126}, {63, 124},
	{64, 122}, {65, 120}, {66, 119}, {67, 118}, {68, 117}, {69, 116}, {70, 115}, {71, 113},
	{72, 111}, {73, 109}, {74, 107}, {75, 105}, {76, 105}, {77, 105}, {78, 105}, {79, 105},
	{80, 105}, {81, 104}, {82, 103}, {83, 102}, {84, 101}, {85, 100},
}

// CVATCorridorFactor returns the §7702(d)(2) corridor factor — the
// multiple of cash value the death benefit must equal or exceed — for the
// given attained age. Ages 0-40 use 250%; ages past the schedule's last
// entry use 100%.
func CVATCorridorFactor(attainedAge int) float64 {
	if attainedAge <= 40 {
		return 2.5
	}
	for _, row := range cvatCorridorPercent {
		if attainedAge <= row.age {
			return row.percent / 100
		}
	}
	return 1.0
}

// SevenPayPremium computes the §7702A benchmark level premium: the
// premium P such that seven level annual payments of P, accumulated at
// the product's guaranteed rate against CSO mortality, would exactly fund
// the endowment benefit at maturity under a whole-life net premium
// equivalence — the same equivalence-of-PVs structure as a net premium
// calculation, restricted to a 7-year horizon via the ordinary-life
// commutation functions.
func SevenPayPremium(q, i []float64, endowmentBenefit float64) (float64, error) {
	if len(q) < 7 || len(i) < 7 {
		return 0, fmt.Errorf("gpt: SevenPayPremium: need at least 7 years of rates, got %d", len(q))
	}
	ol, err := commute.NewOL(q, i)
	if err != nil {
		return 0, fmt.Errorf("gpt: SevenPayPremium: %w", err)
	}
	n := len(ol.D)
	benefitsPV := ol.M[0] + ol.ED[n-1]
	annuityPV := ol.N[0] - safeN(ol, 7)
	if annuityPV <= 0 {
		return 0, fmt.Errorf("gpt: SevenPayPremium: degenerate annuity value")
	}
	return endowmentBenefit * benefitsPV / annuityPV, nil
}

func safeM(ol *commute.OL, t int) float64 {
	if t >= len(ol.M) {
		return 0
	}
	return ol.M[t]
}

func safeN(ol *commute.OL, t int) float64 {
	if t >= len(ol.N) {
		return 0
	}
	return ol.N[t]
}
