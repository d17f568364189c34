package actuarial

// Policy is the full underwriting-aware policy record the service layer
// works with; PolicyHolder remains the narrower record the commutation
// math in core.go actually needs.
type Policy struct {
	Age            int
	Term           int
	CoverageAmount float64
	InterestRate   float64
	Gender         string
	ProductType    string
	SmokerStatus   string
	HealthRating   string
	RatingFactor   float64
	DeferralPeriod int
}

// PremiumCalculation is the full premium result the service layer
// returns: net premium and reserve schedule from the commutation math,
// gross premium after loading, and the underwriting detail the portfolio
// and sensitivity endpoints aggregate over.
type PremiumCalculation struct {
	NetPremium       float64
	GrossPremium     float64
	ReserveSchedule  []float64
	ProductType      string
	ExpenseDetails   map[string]float64
	AnnualPayout     float64
	TotalPremiumCost float64
	UnderwritingInfo map[string]interface{}
	RiskAssessment   map[string]float64
}

// ExpenseStructure defines expense and profit loads applied to a net
// premium to produce a gross premium.
type ExpenseStructure struct {
	InitialExpenseRate float64
	RenewalExpenseRate float64
	MaintenanceExpense float64
	ProfitMargin       float64
}

// DefaultExpenseStructure returns a generic expense load: a heavier
// first-year acquisition expense, a lighter renewal expense, a small flat
// per-policy maintenance expense, and a profit margin loaded on top.
func DefaultExpenseStructure() ExpenseStructure {
	return ExpenseStructure{
		InitialExpenseRate: 0.50,
		RenewalExpenseRate: 0.05,
		MaintenanceExpense: 25,
		ProfitMargin:       0.10,
	}
}

// GrossPremium loads a net premium with acquisition, renewal, maintenance,
// and profit-margin expenses. The first-year and renewal expense rates
// are averaged over the term's years (without discounting), and that
// average plus the profit margin is applied as a multiplicative load on
// netPremium; MaintenanceExpense is then added in full.
func GrossPremium(p *PolicyHolder, table MortalityTable, netPremium float64, expenses ExpenseStructure) float64 {
	if p.Term <= 0 {
		return netPremium
	}
	avgExpenseRate := (expenses.InitialExpenseRate + expenses.RenewalExpenseRate*float64(p.Term-1)) / float64(p.Term)
	loaded := netPremium * (1 + avgExpenseRate + expenses.ProfitMargin)
	return loaded + expenses.MaintenanceExpense
}

func toPolicyHolder(p *Policy) PolicyHolder {
	return PolicyHolder{
		Age:          p.Age,
		Term:         p.Term,
		SumAssured:   p.CoverageAmount,
		InterestRate: p.InterestRate,
		TableName:    p.Gender,
	}
}

// CalculateFullPremium runs the net premium and reserve calculation for
// policy against table, loads a gross premium with the default expense
// structure, and assembles underwriting and crude risk-assessment detail
// from the policy's rating fields.
func CalculateFullPremium(p *Policy, table MortalityTable) PremiumCalculation {
	holder := toPolicyHolder(p)
	netPremium := NetPremium(&holder, table)
	reserves := NetPremiumReserves(&holder, table, netPremium)
	expenses := DefaultExpenseStructure()
	grossPremium := GrossPremium(&holder, table, netPremium, expenses)

	expenseDetails := map[string]float64{
		"initial_expense_rate": expenses.InitialExpenseRate,
		"renewal_expense_rate": expenses.RenewalExpenseRate,
		"maintenance_expense":  expenses.MaintenanceExpense,
		"profit_margin":        expenses.ProfitMargin,
	}

	underwriting := map[string]interface{}{
		"smoker_status":   p.SmokerStatus,
		"health_rating":   p.HealthRating,
		"rating_factor":   p.RatingFactor,
		"deferral_period": p.DeferralPeriod,
	}

	riskFactor := p.RatingFactor
	if riskFactor == 0 {
		riskFactor = 1.0
	}
	risk := map[string]float64{
		"rating_factor":    riskFactor,
		"adjusted_premium": netPremium * riskFactor,
	}

	return PremiumCalculation{
		NetPremium:       netPremium,
		GrossPremium:     grossPremium,
		ReserveSchedule:  reserves,
		ProductType:      p.ProductType,
		ExpenseDetails:   expenseDetails,
		AnnualPayout:     p.CoverageAmount / float64(maxInt(p.Term, 1)),
		TotalPremiumCost: grossPremium * float64(p.Term),
		UnderwritingInfo: underwriting,
		RiskAssessment:   risk,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
