package models

// VectorChargesRequest mirrors gpt.VectorParms over the wire: the
// per-duration charge vectors a product supplies once at issue.
type VectorChargesRequest struct {
	TargetLoad       []float64 `json:"target_load"`
	ExcessLoad       []float64 `json:"excess_load"`
	MonthlyPolicyFee []float64 `json:"monthly_policy_fee"`
	AnnualPolicyFee  []float64 `json:"annual_policy_fee"`
	SpecAmtLoad      []float64 `json:"spec_amt_load"`
	QABGIORate       []float64 `json:"qab_gio_rate,omitempty"`
	QABADBRate       []float64 `json:"qab_adb_rate,omitempty"`
	QABTermRate      []float64 `json:"qab_term_rate,omitempty"`
	QABSpouseRate    []float64 `json:"qab_spouse_rate,omitempty"`
	QABChildRate     []float64 `json:"qab_child_rate,omitempty"`
	QABWaiverRate    []float64 `json:"qab_waiver_rate,omitempty"`
}

// ScalarBenefitsRequest mirrors gpt.ScalarParms' transaction-time fields,
// excluding Duration and DBOpt: Duration comes from the enclosing
// request, and DBOpt from IssueContractRequest at issue or from the
// contract's existing option on an anniversary.
type ScalarBenefitsRequest struct {
	F3Benefit         float64 `json:"f3_benefit" validate:"min=0"`
	EndowmentBenefit  float64 `json:"endowment_benefit" validate:"min=0"`
	TargetPremium     float64 `json:"target_premium" validate:"min=0"`
	ChargeSpecAmtBase float64 `json:"charge_spec_amt_base" validate:"min=0"`
	QABGIOAmount      float64 `json:"qab_gio_amount,omitempty"`
	QABADBAmount      float64 `json:"qab_adb_amount,omitempty"`
	QABTermAmount     float64 `json:"qab_term_amount,omitempty"`
	QABSpouseAmount   float64 `json:"qab_spouse_amount,omitempty"`
	QABChildAmount    float64 `json:"qab_child_amount,omitempty"`
	QABWaiverAmount   float64 `json:"qab_waiver_amount,omitempty"`
}

// IssueContractRequest contains everything needed to price a GPT
// commutation triad and bring a new contract's engine to its starting
// state: the mortality/interest rate vectors, charge structure, death
// benefit option, definition of life insurance, and (for contracts not
// issued today) the inforce values carried over from a prior system.
type IssueContractRequest struct {
	ContractID string  `json:"contract_id" validate:"required"`
	DefnLifeIns string `json:"defn_life_ins" validate:"required"` // "gpt", "cvat", or "none"
	DBOpt      string  `json:"db_opt" validate:"required"`        // "option1" or "option2"

	MortalityRates []float64 `json:"mortality_rates" validate:"required"`
	ICGLPRates     []float64 `json:"ic_glp_rates" validate:"required"`
	IGGLPRates     []float64 `json:"ig_glp_rates" validate:"required"`
	ICGSPRates     []float64 `json:"ic_gsp_rates" validate:"required"`
	IGGSPRates     []float64 `json:"ig_gsp_rates" validate:"required"`
	Charges        VectorChargesRequest `json:"charges"`

	Duration           int     `json:"duration"`
	FractionalDuration float64 `json:"fractional_duration,omitempty"`
	InforceGLP         float64 `json:"inforce_glp,omitempty"`
	InforceCumGLP      float64 `json:"inforce_cum_glp,omitempty"`
	InforceGSP         float64 `json:"inforce_gsp,omitempty"`
	InforceCumF1A      float64 `json:"inforce_cum_f1a,omitempty"`

	Benefits ScalarBenefitsRequest `json:"benefits"`
}

// ContractStateResponse reports a contract's current GPT bookkeeping.
type ContractStateResponse struct {
	ContractID      string  `json:"contract_id"`
	GLP             float64 `json:"glp"`
	CumGLP          float64 `json:"cum_glp"`
	GSP             float64 `json:"gsp"`
	GuidelineLimit  string  `json:"guideline_limit"`
	CumF1A          string  `json:"cum_f1a"`
}

// PaymentRequest is a premium payment offered to a contract's engine.
type PaymentRequest struct {
	ContractID string  `json:"contract_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"min=0"`
}

// PaymentResponse reports how a payment was split between accepted and
// §7702(f)(1)(A)-rejected amounts.
type PaymentResponse struct {
	ContractID string `json:"contract_id"`
	Accepted   string `json:"accepted"`
	Rejected   string `json:"rejected"`
	CumF1A     string `json:"cum_f1a"`
}

// AnniversaryRequest advances a contract's engine to a new duration,
// optionally carrying a new benefit schedule (a death benefit, specified
// amount, or QAB change) and the §7702(f)(2)(A) cash value available to
// satisfy any resulting forceout.
type AnniversaryRequest struct {
	ContractID         string                 `json:"contract_id" validate:"required"`
	Duration           int                    `json:"duration"`
	FractionalDuration float64                `json:"fractional_duration,omitempty"`
	F2AValue           float64                `json:"f2a_value"`
	Benefits           *ScalarBenefitsRequest `json:"benefits,omitempty"`
}

// AnniversaryResponse reports the result of advancing a contract.
type AnniversaryResponse struct {
	ContractID string `json:"contract_id"`
	Forceout   string `json:"forceout"`
	CumF1A     string `json:"cum_f1a"`
	CumGLP     string `json:"cum_glp"`
}

// SpecAmtInversionRequest asks for the specified amount that would make a
// contract's GLP or GSP equal a target premium, holding every other
// benefit fixed at its current schedule.
type SpecAmtInversionRequest struct {
	ContractID    string  `json:"contract_id" validate:"required"`
	GLPOrGSP      string  `json:"glp_or_gsp" validate:"required"` // "glp" or "gsp"
	Premium       float64 `json:"premium" validate:"min=0"`
	MinSpecAmt    float64 `json:"min_spec_amt"`
	MaxSpecAmt    float64 `json:"max_spec_amt"`
}

// SpecAmtInversionResponse reports the inverted specified amount and
// whether the search converged.
type SpecAmtInversionResponse struct {
	ContractID string  `json:"contract_id"`
	SpecAmt    float64 `json:"spec_amt"`
	Validity   string  `json:"validity"`
}
