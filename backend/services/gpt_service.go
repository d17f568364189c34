package services

import (
	"fmt"
	"strings"
	"sync"

	"gpt7702/backend/commute"
	"gpt7702/backend/gpt"
	"gpt7702/backend/models"
	"gpt7702/backend/rootfind"
)

// GPTService owns the in-force GPT engines for every contract the server
// is tracking, keyed by contract ID. It is the service-layer counterpart
// to ActuarialService: both wrap a map of named in-memory records behind
// validate/convert helpers, the same shape the original actuarial service
// used for its mortality-table registry.
type GPTService struct {
	mu        sync.Mutex
	contracts map[string]*gpt.Engine
}

// NewGPTService creates an empty contract registry.
func NewGPTService() *GPTService {
	return &GPTService{contracts: make(map[string]*gpt.Engine)}
}

func parseDefn(s string) (gpt.DefnLifeIns, error) {
	switch strings.ToLower(s) {
	case "gpt":
		return gpt.DefnGPT, nil
	case "cvat":
		return gpt.DefnCVAT, nil
	case "none":
		return gpt.DefnNone, nil
	default:
		return 0, fmt.Errorf("unrecognized defn_life_ins %q", s)
	}
}

func parseDBOpt(s string) (commute.DBOption7702, error) {
	switch strings.ToLower(s) {
	case "option1":
		return commute.Option1, nil
	case "option2":
		return commute.Option2, nil
	default:
		return 0, fmt.Errorf("unrecognized db_opt %q", s)
	}
}

func toVectorParms(v models.VectorChargesRequest) gpt.VectorParms {
	return gpt.VectorParms{
		TargetLoad:       v.TargetLoad,
		ExcessLoad:       v.ExcessLoad,
		MonthlyPolicyFee: v.MonthlyPolicyFee,
		AnnualPolicyFee:  v.AnnualPolicyFee,
		SpecAmtLoad:      v.SpecAmtLoad,
		QABGIORate:       v.QABGIORate,
		QABADBRate:       v.QABADBRate,
		QABTermRate:      v.QABTermRate,
		QABSpouseRate:    v.QABSpouseRate,
		QABChildRate:     v.QABChildRate,
		QABWaiverRate:    v.QABWaiverRate,
	}
}

func toScalarParms(duration int, dbopt commute.DBOption7702, b models.ScalarBenefitsRequest) gpt.ScalarParms {
	return gpt.ScalarParms{
		Duration:          duration,
		F3Benefit:         b.F3Benefit,
		EndowmentBenefit:  b.EndowmentBenefit,
		TargetPremium:     b.TargetPremium,
		ChargeSpecAmtBase: b.ChargeSpecAmtBase,
		DBOpt:             dbopt,
		QABGIOAmount:      b.QABGIOAmount,
		QABADBAmount:      b.QABADBAmount,
		QABTermAmount:     b.QABTermAmount,
		QABSpouseAmount:   b.QABSpouseAmount,
		QABChildAmount:    b.QABChildAmount,
		QABWaiverAmount:   b.QABWaiverAmount,
	}
}

// IssueContract builds a fresh commutation triad from req's rate and
// charge vectors, brings a new engine to its starting state, and
// registers it under req.ContractID. Reissuing an existing contract ID
// is rejected — the same duplicate-registration guard a mortality-table
// registry would apply to a table name.
func (s *GPTService) IssueContract(req models.IssueContractRequest) (models.ContractStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contracts[req.ContractID]; exists {
		return models.ContractStateResponse{}, fmt.Errorf("contract %q already issued", req.ContractID)
	}

	defn, err := parseDefn(req.DefnLifeIns)
	if err != nil {
		return models.ContractStateResponse{}, err
	}
	dbopt, err := parseDBOpt(req.DBOpt)
	if err != nil {
		return models.ContractStateResponse{}, err
	}

	triad, err := gpt.NewTriad(req.MortalityRates, req.ICGLPRates, req.IGGLPRates, req.ICGSPRates, req.IGGSPRates, toVectorParms(req.Charges))
	if err != nil {
		return models.ContractStateResponse{}, fmt.Errorf("failed to build commutation triad: %w", err)
	}

	parms := toScalarParms(req.Duration, dbopt, req.Benefits)
	engine := gpt.NewEngine(triad, defn)
	if err := engine.InitializeGPT(defn, req.FractionalDuration, req.InforceGLP, req.InforceCumGLP, req.InforceGSP, req.InforceCumF1A, parms); err != nil {
		return models.ContractStateResponse{}, fmt.Errorf("failed to initialize contract %q: %w", req.ContractID, err)
	}

	s.contracts[req.ContractID] = engine
	return s.stateLocked(req.ContractID, engine), nil
}

func (s *GPTService) stateLocked(contractID string, e *gpt.Engine) models.ContractStateResponse {
	return models.ContractStateResponse{
		ContractID:     contractID,
		GLP:            e.RawGLP(),
		CumGLP:         e.RawCumGLP(),
		GSP:            e.RawGSP(),
		GuidelineLimit: e.GuidelineLimit().String(),
		CumF1A:         e.CumF1A().String(),
	}
}

// GetContractState returns the current GPT bookkeeping for contractID.
func (s *GPTService) GetContractState(contractID string) (models.ContractStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.contracts[contractID]
	if !ok {
		return models.ContractStateResponse{}, fmt.Errorf("contract %q not found", contractID)
	}
	return s.stateLocked(contractID, e), nil
}

// AcceptPayment offers a premium payment to contractID's engine and
// returns the accepted/rejected split.
func (s *GPTService) AcceptPayment(req models.PaymentRequest) (models.PaymentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.contracts[req.ContractID]
	if !ok {
		return models.PaymentResponse{}, fmt.Errorf("contract %q not found", req.ContractID)
	}

	accepted, rejected := e.AcceptPayment(req.Amount)
	return models.PaymentResponse{
		ContractID: req.ContractID,
		Accepted:   accepted.String(),
		Rejected:   rejected.String(),
		CumF1A:     e.CumF1A().String(),
	}, nil
}

// ProcessAnniversary advances contractID's engine to req's duration,
// applying any benefit change present in req.Benefits as an A+B−C
// adjustment event before processing the annual guideline increment and
// any resulting forceout.
func (s *GPTService) ProcessAnniversary(req models.AnniversaryRequest) (models.AnniversaryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.contracts[req.ContractID]
	if !ok {
		return models.AnniversaryResponse{}, fmt.Errorf("contract %q not found", req.ContractID)
	}

	parms := e.CurrentParms()
	parms.Duration = req.Duration
	if req.Benefits != nil {
		parms = toScalarParms(req.Duration, e.DBOpt(), *req.Benefits)
		if err := e.EnqueueAdjEvent(parms); err != nil {
			return models.AnniversaryResponse{}, fmt.Errorf("failed to queue adjustment for %q: %w", req.ContractID, err)
		}
	}

	forceout, err := e.UpdateGPT(parms, req.FractionalDuration, req.F2AValue)
	if err != nil {
		return models.AnniversaryResponse{}, fmt.Errorf("failed to advance contract %q: %w", req.ContractID, err)
	}

	return models.AnniversaryResponse{
		ContractID: req.ContractID,
		Forceout:   forceout.String(),
		CumF1A:     e.CumF1A().String(),
		CumGLP:     e.RoundedCumGLP().String(),
	}, nil
}

// InvertSpecAmt searches for the specified amount that makes contractID's
// GLP or GSP equal req.Premium at its current duration, holding every
// other benefit fixed at the contract's current schedule and setting
// the death benefit and specified-amount charge base equal to the trial
// specified amount.
func (s *GPTService) InvertSpecAmt(req models.SpecAmtInversionRequest) (models.SpecAmtInversionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.contracts[req.ContractID]
	if !ok {
		return models.SpecAmtInversionResponse{}, fmt.Errorf("contract %q not found", req.ContractID)
	}

	var glpOrGSP gpt.GLPOrGSP
	switch strings.ToLower(req.GLPOrGSP) {
	case "glp":
		glpOrGSP = gpt.GLP
	case "gsp":
		glpOrGSP = gpt.GSP
	default:
		return models.SpecAmtInversionResponse{}, fmt.Errorf("unrecognized glp_or_gsp %q", req.GLPOrGSP)
	}

	base := e.CurrentParms()
	params := gpt.SpecAmtParams{
		Triad:           e.Triad(),
		GLPOrGSP:        glpOrGSP,
		DBOpt:           e.DBOpt(),
		Duration:        e.Duration(),
		Premium:         req.Premium,
		MinIssueSpecAmt: req.MinSpecAmt,
		MaxSpecAmt:      req.MaxSpecAmt,
		Decimals:        2,
		BuildScalarParms: func(specAmt float64) gpt.ScalarParms {
			sp := base
			sp.Duration = e.Duration()
			sp.F3Benefit = specAmt
			sp.ChargeSpecAmtBase = specAmt
			return sp
		},
	}

	specAmt, validity := gpt.InvertSpecAmt(params)
	return models.SpecAmtInversionResponse{
		ContractID: req.ContractID,
		SpecAmt:    specAmt,
		Validity:   validityString(validity),
	}, nil
}

func validityString(v rootfind.Validity) string {
	switch v {
	case rootfind.ValidityConverged:
		return "converged"
	case rootfind.ValidityNotBracketed:
		return "not_bracketed"
	case rootfind.ValidityImproperBounds:
		return "improper_bounds"
	default:
		return "unknown"
	}
}
