package handlers

import (
	"encoding/json"
	"net/http"

	"gpt7702/backend/models"
	"gpt7702/backend/services"
)

// GPTHandler handles §7702 Guideline Premium Test HTTP requests.
type GPTHandler struct {
	service *services.GPTService
}

// NewGPTHandler creates a new GPT handler.
func NewGPTHandler(service *services.GPTService) *GPTHandler {
	return &GPTHandler{service: service}
}

// IssueContract handles contract-issuance requests.
func (h *GPTHandler) IssueContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.IssueContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.IssueContract(req)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sendJSON(w, result, http.StatusCreated)
}

// GetContractState handles contract-state lookups.
func (h *GPTHandler) GetContractState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contractID := r.URL.Query().Get("contract_id")
	if contractID == "" {
		sendError(w, "contract_id is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.GetContractState(contractID)
	if err != nil {
		sendError(w, err.Error(), http.StatusNotFound)
		return
	}

	sendJSON(w, result, http.StatusOK)
}

// AcceptPayment handles premium payment requests.
func (h *GPTHandler) AcceptPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.AcceptPayment(req)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sendJSON(w, result, http.StatusOK)
}

// ProcessAnniversary handles anniversary-processing requests.
func (h *GPTHandler) ProcessAnniversary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AnniversaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.ProcessAnniversary(req)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sendJSON(w, result, http.StatusOK)
}

// InvertSpecAmt handles specified-amount inversion requests.
func (h *GPTHandler) InvertSpecAmt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SpecAmtInversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.InvertSpecAmt(req)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sendJSON(w, result, http.StatusOK)
}
