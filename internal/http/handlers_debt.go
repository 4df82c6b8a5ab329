package http

import (
	"encoding/json"
	"net/http"
	"time"

	"paydown/internal/core"
)

// debtRequest carries decimal amounts as strings ("1234.56") so clients
// never send floats for money.
type debtRequest struct {
	Name           string  `json:"name"`
	Lender         string  `json:"lender"`
	TotalAmount    string  `json:"totalAmount"`
	Remaining      string  `json:"remainingAmount"`
	InterestRate   float64 `json:"interestRate"`
	MinimumPayment string  `json:"minimumPayment"`
	DueDateDay     int     `json:"dueDateDay"`
	Status         string  `json:"status"`
}

type debtResponse struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Lender          string     `json:"lender,omitempty"`
	TotalAmount     core.Money `json:"totalAmount"`
	RemainingAmount core.Money `json:"remainingAmount"`
	InterestRate    float64    `json:"interestRate"`
	MinimumPayment  core.Money `json:"minimumPayment"`
	DueDateDay      int        `json:"dueDateDay,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func toDebtResponse(d core.Debt) debtResponse {
	return debtResponse{
		ID:              d.ID,
		Name:            d.Name,
		Lender:          d.Lender,
		TotalAmount:     d.TotalAmount,
		RemainingAmount: d.RemainingAmount,
		InterestRate:    d.InterestRate,
		MinimumPayment:  d.MinimumPayment,
		DueDateDay:      d.DueDateDay,
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
	}
}

// toDebt builds the domain record. Remaining defaults to the total when
// absent, newly created debts default to active.
func (req debtRequest) toDebt(userID string) (core.Debt, error) {
	total, err := core.ParseDecimalToSatang(req.TotalAmount)
	if err != nil {
		return core.Debt{}, err
	}

	remaining := total
	if req.Remaining != "" {
		remaining, err = core.ParseDecimalToSatang(req.Remaining)
		if err != nil {
			return core.Debt{}, err
		}
	}

	var minPayment int64
	if req.MinimumPayment != "" {
		minPayment, err = core.ParseDecimalToSatang(req.MinimumPayment)
		if err != nil {
			return core.Debt{}, err
		}
	}

	status := core.DebtStatus(req.Status)
	if req.Status == "" {
		status = core.StatusActive
	}

	d := core.Debt{
		UserID:          userID,
		Name:            req.Name,
		Lender:          req.Lender,
		TotalAmount:     core.Money{Satang: total},
		RemainingAmount: core.Money{Satang: remaining},
		InterestRate:    req.InterestRate,
		MinimumPayment:  core.Money{Satang: minPayment},
		DueDateDay:      req.DueDateDay,
		Status:          status,
	}
	return d, d.Validate()
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	status := core.DebtStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	debts, err := s.store.ListDebts(r.Context(), userID, status)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := make([]debtResponse, 0, len(debts))
	for _, d := range debts {
		resp = append(resp, toDebtResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	d, err := s.store.GetDebt(r.Context(), userID, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtResponse(d))
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req debtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := req.toDebt(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateDebt(r.Context(), d)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	writeJSON(w, http.StatusCreated, toDebtResponse(created))
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req debtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := req.toDebt(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d.ID = id

	if err := s.store.UpdateDebt(r.Context(), d); err != nil {
		writeStoreError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	updated, err := s.store.GetDebt(r.Context(), userID, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtResponse(updated))
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteDebt(r.Context(), userID, id); err != nil {
		writeStoreError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	w.WriteHeader(http.StatusNoContent)
}

type paymentRequest struct {
	Amount string `json:"amount"`
}

type paymentResponse struct {
	Debt        debtResponse        `json:"debt"`
	Transaction transactionResponse `json:"transaction"`
}

// handleApplyPayment applies a quick payment against the debt and returns
// the updated debt plus the recorded expense transaction.
func (s *Server) handleApplyPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := core.ParseDecimalToSatang(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment amount")
		return
	}

	debt, tx, err := s.debts.ApplyPayment(r.Context(), userID, id, core.Money{Satang: amount}, time.Now())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	writeJSON(w, http.StatusOK, paymentResponse{
		Debt:        toDebtResponse(debt),
		Transaction: toTransactionResponse(tx),
	})
}
