package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"paydown/internal/analytics"
	"paydown/internal/core"
	"paydown/internal/storage"
)

type transactionRequest struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
	Date     string `json:"date"` // YYYY-MM-DD
	DebtID   int64  `json:"debtId"`
}

type transactionResponse struct {
	ID            int64      `json:"id"`
	Type          string     `json:"type"`
	Category      string     `json:"category"`
	CategoryLabel string     `json:"categoryLabel"`
	Amount        core.Money `json:"amount"`
	Note          string     `json:"note,omitempty"`
	Date          string     `json:"date"`
	DebtID        int64      `json:"debtId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		Type:          string(tx.Type),
		Category:      string(tx.Category),
		CategoryLabel: tx.Category.Label(),
		Amount:        tx.Amount,
		Note:          tx.Note,
		Date:          tx.Date.Format("2006-01-02"),
		DebtID:        tx.DebtID,
		CreatedAt:     tx.CreatedAt,
	}
}

func (req transactionRequest) toTransaction(userID string) (core.Transaction, error) {
	amount, err := core.ParseDecimalToSatang(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return core.Transaction{}, core.ErrInvalidDate
	}

	tx := core.Transaction{
		UserID:   userID,
		Type:     core.TransactionType(req.Type),
		Category: core.Category(req.Category),
		Amount:   core.Money{Satang: amount},
		Note:     req.Note,
		Date:     date,
		DebtID:   req.DebtID,
	}
	return tx, tx.Validate()
}

// transactionWindow builds the store filter from startDate/endDate query
// parameters.
func transactionWindow(r *http.Request) (storage.TransactionFilter, error) {
	var f storage.TransactionFilter
	var err error

	if f.Start, err = parseDate(r.URL.Query().Get("startDate")); err != nil {
		return f, err
	}
	if f.End, err = parseDate(r.URL.Query().Get("endDate")); err != nil {
		return f, err
	}
	if !f.End.IsZero() {
		// inclusive end of day
		f.End = f.End.Add(24*time.Hour - time.Nanosecond)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
			f.Limit = n
		}
	}
	return f, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	f, err := transactionWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), userID, f)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	// type and category refinement happens in memory
	txs = analytics.ApplyFilter(txs, analytics.Filter{
		Type:     core.TransactionType(r.URL.Query().Get("type")),
		Category: core.Category(r.URL.Query().Get("category")),
	})

	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := req.toTransaction(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.txs.Create(r.Context(), tx)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	writeJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := req.toTransaction(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx.ID = id

	if err := s.txs.Update(r.Context(), tx); err != nil {
		writeStoreError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	updated, err := s.store.GetTransaction(r.Context(), userID, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.txs.Delete(r.Context(), userID, id); err != nil {
		writeStoreError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	w.WriteHeader(http.StatusNoContent)
}

// handleExportTransactions streams the filtered transactions as a
// UTF-8 BOM CSV that opens cleanly in Thai-locale Excel.
func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	f, err := transactionWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), userID, f)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	txs = analytics.ApplyFilter(txs, analytics.Filter{
		Type:     core.TransactionType(r.URL.Query().Get("type")),
		Category: core.Category(r.URL.Query().Get("category")),
	})

	filename := "transactions-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(analytics.ExportCSV(txs))
}
