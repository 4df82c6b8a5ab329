package http

import (
	"net/http"
	"time"

	"paydown/internal/analytics"
	"paydown/internal/storage"
)

// handleMonthlyReport returns per-month income/expense totals for the
// requested year (default: current year), newest month first.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	year, _ := parseYearMonth(r, time.Now())
	start, end := analytics.YearRange(year)

	txs, err := s.store.ListTransactions(r.Context(), userID, storage.TransactionFilter{
		Start: start,
		End:   end,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"rows":  analytics.MonthlySummary(txs),
		"chart": analytics.MonthlyChart(txs, year),
	})
}

// handleDailyReport returns per-day totals for the requested month
// (default: current month), newest day first.
func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	year, month := parseYearMonth(r, time.Now())
	start, end := analytics.MonthRange(year, month)

	txs, err := s.store.ListTransactions(r.Context(), userID, storage.TransactionFilter{
		Start: start,
		End:   end,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": int(month),
		"rows":  analytics.DailySummary(txs),
	})
}
