package http

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"paydown/internal/analytics"
	"paydown/internal/core"
	"paydown/internal/storage"
)

const recentTransactionLimit = 5

// handleDashboard assembles the full dashboard: debt summary, upcoming
// payments, recent transactions, the monthly chart and the breakdown.
// The three store reads run in parallel.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if s.dashCache != nil {
		if cached, hit := s.dashCache.Get(dashboardKey(userID)); hit {
			w.Header().Set("X-Cache", "HIT")
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	now := time.Now()
	yearStart, yearEnd := analytics.YearRange(now.Year())

	var (
		debts     []core.Debt
		yearlyTxs []core.Transaction
		recentTxs []core.Transaction
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		debts, err = s.store.ListDebts(ctx, userID, "")
		return err
	})
	g.Go(func() error {
		var err error
		yearlyTxs, err = s.store.ListTransactions(ctx, userID, storage.TransactionFilter{
			Start: yearStart,
			End:   yearEnd,
		})
		return err
	})
	g.Go(func() error {
		var err error
		recentTxs, err = s.store.ListTransactions(ctx, userID, storage.TransactionFilter{
			Limit: recentTransactionLimit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		writeStoreError(w, err)
		return
	}

	dash := analytics.BuildDashboard(debts, yearlyTxs, recentTxs, now)
	if s.dashCache != nil {
		s.dashCache.Set(dashboardKey(userID), dash)
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, dash)
}
