// Package http exposes the JSON API. Handlers stay thin: they resolve
// the owner, call storage or a service, and feed snapshots to the
// analytics package.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"paydown/internal/analytics"
	"paydown/internal/cache"
	"paydown/internal/services"
	"paydown/internal/storage"
)

type Server struct {
	http.Server

	store       storage.Store
	debts       *services.DebtService
	txs         *services.TransactionService
	rateLimiter *rateLimiter

	// cached dashboards keyed by user, invalidated on every mutation
	dashCache *cache.LRUCache[analytics.Dashboard]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
// cacheTTL = 0 disables dashboard caching.
func NewServer(addr string, store storage.Store, debts *services.DebtService, txs *services.TransactionService, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            store,
		debts:            debts,
		txs:              txs,
		rateLimiter:      newRateLimiter(),
		stopCacheCleanup: make(chan struct{}),
	}
	if cacheTTL > 0 {
		s.dashCache = cache.NewLRUCache[analytics.Dashboard](100, cacheTTL)
		go s.startCacheCleanup()
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/dashboard", s.protect(s.handleDashboard))

	mux.HandleFunc("GET /api/debts", s.protect(s.handleListDebts))
	mux.HandleFunc("POST /api/debts", s.protect(s.handleCreateDebt))
	mux.HandleFunc("GET /api/debts/{id}", s.protect(s.handleGetDebt))
	mux.HandleFunc("PUT /api/debts/{id}", s.protect(s.handleUpdateDebt))
	mux.HandleFunc("DELETE /api/debts/{id}", s.protect(s.handleDeleteDebt))
	mux.HandleFunc("POST /api/debts/{id}/payments", s.protect(s.handleApplyPayment))

	mux.HandleFunc("GET /api/transactions", s.protect(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.protect(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.protect(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.protect(s.handleDeleteTransaction))
	mux.HandleFunc("GET /api/transactions/export", s.protect(s.handleExportTransactions))

	mux.HandleFunc("GET /api/reports/monthly", s.protect(s.handleMonthlyReport))
	mux.HandleFunc("GET /api/reports/daily", s.protect(s.handleDailyReport))

	return s
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.dashCache.CleanExpired()
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) invalidateDashboard(userID string) {
	if s.dashCache != nil {
		s.dashCache.Delete(dashboardKey(userID))
	}
}

func dashboardKey(userID string) string {
	return "dash:" + userID
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
