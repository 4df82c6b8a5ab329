// Package storage persists debt and transaction records, scoped by
// owner. The analytics layer never touches it: callers fetch snapshots
// here and hand plain slices to the engine.
package storage

import (
	"context"
	"errors"
	"time"

	"paydown/internal/core"
)

// ErrNotFound is returned when a record does not exist or is owned by a
// different user. Callers must not learn which of the two it was.
var ErrNotFound = errors.New("record not found")

// TransactionFilter narrows list queries at the store level. Zero values
// match everything. Type/category refinement happens in the analytics
// layer; the store only windows by date and bounds the result size.
type TransactionFilter struct {
	Start time.Time
	End   time.Time
	Limit int
}

// DebtStore is the record store for debts, always scoped by owner.
type DebtStore interface {
	// ListDebts returns the user's debts, newest first. An empty status
	// matches all statuses.
	ListDebts(ctx context.Context, userID string, status core.DebtStatus) ([]core.Debt, error)
	GetDebt(ctx context.Context, userID string, id int64) (core.Debt, error)
	CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error)
	UpdateDebt(ctx context.Context, d core.Debt) error
	DeleteDebt(ctx context.Context, userID string, id int64) error
}

// TransactionStore is the record store for transactions, scoped by owner.
type TransactionStore interface {
	// ListTransactions returns the user's transactions in reverse
	// chronological order, optionally windowed by the filter.
	ListTransactions(ctx context.Context, userID string, f TransactionFilter) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, userID string, id int64) (core.Transaction, error)
	CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, tx core.Transaction) error
	DeleteTransaction(ctx context.Context, userID string, id int64) error
}

// Store combines both record stores; the SQLite and memory backends
// implement it in full.
type Store interface {
	DebtStore
	TransactionStore
}
