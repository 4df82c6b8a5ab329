// Package services orchestrates operations that span storage, messaging
// and the spreadsheet backup.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"paydown/internal/core"
	"paydown/internal/storage"
)

// SyncPublisher publishes a sync request for one transaction. The AMQP
// client implements it; a nil publisher disables syncing.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id int64) error
}

var ErrInvalidPayment = errors.New("payment amount must be positive")

// DebtService applies payments against debts and records the matching
// expense transaction.
type DebtService struct {
	store     storage.Store
	publisher SyncPublisher
}

func NewDebtService(store storage.Store, publisher SyncPublisher) *DebtService {
	return &DebtService{store: store, publisher: publisher}
}

// ApplyPayment reduces the debt's remaining amount by amount, clamped at
// zero, and records a linked debt_payment expense. A debt whose balance
// reaches zero transitions to paid_off.
func (s *DebtService) ApplyPayment(ctx context.Context, userID string, debtID int64, amount core.Money, now time.Time) (core.Debt, core.Transaction, error) {
	if amount.Satang <= 0 {
		return core.Debt{}, core.Transaction{}, ErrInvalidPayment
	}

	debt, err := s.store.GetDebt(ctx, userID, debtID)
	if err != nil {
		return core.Debt{}, core.Transaction{}, fmt.Errorf("get debt: %w", err)
	}

	debt.RemainingAmount.Satang -= amount.Satang
	if debt.RemainingAmount.Satang <= 0 {
		debt.RemainingAmount.Satang = 0
		debt.Status = core.StatusPaidOff
	}
	if err := s.store.UpdateDebt(ctx, debt); err != nil {
		return core.Debt{}, core.Transaction{}, fmt.Errorf("update debt: %w", err)
	}

	tx := core.Transaction{
		UserID:   userID,
		Type:     core.Expense,
		Category: core.CategoryDebtPayment,
		Amount:   amount,
		Note:     fmt.Sprintf("ชำระหนี้ %s", debt.Name),
		Date:     now,
		DebtID:   debt.ID,
	}
	created, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return core.Debt{}, core.Transaction{}, fmt.Errorf("record payment: %w", err)
	}

	publishSync(ctx, s.publisher, created.ID)
	return debt, created, nil
}

// publishSync queues a transaction for the spreadsheet backup. A nil
// publisher or a failed publish never fails the caller; the record is
// already saved locally and the backup catches up later.
func publishSync(ctx context.Context, publisher SyncPublisher, id int64) {
	if publisher == nil {
		slog.DebugContext(ctx, "Sync publisher not available, skipping sync message", "id", id)
		return
	}
	if err := publisher.PublishTransactionSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}
}
