package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"paydown/internal/core"
	"paydown/internal/storage"
)

type recordingPublisher struct {
	ids []int64
	err error
}

func (p *recordingPublisher) PublishTransactionSync(_ context.Context, id int64) error {
	if p.err != nil {
		return p.err
	}
	p.ids = append(p.ids, id)
	return nil
}

func seedDebt(t *testing.T, store storage.Store, userID string, remaining int64) core.Debt {
	t.Helper()
	d, err := store.CreateDebt(context.Background(), core.Debt{
		UserID:          userID,
		Name:            "รถยนต์",
		TotalAmount:     core.Money{Satang: 100000},
		RemainingAmount: core.Money{Satang: remaining},
		MinimumPayment:  core.Money{Satang: 5000},
		DueDateDay:      15,
		Status:          core.StatusActive,
	})
	if err != nil {
		t.Fatalf("seed debt: %v", err)
	}
	return d
}

func TestDebtService_ApplyPayment(t *testing.T) {
	store := storage.NewMemoryStore()
	pub := &recordingPublisher{}
	svc := NewDebtService(store, pub)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	debt := seedDebt(t, store, "user-1", 60000)

	updated, tx, err := svc.ApplyPayment(context.Background(), "user-1", debt.ID, core.Money{Satang: 20000}, now)
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if updated.RemainingAmount.Satang != 40000 {
		t.Errorf("remaining = %d, want 40000", updated.RemainingAmount.Satang)
	}
	if updated.Status != core.StatusActive {
		t.Errorf("status = %s, want active", updated.Status)
	}
	if tx.Type != core.Expense || tx.Category != core.CategoryDebtPayment {
		t.Errorf("payment transaction = %s/%s, want expense/debt_payment", tx.Type, tx.Category)
	}
	if tx.DebtID != debt.ID {
		t.Errorf("transaction debt link = %d, want %d", tx.DebtID, debt.ID)
	}
	if len(pub.ids) != 1 || pub.ids[0] != tx.ID {
		t.Errorf("published ids = %v, want [%d]", pub.ids, tx.ID)
	}
}

func TestDebtService_ApplyPayment_Overpay(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewDebtService(store, nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	debt := seedDebt(t, store, "user-1", 10000)

	updated, _, err := svc.ApplyPayment(context.Background(), "user-1", debt.ID, core.Money{Satang: 25000}, now)
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if updated.RemainingAmount.Satang != 0 {
		t.Errorf("remaining = %d, want 0 (clamped)", updated.RemainingAmount.Satang)
	}
	if updated.Status != core.StatusPaidOff {
		t.Errorf("status = %s, want paid_off", updated.Status)
	}
}

func TestDebtService_ApplyPayment_Errors(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewDebtService(store, nil)
	now := time.Now()

	debt := seedDebt(t, store, "user-1", 10000)

	if _, _, err := svc.ApplyPayment(context.Background(), "user-1", debt.ID, core.Money{Satang: 0}, now); !errors.Is(err, ErrInvalidPayment) {
		t.Errorf("zero amount: err = %v, want ErrInvalidPayment", err)
	}
	if _, _, err := svc.ApplyPayment(context.Background(), "user-2", debt.ID, core.Money{Satang: 100}, now); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("foreign debt: err = %v, want ErrNotFound", err)
	}
}

func TestDebtService_ApplyPayment_PublishFailureIsNonFatal(t *testing.T) {
	store := storage.NewMemoryStore()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewDebtService(store, pub)

	debt := seedDebt(t, store, "user-1", 10000)

	if _, _, err := svc.ApplyPayment(context.Background(), "user-1", debt.ID, core.Money{Satang: 100}, time.Now()); err != nil {
		t.Fatalf("ApplyPayment should survive publish failure: %v", err)
	}
}
