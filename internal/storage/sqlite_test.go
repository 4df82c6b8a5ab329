package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"paydown/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "paydown.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteDebtRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateDebt(ctx, core.Debt{
		UserID:          "u1",
		Name:            "credit card",
		Lender:          "bank",
		TotalAmount:     core.Money{Satang: 100000},
		RemainingAmount: core.Money{Satang: 60000},
		InterestRate:    18.5,
		MinimumPayment:  core.Money{Satang: 5000},
		DueDateDay:      25,
		Status:          core.StatusActive,
	})
	if err != nil {
		t.Fatalf("CreateDebt() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateDebt() did not assign an id")
	}

	got, err := store.GetDebt(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("GetDebt() error = %v", err)
	}
	if got.Name != "credit card" || got.DueDateDay != 25 || got.RemainingAmount.Satang != 60000 {
		t.Errorf("GetDebt() = %+v", got)
	}

	// Another user must never see the record.
	if _, err := store.GetDebt(ctx, "u2", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user GetDebt() error = %v, want ErrNotFound", err)
	}

	got.RemainingAmount.Satang = 0
	got.Status = core.StatusPaidOff
	if err := store.UpdateDebt(ctx, got); err != nil {
		t.Fatalf("UpdateDebt() error = %v", err)
	}
	updated, _ := store.GetDebt(ctx, "u1", created.ID)
	if updated.Status != core.StatusPaidOff {
		t.Errorf("status after update = %s, want paid_off", updated.Status)
	}

	if err := store.DeleteDebt(ctx, "u1", created.ID); err != nil {
		t.Fatalf("DeleteDebt() error = %v", err)
	}
	if _, err := store.GetDebt(ctx, "u1", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDebt() after delete error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteDebtWithoutSchedule(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateDebt(ctx, core.Debt{
		UserID:          "u1",
		Name:            "informal loan",
		TotalAmount:     core.Money{Satang: 5000},
		RemainingAmount: core.Money{Satang: 5000},
		Status:          core.StatusActive,
	})
	if err != nil {
		t.Fatalf("CreateDebt() error = %v", err)
	}

	got, err := store.GetDebt(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("GetDebt() error = %v", err)
	}
	if got.DueDateDay != 0 || got.HasSchedule() {
		t.Errorf("due day = %d, want 0 (no schedule)", got.DueDateDay)
	}
}

func TestSQLiteListDebtsByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, status := range []core.DebtStatus{core.StatusActive, core.StatusActive, core.StatusPaused} {
		_, err := store.CreateDebt(ctx, core.Debt{
			UserID:          "u1",
			Name:            "d",
			TotalAmount:     core.Money{Satang: 1000},
			RemainingAmount: core.Money{Satang: 1000},
			Status:          status,
		})
		if err != nil {
			t.Fatalf("CreateDebt() error = %v", err)
		}
	}

	all, err := store.ListDebts(ctx, "u1", "")
	if err != nil {
		t.Fatalf("ListDebts() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all debts = %d, want 3", len(all))
	}

	active, err := store.ListDebts(ctx, "u1", core.StatusActive)
	if err != nil {
		t.Fatalf("ListDebts(active) error = %v", err)
	}
	if len(active) != 2 {
		t.Errorf("active debts = %d, want 2", len(active))
	}

	other, err := store.ListDebts(ctx, "stranger", "")
	if err != nil {
		t.Fatalf("ListDebts(stranger) error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("stranger debts = %d, want 0", len(other))
	}
}

func TestSQLiteTransactionFilterAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		_, err := store.CreateTransaction(ctx, core.Transaction{
			UserID:   "u1",
			Type:     core.Expense,
			Category: core.CategoryFood,
			Amount:   core.Money{Satang: 100},
			Date:     d,
		})
		if err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
	}

	all, err := store.ListTransactions(ctx, "u1", TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// Reverse chronological order.
	if !all[0].Date.Equal(dates[2]) || !all[2].Date.Equal(dates[0]) {
		t.Errorf("order = [%v, %v, %v], want newest first", all[0].Date, all[1].Date, all[2].Date)
	}

	windowed, err := store.ListTransactions(ctx, "u1", TransactionFilter{
		Start: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("ListTransactions(window) error = %v", err)
	}
	if len(windowed) != 1 || !windowed[0].Date.Equal(dates[1]) {
		t.Errorf("windowed = %+v, want only the march transaction", windowed)
	}

	limited, err := store.ListTransactions(ctx, "u1", TransactionFilter{Limit: 2})
	if err != nil {
		t.Fatalf("ListTransactions(limit) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}
}

func TestSQLiteTransactionDebtLink(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	debt, err := store.CreateDebt(ctx, core.Debt{
		UserID:          "u1",
		Name:            "loan",
		TotalAmount:     core.Money{Satang: 10000},
		RemainingAmount: core.Money{Satang: 10000},
		Status:          core.StatusActive,
	})
	if err != nil {
		t.Fatalf("CreateDebt() error = %v", err)
	}

	created, err := store.CreateTransaction(ctx, core.Transaction{
		UserID:   "u1",
		Type:     core.Expense,
		Category: core.CategoryDebtPayment,
		Amount:   core.Money{Satang: 2000},
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DebtID:   debt.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	got, err := store.GetTransaction(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("GetTransaction() error = %v", err)
	}
	if got.DebtID != debt.ID {
		t.Errorf("debt link = %d, want %d", got.DebtID, debt.ID)
	}

	byID, err := store.GetTransactionByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTransactionByID() error = %v", err)
	}
	if byID.UserID != "u1" {
		t.Errorf("owner = %q, want u1", byID.UserID)
	}
}

func TestSQLiteMutationOwnership(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateTransaction(ctx, core.Transaction{
		UserID:   "u1",
		Type:     core.Income,
		Category: core.CategorySalary,
		Amount:   core.Money{Satang: 100},
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	stolen := created
	stolen.UserID = "u2"
	if err := store.UpdateTransaction(ctx, stolen); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user update error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteTransaction(ctx, "u2", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user delete error = %v, want ErrNotFound", err)
	}
}
