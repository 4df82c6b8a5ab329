package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"paydown/internal/core"
)

func TestMemoryStoreMirrorsSQLiteSemantics(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.CreateDebt(ctx, core.Debt{
		UserID:          "u1",
		Name:            "older",
		TotalAmount:     core.Money{Satang: 1000},
		RemainingAmount: core.Money{Satang: 1000},
		Status:          core.StatusActive,
		CreatedAt:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateDebt() error = %v", err)
	}
	second, err := store.CreateDebt(ctx, core.Debt{
		UserID:          "u1",
		Name:            "newer",
		TotalAmount:     core.Money{Satang: 1000},
		RemainingAmount: core.Money{Satang: 1000},
		Status:          core.StatusPaused,
		CreatedAt:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateDebt() error = %v", err)
	}

	debts, err := store.ListDebts(ctx, "u1", "")
	if err != nil {
		t.Fatalf("ListDebts() error = %v", err)
	}
	if len(debts) != 2 || debts[0].ID != second.ID {
		t.Errorf("ListDebts() order = %+v, want newest first", debts)
	}

	active, _ := store.ListDebts(ctx, "u1", core.StatusActive)
	if len(active) != 1 || active[0].ID != first.ID {
		t.Errorf("status filter returned %+v", active)
	}

	if _, err := store.GetDebt(ctx, "u2", first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user GetDebt() error = %v, want ErrNotFound", err)
	}

	tx, err := store.CreateTransaction(ctx, core.Transaction{
		UserID:   "u1",
		Type:     core.Income,
		Category: core.CategorySalary,
		Amount:   core.Money{Satang: 100},
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if err := store.DeleteTransaction(ctx, "u2", tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteTransaction(ctx, "u1", tx.ID); err != nil {
		t.Errorf("delete error = %v", err)
	}
}
