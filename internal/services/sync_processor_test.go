package services

import (
	"context"
	"errors"
	"testing"

	"paydown/internal/amqp"
	"paydown/internal/core"
	sheetsmem "paydown/internal/sheets/memory"
	"paydown/internal/storage"
)

type failingWriter struct{}

func (failingWriter) Append(context.Context, core.Transaction) (string, error) {
	return "", errors.New("sheets unavailable")
}

func TestSyncProcessor_Handle(t *testing.T) {
	store := storage.NewMemoryStore()
	writer := sheetsmem.New()
	proc := NewSyncProcessor(store, writer)

	created, err := store.CreateTransaction(context.Background(), validTx("user-1"))
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	if err := proc.Handle(context.Background(), amqp.NewTransactionSyncMessage(created.ID)); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	items := writer.Items()
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("backup items = %+v, want the synced transaction", items)
	}
	if got := store.SyncStatus(created.ID); got != "synced" {
		t.Errorf("sync status = %q, want synced", got)
	}
}

func TestSyncProcessor_Handle_MissingTransactionIsDropped(t *testing.T) {
	store := storage.NewMemoryStore()
	proc := NewSyncProcessor(store, sheetsmem.New())

	// Deleted before the worker got to it: ack, don't requeue.
	if err := proc.Handle(context.Background(), amqp.NewTransactionSyncMessage(999)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
}

func TestSyncProcessor_Handle_AppendFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	proc := NewSyncProcessor(store, failingWriter{})

	created, err := store.CreateTransaction(context.Background(), validTx("user-1"))
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	if err := proc.Handle(context.Background(), amqp.NewTransactionSyncMessage(created.ID)); err == nil {
		t.Fatal("expected error so the delivery is requeued")
	}
	if got := store.SyncStatus(created.ID); got != "error" {
		t.Errorf("sync status = %q, want error", got)
	}
}
