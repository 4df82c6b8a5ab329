package services

import (
	"context"
	"fmt"

	"paydown/internal/core"
	"paydown/internal/storage"
)

// TransactionService persists transactions and queues each write for the
// spreadsheet backup.
type TransactionService struct {
	store     storage.Store
	publisher SyncPublisher
}

func NewTransactionService(store storage.Store, publisher SyncPublisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

// Create validates and saves a transaction, then publishes a sync message.
// A failed publish does not fail the request.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	created, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	publishSync(ctx, s.publisher, created.ID)
	return created, nil
}

// Update overwrites a transaction and requeues it for backup.
func (s *TransactionService) Update(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return err
	}

	publishSync(ctx, s.publisher, tx.ID)
	return nil
}

// Delete removes a transaction. The backup sheet is append-only, so no
// sync message is sent.
func (s *TransactionService) Delete(ctx context.Context, userID string, id int64) error {
	return s.store.DeleteTransaction(ctx, userID, id)
}
