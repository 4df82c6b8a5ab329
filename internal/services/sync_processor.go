package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"paydown/internal/amqp"
	"paydown/internal/core"
	"paydown/internal/sheets"
	"paydown/internal/storage"
)

// SyncSource is the unscoped store view the sync worker needs: it fetches
// transactions by ID and records the backup outcome.
type SyncSource interface {
	GetTransactionByID(ctx context.Context, id int64) (core.Transaction, error)
	MarkTransactionSynced(ctx context.Context, id int64) error
	MarkTransactionSyncError(ctx context.Context, id int64) error
}

// SyncProcessor consumes transaction sync messages and mirrors each
// transaction to the backup spreadsheet.
type SyncProcessor struct {
	source SyncSource
	writer sheets.TransactionWriter
}

func NewSyncProcessor(source SyncSource, writer sheets.TransactionWriter) *SyncProcessor {
	return &SyncProcessor{source: source, writer: writer}
}

// Handle processes one sync message. A missing transaction is treated as
// already deleted and acked; append failures are recorded and returned so
// the delivery is requeued.
func (p *SyncProcessor) Handle(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	tx, err := p.source.GetTransactionByID(ctx, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		slog.WarnContext(ctx, "Transaction gone before sync, dropping message", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch transaction %d: %w", msg.ID, err)
	}

	ref, err := p.writer.Append(ctx, tx)
	if err != nil {
		if markErr := p.source.MarkTransactionSyncError(ctx, msg.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to record sync error", "id", msg.ID, "error", markErr)
		}
		return fmt.Errorf("append transaction %d: %w", msg.ID, err)
	}

	if err := p.source.MarkTransactionSynced(ctx, msg.ID); err != nil {
		return fmt.Errorf("mark transaction %d synced: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Transaction backed up", "id", msg.ID, "rowRef", ref)
	return nil
}
