package sheets

import (
	"context"

	"paydown/internal/core"
)

// TransactionWriter appends one transaction row to the backup spreadsheet
// and returns a reference to the written row.
type TransactionWriter interface {
	Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
