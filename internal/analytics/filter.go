package analytics

import (
	"time"

	"paydown/internal/core"
)

// Filter narrows a transaction collection before aggregation or export.
// Zero-valued fields match everything.
type Filter struct {
	Type      core.TransactionType
	Category  core.Category
	StartDate time.Time
	EndDate   time.Time
}

// ApplyFilter returns the subset of transactions matching the filter,
// preserving input order. The date range is inclusive on both ends.
func ApplyFilter(txs []core.Transaction, f Filter) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if f.Category != "" && tx.Category != f.Category {
			continue
		}
		if !f.StartDate.IsZero() && tx.Date.Before(f.StartDate) {
			continue
		}
		if !f.EndDate.IsZero() && tx.Date.After(f.EndDate) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// YearRange builds the inclusive date window covering a whole year,
// matching the reporting endpoints' year parameter.
func YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	return start, end
}

// MonthRange builds the inclusive date window covering one calendar
// month, clamping to the month's actual length.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := lastDayOfMonth(year, month)
	end := time.Date(year, month, last, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	return start, end
}
