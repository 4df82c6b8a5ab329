package analytics

import "paydown/internal/core"

// chartPalette is the fixed, ordered color set for breakdown charts.
// Colors are assigned by cycling over the debt's position, so the
// assignment is stable as long as the caller supplies debts in a stable
// order (the store returns them sorted by creation time).
var chartPalette = []string{
	"#059669", "#0ea5e9", "#8b5cf6", "#f59e0b",
	"#ef4444", "#ec4899", "#14b8a6", "#6366f1",
	"#f97316", "#84cc16", "#06b6d4", "#a855f7",
}

// BreakdownItem is one active debt's share of the total remaining balance.
type BreakdownItem struct {
	Name            string     `json:"name"`
	RemainingAmount core.Money `json:"remainingAmount"`
	TotalAmount     core.Money `json:"totalAmount"`
	Percentage      int        `json:"percentage"`
	Color           string     `json:"color"`
}

// DebtBreakdown converts the remaining balances of active debts into
// percentage shares for a chart. Debts with nothing remaining are
// skipped. A zero total (empty filtered set) yields zero percentages
// rather than dividing by zero.
func DebtBreakdown(debts []core.Debt) []BreakdownItem {
	var totalRemaining int64
	active := make([]core.Debt, 0, len(debts))
	for _, d := range debts {
		if d.Status != core.StatusActive || d.RemainingAmount.Satang <= 0 {
			continue
		}
		active = append(active, d)
		totalRemaining += d.RemainingAmount.Satang
	}

	items := make([]BreakdownItem, len(active))
	for i, d := range active {
		items[i] = BreakdownItem{
			Name:            d.Name,
			RemainingAmount: d.RemainingAmount,
			TotalAmount:     d.TotalAmount,
			Percentage:      roundPercent(d.RemainingAmount.Satang, totalRemaining),
			Color:           chartPalette[i%len(chartPalette)],
		}
	}
	return items
}
