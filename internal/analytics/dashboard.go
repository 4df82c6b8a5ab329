package analytics

import (
	"time"

	"paydown/internal/core"
)

// Dashboard is the single response object behind the dashboard endpoint:
// everything is recomputed from one snapshot of the user's records.
type Dashboard struct {
	Summary            SummaryStats       `json:"summary"`
	UpcomingPayments   []UpcomingPayment  `json:"upcomingPayments"`
	RecentTransactions []core.Transaction `json:"recentTransactions"`
	MonthlyChart       []MonthlyChartItem `json:"monthlyChart"`
	DebtBreakdown      []BreakdownItem    `json:"debtBreakdown"`
}

// BuildDashboard assembles the dashboard from one consistent snapshot:
// the full debt collection, the current year's transactions, and the
// most recent transactions for the activity feed. The chart year is
// taken from now.
func BuildDashboard(debts []core.Debt, yearlyTxs, recentTxs []core.Transaction, now time.Time) Dashboard {
	return Dashboard{
		Summary:            Summarize(debts),
		UpcomingPayments:   UpcomingPayments(debts, now),
		RecentTransactions: recentTxs,
		MonthlyChart:       MonthlyChart(yearlyTxs, now.Year()),
		DebtBreakdown:      DebtBreakdown(debts),
	}
}
