package analytics

import (
	"sort"
	"time"

	"paydown/internal/core"
)

// UpcomingPayment is one near-term obligation derived from an active,
// scheduled debt.
type UpcomingPayment struct {
	DebtID          int64      `json:"debtId"`
	Name            string     `json:"name"`
	Lender          string     `json:"lender,omitempty"`
	MinimumPayment  core.Money `json:"minimumPayment"`
	RemainingAmount core.Money `json:"remainingAmount"`
	DueDateDay      int        `json:"dueDateDay"`
	DaysUntilDue    int        `json:"daysUntilDue"`
	Urgency         Urgency    `json:"urgency"`
}

// UpcomingPayments resolves the next due date for every active debt that
// carries a schedule and sorts the result soonest-first. Ties keep input
// order. No truncation happens here; callers take a top-N slice for
// display if they need one.
func UpcomingPayments(debts []core.Debt, now time.Time) []UpcomingPayment {
	upcoming := make([]UpcomingPayment, 0, len(debts))
	for _, d := range debts {
		if d.Status != core.StatusActive || !d.HasSchedule() {
			continue
		}
		days := DaysUntilDue(now, d.DueDateDay)
		upcoming = append(upcoming, UpcomingPayment{
			DebtID:          d.ID,
			Name:            d.Name,
			Lender:          d.Lender,
			MinimumPayment:  d.MinimumPayment,
			RemainingAmount: d.RemainingAmount,
			DueDateDay:      d.DueDateDay,
			DaysUntilDue:    days,
			Urgency:         ClassifyUrgency(days),
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntilDue < upcoming[j].DaysUntilDue
	})
	return upcoming
}
