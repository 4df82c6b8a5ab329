package analytics

import "paydown/internal/core"

// SummaryStats is the portfolio-level reduction of a user's debts.
type SummaryStats struct {
	TotalRemaining      core.Money `json:"totalRemaining"`
	TotalOriginal       core.Money `json:"totalOriginal"`
	TotalPaid           core.Money `json:"totalPaid"`
	TotalMinimumPayment core.Money `json:"totalMinimumPayment"`
	ActiveCount         int        `json:"activeCount"`
	PaidOffCount        int        `json:"paidOffCount"`
	PausedCount         int        `json:"pausedCount"`
	ProgressPercent     int        `json:"progressPercent"`
}

// Summarize reduces a debt collection to totals and repayment progress.
// The minimum-payment total only counts active debts. ProgressPercent is
// rounded and clamped to [0,100]; an empty portfolio yields 0, never a
// division by zero.
func Summarize(debts []core.Debt) SummaryStats {
	var s SummaryStats
	for _, d := range debts {
		s.TotalRemaining.Satang += d.RemainingAmount.Satang
		s.TotalOriginal.Satang += d.TotalAmount.Satang

		switch d.Status {
		case core.StatusActive:
			s.ActiveCount++
			s.TotalMinimumPayment.Satang += d.MinimumPayment.Satang
		case core.StatusPaidOff:
			s.PaidOffCount++
		case core.StatusPaused:
			s.PausedCount++
		}
	}

	s.TotalPaid.Satang = s.TotalOriginal.Satang - s.TotalRemaining.Satang
	s.ProgressPercent = roundPercent(s.TotalPaid.Satang, s.TotalOriginal.Satang)
	return s
}

// roundPercent computes round(part/whole*100) in integer arithmetic,
// clamped to [0,100]. A zero whole yields 0.
func roundPercent(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	p := int((part*100 + whole/2) / whole)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
