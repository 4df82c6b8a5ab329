package analytics

import (
	"fmt"
	"sort"
	"time"

	"paydown/internal/core"
)

// thaiMonths holds the abbreviated Thai month labels used on chart axes.
var thaiMonths = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// MonthlyChartItem is one month bucket of the fixed-year chart.
type MonthlyChartItem struct {
	Month      string     `json:"month"` // YYYY-MM
	MonthLabel string     `json:"monthLabel"`
	Income     core.Money `json:"income"`
	Expense    core.Money `json:"expense"`
}

// PeriodRow is one bucket of a dynamic monthly or daily summary.
type PeriodRow struct {
	Period       string     `json:"period"` // YYYY-MM or YYYY-MM-DD
	TotalIncome  core.Money `json:"totalIncome"`
	TotalExpense core.Money `json:"totalExpense"`
	Balance      core.Money `json:"balance"`
	Count        int        `json:"count"`
}

// MonthlyChart buckets a year's transactions into exactly 12 entries,
// one per calendar month, so charts always render a complete axis.
// Months without data carry zero sums. Transactions outside the given
// year are ignored.
func MonthlyChart(txs []core.Transaction, year int) []MonthlyChartItem {
	items := make([]MonthlyChartItem, 12)
	for m := 0; m < 12; m++ {
		items[m] = MonthlyChartItem{
			Month:      fmt.Sprintf("%04d-%02d", year, m+1),
			MonthLabel: thaiMonths[m],
		}
	}

	for _, tx := range txs {
		if tx.Date.Year() != year {
			continue
		}
		m := int(tx.Date.Month()) - 1
		if tx.Type == core.Income {
			items[m].Income.Satang += tx.Amount.Satang
		} else {
			items[m].Expense.Satang += tx.Amount.Satang
		}
	}
	return items
}

// MonthlySummary groups transactions by YYYY-MM, most recent period
// first. Buckets are created on demand from whatever subset the caller
// supplies (apply a Filter beforehand to narrow it).
func MonthlySummary(txs []core.Transaction) []PeriodRow {
	return summarizeByPeriod(txs, func(t time.Time) string {
		return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
	})
}

// DailySummary groups transactions by YYYY-MM-DD, most recent day first.
func DailySummary(txs []core.Transaction) []PeriodRow {
	return summarizeByPeriod(txs, func(t time.Time) string {
		return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
	})
}

// summarizeByPeriod is the shared reduction: sum income and expense per
// key, derive balance, count rows, sort keys descending.
func summarizeByPeriod(txs []core.Transaction, keyFn func(time.Time) string) []PeriodRow {
	buckets := make(map[string]*PeriodRow)
	for _, tx := range txs {
		key := keyFn(tx.Date)
		row, ok := buckets[key]
		if !ok {
			row = &PeriodRow{Period: key}
			buckets[key] = row
		}
		row.Count++
		if tx.Type == core.Income {
			row.TotalIncome.Satang += tx.Amount.Satang
		} else {
			row.TotalExpense.Satang += tx.Amount.Satang
		}
		row.Balance.Satang = row.TotalIncome.Satang - row.TotalExpense.Satang
	}

	rows := make([]PeriodRow, 0, len(buckets))
	for _, row := range buckets {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Period > rows[j].Period
	})
	return rows
}
