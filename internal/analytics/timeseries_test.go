package analytics

import (
	"reflect"
	"testing"
	"time"

	"paydown/internal/core"
)

func tx(txType core.TransactionType, satang int64, date time.Time) core.Transaction {
	return core.Transaction{
		Type:     txType,
		Category: core.CategoryOther,
		Amount:   core.Money{Satang: satang},
		Date:     date,
	}
}

func TestMonthlyChartAlwaysTwelveBuckets(t *testing.T) {
	got := MonthlyChart(nil, 2025)
	if len(got) != 12 {
		t.Fatalf("len = %d, want 12", len(got))
	}
	for i, item := range got {
		if item.Income.Satang != 0 || item.Expense.Satang != 0 {
			t.Errorf("month %d: sums = (%d, %d), want zeros", i+1, item.Income.Satang, item.Expense.Satang)
		}
		if item.MonthLabel != thaiMonths[i] {
			t.Errorf("month %d: label = %q, want %q", i+1, item.MonthLabel, thaiMonths[i])
		}
	}
	if got[0].Month != "2025-01" || got[11].Month != "2025-12" {
		t.Errorf("month keys = %q..%q, want 2025-01..2025-12", got[0].Month, got[11].Month)
	}
}

func TestMonthlyChartSums(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Income, 50000, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)),
		tx(core.Income, 20000, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)),
		tx(core.Expense, 15000, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		tx(core.Expense, 9000, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)),
		tx(core.Income, 77777, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), // other year, ignored
	}

	got := MonthlyChart(txs, 2025)
	march := got[2]
	if march.Income.Satang != 70000 || march.Expense.Satang != 15000 {
		t.Errorf("march = (%d, %d), want (70000, 15000)", march.Income.Satang, march.Expense.Satang)
	}
	november := got[10]
	if november.Expense.Satang != 9000 {
		t.Errorf("november expense = %d, want 9000", november.Expense.Satang)
	}
}

func TestMonthlySummary(t *testing.T) {
	june := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx(core.Income, 10000, june),
		tx(core.Expense, 4000, june),
		tx(core.Expense, 2500, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
	}

	got := MonthlySummary(txs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Most recent period first.
	if got[0].Period != "2025-06" || got[1].Period != "2025-05" {
		t.Errorf("periods = [%s, %s], want [2025-06, 2025-05]", got[0].Period, got[1].Period)
	}
	if got[0].Balance.Satang != 6000 || got[0].Count != 2 {
		t.Errorf("june row = balance %d count %d, want balance 6000 count 2", got[0].Balance.Satang, got[0].Count)
	}
	if got[1].Balance.Satang != -2500 {
		t.Errorf("may balance = %d, want -2500", got[1].Balance.Satang)
	}
}

func TestDailySummary(t *testing.T) {
	day := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx(core.Income, 10000, day),
		tx(core.Expense, 4000, day.Add(5*time.Hour)),
		tx(core.Income, 100, day.AddDate(0, 0, 1)),
	}

	got := DailySummary(txs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Period != "2025-06-16" || got[1].Period != "2025-06-15" {
		t.Errorf("periods = [%s, %s], want [2025-06-16, 2025-06-15]", got[0].Period, got[1].Period)
	}
	if got[1].Balance.Satang != 6000 || got[1].Count != 2 {
		t.Errorf("row = balance %d count %d, want balance 6000 count 2", got[1].Balance.Satang, got[1].Count)
	}
}

func TestSummaryIdempotence(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Income, 12345, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
		tx(core.Expense, 678, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)),
		tx(core.Expense, 90, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
	}

	first := MonthlySummary(txs)
	second := MonthlySummary(txs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation diverged: %+v vs %+v", first, second)
	}
}

func TestApplyFilter(t *testing.T) {
	base := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	food := tx(core.Expense, 100, base)
	food.Category = core.CategoryFood
	salary := tx(core.Income, 500, base.AddDate(0, 0, 5))
	salary.Category = core.CategorySalary
	old := tx(core.Expense, 200, base.AddDate(0, -2, 0))
	old.Category = core.CategoryFood

	txs := []core.Transaction{food, salary, old}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"empty filter matches all", Filter{}, 3},
		{"by type", Filter{Type: core.Income}, 1},
		{"by category", Filter{Category: core.CategoryFood}, 2},
		{"by start date", Filter{StartDate: base}, 2},
		{"by end date", Filter{EndDate: base}, 2},
		{"inclusive range bounds", Filter{StartDate: base, EndDate: base}, 1},
		{"combined", Filter{Type: core.Expense, StartDate: base}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(txs, tt.filter)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2025, time.February)
	if start.Day() != 1 || end.Day() != 28 {
		t.Errorf("february 2025 range = %v..%v, want day 1..28", start, end)
	}
	_, leapEnd := MonthRange(2024, time.February)
	if leapEnd.Day() != 29 {
		t.Errorf("february 2024 end day = %d, want 29", leapEnd.Day())
	}
}
