package analysis

import (
	"testing"
	"time"

	"moneta/internal/core"
)

func mkRecord(name string, cents int64, date time.Time, category string) core.LedgerRecord {
	rec := core.LedgerRecord{Name: name, Date: date, CategoryName: category}
	if cents != 0 {
		rec.Amount = &core.Money{Cents: cents}
	}
	return rec
}

var (
	testWindowStart = time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	testWindowEnd   = time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	nov = time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)
	dec = time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	jan = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
)

func TestAggregateTotalsAndBalance(t *testing.T) {
	incomes := []core.LedgerRecord{
		mkRecord("Salary Nov", 1000000, nov, ""),
		mkRecord("Salary Dec", 1000000, dec, ""),
		mkRecord("Salary Jan", 1000000, jan, ""),
	}
	expenses := []core.LedgerRecord{
		mkRecord("Rent", 400000, nov, "Housing"),
		mkRecord("Rent", 500000, dec, "Housing"),
		mkRecord("Travel", 900000, jan, "Travel"),
	}

	got := Aggregate(core.Profile{ID: 1, FullName: "Asha"}, incomes, expenses, testWindowStart, testWindowEnd)

	if got.TotalIncome != 3000000 {
		t.Errorf("TotalIncome = %d, want 3000000", got.TotalIncome)
	}
	if got.TotalExpense != 1800000 {
		t.Errorf("TotalExpense = %d, want 1800000", got.TotalExpense)
	}
	if got.NetBalance != got.TotalIncome-got.TotalExpense {
		t.Errorf("NetBalance = %d, want income-expense = %d", got.NetBalance, got.TotalIncome-got.TotalExpense)
	}
	if got.SavingsRate != 40.0 {
		t.Errorf("SavingsRate = %v, want 40.0", got.SavingsRate)
	}
	if got.IncomeCount != 3 || got.ExpenseCount != 3 {
		t.Errorf("counts = %d/%d, want 3/3", got.IncomeCount, got.ExpenseCount)
	}
}

func TestAggregateMonthlyBucketsChronological(t *testing.T) {
	// Input deliberately out of order.
	incomes := []core.LedgerRecord{
		mkRecord("Jan", 150050, jan, ""),
		mkRecord("Nov", 100000, nov, ""),
		mkRecord("Dec", 200000, dec, ""),
		mkRecord("Nov again", 50000, nov, ""),
	}

	got := Aggregate(core.Profile{ID: 1}, incomes, nil, testWindowStart, testWindowEnd)

	wantLabels := []string{"Nov 2024", "Dec 2024", "Jan 2025"}
	if len(got.MonthlyIncome) != len(wantLabels) {
		t.Fatalf("got %d buckets, want %d", len(got.MonthlyIncome), len(wantLabels))
	}
	for i, want := range wantLabels {
		if got.MonthlyIncome[i].Label != want {
			t.Errorf("bucket[%d] = %q, want %q", i, got.MonthlyIncome[i].Label, want)
		}
	}
	if got.MonthlyIncome[0].Amount != 150000 {
		t.Errorf("Nov bucket = %d, want merged 150000", got.MonthlyIncome[0].Amount)
	}
}

func TestAggregateSkipsPartialRecords(t *testing.T) {
	incomes := []core.LedgerRecord{
		mkRecord("dated", 100000, nov, ""),
		mkRecord("no amount", 0, dec, ""),
		mkRecord("no date", 50000, time.Time{}, ""),
	}

	got := Aggregate(core.Profile{ID: 1}, incomes, nil, testWindowStart, testWindowEnd)

	// Undated records count toward totals but not buckets; amount-less
	// records count toward neither. All three count toward the record count.
	if got.TotalIncome != 150000 {
		t.Errorf("TotalIncome = %d, want 150000", got.TotalIncome)
	}
	if len(got.MonthlyIncome) != 1 {
		t.Errorf("got %d buckets, want 1", len(got.MonthlyIncome))
	}
	if got.IncomeCount != 3 {
		t.Errorf("IncomeCount = %d, want 3", got.IncomeCount)
	}
}

func TestAggregateZeroIncomeSavingsRate(t *testing.T) {
	expenses := []core.LedgerRecord{mkRecord("Rent", 400000, nov, "")}

	got := Aggregate(core.Profile{ID: 1}, nil, expenses, testWindowStart, testWindowEnd)

	if got.SavingsRate != 0 {
		t.Errorf("SavingsRate = %v, want 0 with no income", got.SavingsRate)
	}
	if got.NetBalance != -400000 {
		t.Errorf("NetBalance = %d, want -400000", got.NetBalance)
	}
}

func TestAggregateCategoryTotals(t *testing.T) {
	expenses := []core.LedgerRecord{
		mkRecord("Rent", 400000, nov, "Housing"),
		mkRecord("Repairs", 100000, dec, "Housing"),
		mkRecord("Mystery", 50000, dec, ""),
	}

	got := Aggregate(core.Profile{ID: 1}, nil, expenses, testWindowStart, testWindowEnd)

	if got.CategoryExpenses["Housing"] != 500000 {
		t.Errorf("Housing = %d, want 500000", got.CategoryExpenses["Housing"])
	}
	if got.CategoryExpenses["Uncategorized"] != 50000 {
		t.Errorf("Uncategorized = %d, want 50000", got.CategoryExpenses["Uncategorized"])
	}
}

func TestAggregateTopExpenses(t *testing.T) {
	expenses := []core.LedgerRecord{
		mkRecord("a", 100, nov, ""),
		mkRecord("b", 600, nov, ""),
		mkRecord("c", 300, nov, ""),
		mkRecord("tie-first", 500, nov, ""),
		mkRecord("tie-second", 500, dec, ""),
		mkRecord("d", 200, nov, ""),
		mkRecord("e", 50, nov, ""),
	}

	got := Aggregate(core.Profile{ID: 1}, nil, expenses, testWindowStart, testWindowEnd)

	if len(got.TopExpenses) != 5 {
		t.Fatalf("got %d top expenses, want 5", len(got.TopExpenses))
	}
	wantOrder := []string{"b", "tie-first", "tie-second", "c", "d"}
	for i, want := range wantOrder {
		if got.TopExpenses[i].Name != want {
			t.Errorf("top[%d] = %q, want %q", i, got.TopExpenses[i].Name, want)
		}
	}
	if got.TopExpenses[0].Date != "2024-11-15" {
		t.Errorf("top[0].Date = %q, want 2024-11-15", got.TopExpenses[0].Date)
	}
}

func TestAggregateIncomeGrowth(t *testing.T) {
	t.Run("computed from last two buckets", func(t *testing.T) {
		incomes := []core.LedgerRecord{
			mkRecord("Nov", 100000, nov, ""),
			mkRecord("Dec", 100000, dec, ""),
			mkRecord("Jan", 125000, jan, ""),
		}
		got := Aggregate(core.Profile{ID: 1}, incomes, nil, testWindowStart, testWindowEnd)
		if got.IncomeGrowth == nil || *got.IncomeGrowth != 25.0 {
			t.Errorf("IncomeGrowth = %v, want 25.0", got.IncomeGrowth)
		}
	})

	t.Run("omitted with a single bucket", func(t *testing.T) {
		incomes := []core.LedgerRecord{mkRecord("Nov", 100000, nov, "")}
		got := Aggregate(core.Profile{ID: 1}, incomes, nil, testWindowStart, testWindowEnd)
		if got.IncomeGrowth != nil {
			t.Errorf("IncomeGrowth = %v, want nil", *got.IncomeGrowth)
		}
	})
}

func TestAggregateProfileDefaults(t *testing.T) {
	got := Aggregate(core.Profile{ID: 7}, nil, nil, testWindowStart, testWindowEnd)
	if got.ProfileName != "User" {
		t.Errorf("ProfileName = %q, want User for empty name", got.ProfileName)
	}
	if got.Currency != "₹" {
		t.Errorf("Currency = %q", got.Currency)
	}
	if got.DataFrom != "2024-11-01" || got.DataTo != "2025-04-30" {
		t.Errorf("window = %s..%s", got.DataFrom, got.DataTo)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	incomes := []core.LedgerRecord{
		mkRecord("a", 100000, nov, ""),
		mkRecord("b", 200000, dec, ""),
	}
	expenses := []core.LedgerRecord{
		mkRecord("x", 50000, nov, "Food"),
		mkRecord("y", 60000, dec, "Food"),
	}

	first := Aggregate(core.Profile{ID: 1}, incomes, expenses, testWindowStart, testWindowEnd)
	for i := 0; i < 10; i++ {
		again := Aggregate(core.Profile{ID: 1}, incomes, expenses, testWindowStart, testWindowEnd)
		if again.TotalIncome != first.TotalIncome ||
			again.SavingsRate != first.SavingsRate ||
			len(again.MonthlyIncome) != len(first.MonthlyIncome) ||
			again.MonthlyIncome[0].Label != first.MonthlyIncome[0].Label {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}
