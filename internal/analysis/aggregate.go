package analysis

import (
	"sort"
	"time"

	"moneta/internal/core"
)

const (
	monthLayout = "Jan 2006"
	dateLayout  = "2006-01-02"
	topExpenses = 5
)

// Aggregate folds raw ledger records into a FinancialSummary. It is pure and
// deterministic: no I/O, no clock reads, same input same output.
//
// Records with a zero date are left out of the monthly buckets; records with
// a nil amount are skipped everywhere. Totals and counts are computed over
// the full input, independent of the bucketing.
func Aggregate(profile core.Profile, incomes, expenses []core.LedgerRecord, windowStart, windowEnd time.Time) core.FinancialSummary {
	summary := core.FinancialSummary{
		ProfileID:      profile.ID,
		ProfileName:    profileName(profile),
		Currency:       "₹",
		AnalysisPeriod: "Last 6 months",
		DataFrom:       windowStart.Format(dateLayout),
		DataTo:         windowEnd.Format(dateLayout),
		IncomeCount:    len(incomes),
		ExpenseCount:   len(expenses),
	}

	summary.MonthlyIncome = bucketByMonth(incomes)
	summary.MonthlyExpense = bucketByMonth(expenses)

	categoryTotals := make(map[string]core.Rupees)
	for _, rec := range expenses {
		if rec.Amount == nil {
			continue
		}
		if rec.Date.IsZero() {
			continue
		}
		name := rec.CategoryName
		if name == "" {
			name = "Uncategorized"
		}
		categoryTotals[name] += core.Rupees(rec.Amount.Cents)
	}
	summary.CategoryExpenses = categoryTotals

	summary.TotalIncome = sumAmounts(incomes)
	summary.TotalExpense = sumAmounts(expenses)
	summary.NetBalance = summary.TotalIncome - summary.TotalExpense
	summary.SavingsRate = core.RatioPercent(int64(summary.NetBalance), int64(summary.TotalIncome))

	summary.TopExpenses = rankTopExpenses(expenses)
	summary.IncomeGrowth = incomeGrowth(summary.MonthlyIncome)

	return summary
}

func profileName(p core.Profile) string {
	if p.FullName == "" {
		return "User"
	}
	return p.FullName
}

// bucketByMonth sums amounts into chronologically ordered calendar-month
// buckets. Undated and amount-less records are skipped.
func bucketByMonth(records []core.LedgerRecord) core.MonthlySeries {
	totals := make(map[time.Time]int64)
	for _, rec := range records {
		if rec.Date.IsZero() || rec.Amount == nil {
			continue
		}
		month := time.Date(rec.Date.Year(), rec.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals[month] += rec.Amount.Cents
	}

	months := make([]time.Time, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := make(core.MonthlySeries, 0, len(months))
	for _, m := range months {
		series = append(series, core.MonthlyAmount{
			Label:  m.Format(monthLayout),
			Amount: core.Rupees(totals[m]),
		})
	}
	return series
}

func sumAmounts(records []core.LedgerRecord) core.Rupees {
	var total core.Rupees
	for _, rec := range records {
		if rec.Amount == nil {
			continue
		}
		total += core.Rupees(rec.Amount.Cents)
	}
	return total
}

// rankTopExpenses returns up to 5 expenses ordered by amount descending.
// The sort is stable so equal amounts keep their input order.
func rankTopExpenses(expenses []core.LedgerRecord) []core.TopExpense {
	ranked := make([]core.LedgerRecord, 0, len(expenses))
	for _, rec := range expenses {
		if rec.Amount != nil {
			ranked = append(ranked, rec)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.Cents > ranked[j].Amount.Cents
	})
	if len(ranked) > topExpenses {
		ranked = ranked[:topExpenses]
	}

	top := make([]core.TopExpense, 0, len(ranked))
	for _, rec := range ranked {
		date := "Unknown"
		if !rec.Date.IsZero() {
			date = rec.Date.Format(dateLayout)
		}
		category := rec.CategoryName
		if category == "" {
			category = "Uncategorized"
		}
		top = append(top, core.TopExpense{
			Name:     rec.Name,
			Amount:   core.Rupees(rec.Amount.Cents),
			Date:     date,
			Category: category,
		})
	}
	return top
}

// incomeGrowth compares the last two monthly income buckets. It is omitted
// (nil) when fewer than two buckets exist or the previous month was not
// positive, so callers can tell "no growth" apart from "not computable".
func incomeGrowth(monthly core.MonthlySeries) *float64 {
	if len(monthly) < 2 {
		return nil
	}
	latest := int64(monthly[len(monthly)-1].Amount)
	previous := int64(monthly[len(monthly)-2].Amount)
	if previous <= 0 {
		return nil
	}
	growth := core.RatioPercent(latest-previous, previous)
	return &growth
}
