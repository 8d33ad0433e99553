package analysis

import (
	"testing"

	"moneta/internal/core"
)

func summaryWith(incomeCents, expenseCents int64) core.FinancialSummary {
	return core.FinancialSummary{
		TotalIncome:  core.Rupees(incomeCents),
		TotalExpense: core.Rupees(expenseCents),
		NetBalance:   core.Rupees(incomeCents - expenseCents),
		SavingsRate:  core.RatioPercent(incomeCents-expenseCents, incomeCents),
	}
}

func TestFallbackInsightScoring(t *testing.T) {
	tests := []struct {
		name      string
		income    int64
		expense   int64
		wantScore int
	}{
		{"moderate savings", 1000000, 850000, 70},    // 15% rate
		{"high savings", 1000000, 700000, 85},        // 30% rate
		{"low savings", 1000000, 950000, 60},         // 5% rate
		{"negative balance", 1000000, 1200000, 40},   // overspending
		{"exactly 20 percent", 1000000, 800000, 70},  // boundary, not >20
		{"exactly 10 percent", 1000000, 900000, 70},  // boundary, not <10
		{"zero income overspend", 0, 100000, 40},     // rate 0 (<10) then net<0
		{"zero income zero expense", 0, 0, 60},       // rate 0 hits the <10 rule
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackInsight(summaryWith(tt.income, tt.expense))
			if got.FinancialHealthScore != tt.wantScore {
				t.Errorf("score = %d, want %d", got.FinancialHealthScore, tt.wantScore)
			}
		})
	}
}

func TestFallbackInsightKeyInsights(t *testing.T) {
	got := FallbackInsight(summaryWith(10000000, 6500000))

	want := []string{
		"Total Income: ₹100,000.00",
		"Total Expenses: ₹65,000.00",
		"Net Savings: ₹35,000.00",
		"Savings Rate: 35.0%",
	}
	if len(got.KeyInsights) != len(want) {
		t.Fatalf("got %d insights, want %d", len(got.KeyInsights), len(want))
	}
	for i, w := range want {
		if got.KeyInsights[i] != w {
			t.Errorf("insight[%d] = %q, want %q", i, got.KeyInsights[i], w)
		}
	}
}

func TestFallbackInsightForecast(t *testing.T) {
	// 30,000 income and 18,000 expenses over the window divide to
	// 5,000 and 3,000 per month.
	got := FallbackInsight(summaryWith(3000000, 1800000))

	f := got.NextMonthForecast
	if f == nil {
		t.Fatal("forecast missing")
	}
	if f.ExpectedIncome != 5000.00 {
		t.Errorf("expectedIncome = %v, want 5000.00", f.ExpectedIncome)
	}
	if f.ExpectedExpenses != 3000.00 {
		t.Errorf("expectedExpenses = %v, want 3000.00", f.ExpectedExpenses)
	}
	if f.ExpectedSavings != 2000.00 {
		t.Errorf("expectedSavings = %v, want 2000.00", f.ExpectedSavings)
	}
}

func TestFallbackInsightForecastRounding(t *testing.T) {
	// 100.00 over six months is 16.666..., rounded half-up to 16.67.
	got := FallbackInsight(summaryWith(10000, 0))
	if got.NextMonthForecast.ExpectedIncome != 16.67 {
		t.Errorf("expectedIncome = %v, want 16.67", got.NextMonthForecast.ExpectedIncome)
	}
}

func TestFallbackInsightRecommendations(t *testing.T) {
	got := FallbackInsight(summaryWith(1000000, 500000))

	if len(got.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(got.Recommendations))
	}
	if got.Recommendations[0].Priority != "High" || got.Recommendations[1].Priority != "Medium" {
		t.Errorf("priorities = %s/%s, want High/Medium",
			got.Recommendations[0].Priority, got.Recommendations[1].Priority)
	}
	if got.Source != core.SourceFallback {
		t.Errorf("source = %q, want fallback", got.Source)
	}
	if got.ErrorDescription != "" {
		t.Errorf("unexpected error description %q", got.ErrorDescription)
	}
}
