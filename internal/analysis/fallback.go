package analysis

import (
	"fmt"

	"moneta/internal/core"
)

// FallbackInsight computes a rule-based analysis from the summary alone,
// used whenever the provider is unconfigured or unreachable. It never fails:
// a panic inside the computation is recovered into a result carrying only an
// error description.
func FallbackInsight(summary core.FinancialSummary) (result core.InsightResult) {
	defer func() {
		if r := recover(); r != nil {
			result = core.InsightResult{
				ErrorDescription: "Unable to generate analysis. Please check your data and configuration.",
				Source:           core.SourceFallback,
			}
		}
	}()

	totalIncome := int64(summary.TotalIncome)
	totalExpense := int64(summary.TotalExpense)
	net := totalIncome - totalExpense
	savingsRate := core.RatioPercent(net, totalIncome)

	// Ordered scoring rules; a later rule overwrites an earlier one.
	score := 70
	if savingsRate > 20 {
		score = 85
	}
	if savingsRate < 10 {
		score = 60
	}
	if net < 0 {
		score = 40
	}

	return core.InsightResult{
		OverallAssessment:    "Basic financial analysis. Enable AI for personalized insights and recommendations.",
		FinancialHealthScore: score,
		KeyInsights: []string{
			fmt.Sprintf("Total Income: %s", core.FormatRupees(totalIncome)),
			fmt.Sprintf("Total Expenses: %s", core.FormatRupees(totalExpense)),
			fmt.Sprintf("Net Savings: %s", core.FormatRupees(net)),
			fmt.Sprintf("Savings Rate: %.1f%%", savingsRate),
		},
		Recommendations: []core.Recommendation{
			{
				Title:       "Configure AI Provider",
				Description: "Set up your AI provider credentials for detailed AI-powered financial insights",
				Priority:    "High",
			},
			{
				Title:       "Track Expenses Regularly",
				Description: "Maintain consistent expense tracking to identify spending patterns",
				Priority:    "Medium",
			},
		},
		NextMonthForecast: &core.Forecast{
			ExpectedIncome:   forecastAmount(totalIncome),
			ExpectedExpenses: forecastAmount(totalExpense),
			ExpectedSavings:  forecastAmount(net),
		},
		Source: core.SourceFallback,
	}
}

// forecastAmount projects a six-month total into a per-month rupee figure,
// rounded half-up to two decimals.
func forecastAmount(totalCents int64) float64 {
	return float64(core.DivRoundHalfUp(totalCents, 6)) / 100.0
}
