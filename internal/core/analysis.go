package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Rupees is an amount in paise that marshals as a plain decimal number with
// two fractional digits, e.g. 1000050 -> 10000.50.
type Rupees int64

func (r Rupees) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(r)/100.0, 'f', 2, 64)), nil
}

// MonthlyAmount is one calendar-month bucket of a summary series.
type MonthlyAmount struct {
	Label  string // "Jan 2006"
	Amount Rupees
}

// MonthlySeries is a chronologically ordered month-label -> amount mapping.
// It marshals as a JSON object whose keys keep their insertion order, which
// plain Go maps cannot guarantee.
type MonthlySeries []MonthlyAmount

func (s MonthlySeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := m.Amount.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TopExpense is one entry of the top-expenses ranking.
type TopExpense struct {
	Name     string `json:"name"`
	Amount   Rupees `json:"amount"`
	Date     string `json:"date"` // "2006-01-02", or "Unknown"
	Category string `json:"category"`
}

// FinancialSummary is the normalized aggregate computed from raw ledger
// records over an analysis window. It is derived on every request and never
// persisted.
type FinancialSummary struct {
	ProfileID        int64             `json:"profileId"`
	ProfileName      string            `json:"profileName"`
	Currency         string            `json:"currency"`
	AnalysisPeriod   string            `json:"analysisPeriod"`
	DataFrom         string            `json:"dataFrom"`
	DataTo           string            `json:"dataTo"`
	TotalIncome      Rupees            `json:"totalIncome"`
	TotalExpense     Rupees            `json:"totalExpense"`
	NetBalance       Rupees            `json:"netBalance"`
	SavingsRate      float64           `json:"savingsRate"`
	MonthlyIncome    MonthlySeries     `json:"monthlyIncome"`
	MonthlyExpense   MonthlySeries     `json:"monthlyExpense"`
	CategoryExpenses map[string]Rupees `json:"categoryExpenses"`
	IncomeCount      int               `json:"incomeCount"`
	ExpenseCount     int               `json:"expenseCount"`
	TopExpenses      []TopExpense      `json:"topExpenses"`
	IncomeGrowth     *float64          `json:"incomeGrowth,omitempty"`
}

// InsightSource records whether an insight came from the generative provider
// or from the rule-based fallback. Internal only; callers are not supposed to
// branch on provenance, so it stays out of the JSON shape.
type InsightSource string

const (
	SourceProvider InsightSource = "provider"
	SourceFallback InsightSource = "fallback"
)

type (
	// InsightResult is the structured financial analysis returned to callers.
	// Both the provider-parsed and the fallback-computed variants satisfy this
	// one shape.
	InsightResult struct {
		OverallAssessment    string            `json:"overallAssessment"`
		FinancialHealthScore int               `json:"financialHealthScore"`
		KeyInsights          []string          `json:"keyInsights"`
		MonthlyAnalysis      *MonthlyAnalysis  `json:"monthlyAnalysis,omitempty"`
		CategoryAnalysis     *CategoryAnalysis `json:"categoryAnalysis,omitempty"`
		Recommendations      []Recommendation  `json:"recommendations"`
		RiskAlerts           []RiskAlert       `json:"riskAlerts,omitempty"`
		PredictedSavings     float64           `json:"predictedSavings,omitempty"`
		NextMonthForecast    *Forecast         `json:"nextMonthForecast,omitempty"`

		// TextAnalysis carries the raw provider output verbatim when it could
		// not be parsed into the structured shape.
		TextAnalysis string `json:"textAnalysis,omitempty"`
		// ErrorDescription is only set when even the fallback computation
		// failed; every other field is then empty.
		ErrorDescription string `json:"error,omitempty"`

		Source InsightSource `json:"-"`
	}

	MonthlyAnalysis struct {
		BestMonth  string `json:"bestMonth"`
		WorstMonth string `json:"worstMonth"`
		Trend      string `json:"trend"`
	}

	CategoryAnalysis struct {
		TopSpendingCategory         string  `json:"topSpendingCategory"`
		RecommendedCategoryToReduce string  `json:"recommendedCategoryToReduce"`
		SavingsOpportunity          float64 `json:"savingsOpportunity"`
	}

	Recommendation struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"` // High, Medium, Low
	}

	RiskAlert struct {
		Type     string `json:"type"`
		Message  string `json:"message"`
		Severity string `json:"severity"` // Warning, Danger, Info
	}

	Forecast struct {
		ExpectedIncome   float64 `json:"expectedIncome"`
		ExpectedExpenses float64 `json:"expectedExpenses"`
		ExpectedSavings  float64 `json:"expectedSavings"`
	}
)

// AnalysisResult is what the pipeline exposes upward. Success=false still
// carries a populated Analysis; degradation is signaled, never returned as a
// bare error.
type AnalysisResult struct {
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"`
	Analysis  InsightResult    `json:"analysis"`
	RawData   FinancialSummary `json:"rawData"`
	Timestamp time.Time        `json:"timestamp"`
	ModelUsed string           `json:"aiModel,omitempty"`
}
