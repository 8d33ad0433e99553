package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"moneta/internal/core"
	"moneta/internal/llm"
	"moneta/internal/log"
)

const probePrompt = "Hello, respond with 'OK' if you can hear me."

// Requester turns a financial summary into one generation call against the
// configured language model. No retries: a failure at any stage routes the
// caller to the rule-based fallback.
type Requester struct {
	client  llm.Client
	timeout time.Duration
	logger  *log.Logger
}

// NewRequester wraps a provider client. A nil client means no provider is
// configured; RequestInsight then fails fast with llm.ErrNotConfigured.
func NewRequester(client llm.Client, timeout time.Duration, logger *log.Logger) *Requester {
	return &Requester{
		client:  client,
		timeout: timeout,
		logger:  logger.WithComponent(log.ComponentLLM),
	}
}

// Model returns the configured model identifier, or "" without a client.
func (r *Requester) Model() string {
	if r.client == nil {
		return ""
	}
	return r.client.Model()
}

// Probe checks provider reachability with a trivial prompt. Any error or an
// empty reply counts as unreachable.
func (r *Requester) Probe(ctx context.Context) error {
	if r.client == nil {
		return llm.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := r.client.Generate(ctx, probePrompt)
	if err != nil {
		return fmt.Errorf("%w: %v", llm.ErrConnectivity, err)
	}
	if strings.TrimSpace(reply) == "" {
		return fmt.Errorf("%w: empty probe reply", llm.ErrConnectivity)
	}
	r.logger.InfoContext(ctx, "provider probe succeeded", log.FieldModel, r.client.Model())
	return nil
}

// RequestInsight probes the provider, then sends the analysis prompt and
// returns the raw response text.
func (r *Requester) RequestInsight(ctx context.Context, summary core.FinancialSummary) (string, error) {
	if r.client == nil {
		return "", llm.ErrNotConfigured
	}
	if err := r.Probe(ctx); err != nil {
		return "", err
	}

	prompt, err := buildPrompt(summary)
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.client.Generate(genCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrProvider, err)
	}
	r.logger.InfoContext(ctx, "insight generated",
		log.FieldModel, r.client.Model(),
		log.FieldOperation, log.OpGenerate)
	return raw, nil
}

// buildPrompt embeds the pretty-printed summary in a prompt that pins the
// response to a rigid JSON shape.
func buildPrompt(summary core.FinancialSummary) (string, error) {
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are an expert financial advisor specializing in personal finance management.
Analyze the following financial data and provide detailed insights and recommendations.

IMPORTANT: You MUST respond with VALID JSON in the exact format specified below.
Do not include any markdown, code blocks, or additional text outside the JSON.

Financial Data:
%s

Required JSON Response Format:
{
  "overallAssessment": "A brief 2-3 sentence assessment of the user's financial health",
  "financialHealthScore": 85,
  "keyInsights": [
    "First key insight about spending patterns",
    "Second key insight about savings",
    "Third key insight about income trends"
  ],
  "monthlyAnalysis": {
    "bestMonth": "Month with highest savings",
    "worstMonth": "Month with highest expenses",
    "trend": "Increasing/Decreasing/Stable"
  },
  "categoryAnalysis": {
    "topSpendingCategory": "Category where most money is spent",
    "recommendedCategoryToReduce": "Category where spending can be reduced",
    "savingsOpportunity": 5000
  },
  "recommendations": [
    {
      "title": "Actionable recommendation title",
      "description": "Detailed description of the recommendation",
      "priority": "High/Medium/Low"
    }
  ],
  "riskAlerts": [
    {
      "type": "Spending Alert",
      "message": "Specific alert message",
      "severity": "Warning/Danger/Info"
    }
  ],
  "predictedSavings": 15000,
  "nextMonthForecast": {
    "expectedIncome": 50000,
    "expectedExpenses": 35000,
    "expectedSavings": 15000
  }
}

Guidelines:
1. All amounts should be in Indian Rupees (₹)
2. Be specific, actionable, and practical
3. Focus on Indian financial context and realities
4. Provide realistic numbers based on the data
5. FinancialHealthScore should be 0-100 based on savings rate, spending patterns, and consistency
`, jsonData), nil
}
