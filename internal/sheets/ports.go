// Package sheets defines the outbound port for exporting analysis summaries.
package sheets

import (
	"context"

	"moneta/internal/core"
)

// SummaryWriter appends one financial summary row to an external sheet and
// returns a reference to the written row.
type SummaryWriter interface {
	AppendSummary(ctx context.Context, summary core.FinancialSummary) (rowRef string, err error)
}
