// Package worker exports finished analyses to Google Sheets, driven by AMQP
// messages from the API service.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"moneta/internal/amqp"
	"moneta/internal/analysis"
	"moneta/internal/core"
	"moneta/internal/sheets"
)

// ExportWorker recomputes a profile's financial summary and appends it to
// the configured sheet. The message only names the profile; the data is read
// fresh from storage so a delayed delivery still exports current numbers.
type ExportWorker struct {
	profiles     analysis.ProfileStore
	accessor     *analysis.Accessor
	writer       sheets.SummaryWriter
	windowMonths int
}

func NewExportWorker(profiles analysis.ProfileStore, accessor *analysis.Accessor, writer sheets.SummaryWriter, windowMonths int) *ExportWorker {
	if windowMonths <= 0 {
		windowMonths = 6
	}
	return &ExportWorker{
		profiles:     profiles,
		accessor:     accessor,
		writer:       writer,
		windowMonths: windowMonths,
	}
}

// HandleExportMessage processes one analysis export message.
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.AnalysisExportMessage) error {
	slog.InfoContext(ctx, "Processing export message",
		"profile_id", msg.ProfileID,
		"generated_at", msg.GeneratedAt)

	profile, err := w.profiles.GetProfile(ctx, msg.ProfileID)
	if err != nil {
		return fmt.Errorf("get profile %d: %w", msg.ProfileID, err)
	}

	windowEnd := time.Now()
	windowStart := windowEnd.AddDate(0, -w.windowMonths, 0)

	incomes := w.accessor.Fetch(ctx, profile.ID, core.KindIncome, windowStart, windowEnd)
	expenses := w.accessor.Fetch(ctx, profile.ID, core.KindExpense, windowStart, windowEnd)

	summary := analysis.Aggregate(profile, incomes, expenses, windowStart, windowEnd)

	ref, err := w.writer.AppendSummary(ctx, summary)
	if err != nil {
		return fmt.Errorf("append summary to sheets: %w", err)
	}

	slog.InfoContext(ctx, "Exported analysis summary",
		"profile_id", profile.ID,
		"sheets_ref", ref,
		"total_income_cents", int64(summary.TotalIncome),
		"total_expense_cents", int64(summary.TotalExpense))

	return nil
}
