// Package analysis implements the financial analysis pipeline: fetch ledger
// records for a window, aggregate them into a summary, ask a language model
// for insights, and fall back to a rule-based analysis when the model is
// unavailable.
package analysis

import (
	"context"
	"time"

	"moneta/internal/core"
	"moneta/internal/log"
)

const latestFallbackLimit = 5

// Store is the read surface the accessor needs from the ledger storage.
type Store interface {
	RecordsByDateRange(ctx context.Context, profileID int64, kind core.LedgerKind, start, end time.Time) ([]core.LedgerRecord, error)
	RecordsByProfile(ctx context.Context, profileID int64, kind core.LedgerKind) ([]core.LedgerRecord, error)
	LatestRecords(ctx context.Context, profileID int64, kind core.LedgerKind, limit int) ([]core.LedgerRecord, error)
}

// Accessor fetches ledger records with a chain of fallback strategies so the
// pipeline degrades to partial data instead of failing outright.
type Accessor struct {
	store  Store
	logger *log.Logger
}

func NewAccessor(store Store, logger *log.Logger) *Accessor {
	return &Accessor{
		store:  store,
		logger: logger.WithComponent(log.ComponentLedger),
	}
}

// Fetch returns the records for one kind inside the analysis window. It
// never returns an error: each strategy failure is logged and the next
// strategy is tried; if every strategy fails the result is empty.
//
// Strategy order:
//  1. range query over [windowStart, windowEnd]
//  2. all records for the profile, filtered to date >= windowStart
//  3. the latest 5 records regardless of date
func (a *Accessor) Fetch(ctx context.Context, profileID int64, kind core.LedgerKind, windowStart, windowEnd time.Time) []core.LedgerRecord {
	strategies := []struct {
		name string
		run  func() ([]core.LedgerRecord, error)
	}{
		{"range", func() ([]core.LedgerRecord, error) {
			return a.store.RecordsByDateRange(ctx, profileID, kind, windowStart, windowEnd)
		}},
		{"filter", func() ([]core.LedgerRecord, error) {
			all, err := a.store.RecordsByProfile(ctx, profileID, kind)
			if err != nil {
				return nil, err
			}
			// Only the lower bound is enforced here: records dated after the
			// window end still count, matching the range query's role as the
			// preferred path rather than duplicating it.
			filtered := make([]core.LedgerRecord, 0, len(all))
			for _, rec := range all {
				if !rec.Date.IsZero() && !rec.Date.Before(windowStart) {
					filtered = append(filtered, rec)
				}
			}
			return filtered, nil
		}},
		{"latest", func() ([]core.LedgerRecord, error) {
			return a.store.LatestRecords(ctx, profileID, kind, latestFallbackLimit)
		}},
	}

	for _, s := range strategies {
		records, err := s.run()
		if err != nil {
			a.logger.WarnContext(ctx, "fetch strategy failed",
				log.FieldStrategy, s.name,
				log.FieldKind, string(kind),
				log.FieldProfileID, profileID,
				log.FieldError, err)
			continue
		}
		return records
	}

	a.logger.WarnContext(ctx, "all fetch strategies failed, proceeding with no records",
		log.FieldKind, string(kind),
		log.FieldProfileID, profileID)
	return nil
}
