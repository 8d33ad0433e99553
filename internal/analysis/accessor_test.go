package analysis

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"moneta/internal/core"
	"moneta/internal/log"
)

type fakeStore struct {
	rangeRecords  []core.LedgerRecord
	rangeErr      error
	allRecords    []core.LedgerRecord
	allErr        error
	latestRecords []core.LedgerRecord
	latestErr     error

	latestLimit int
}

func (f *fakeStore) RecordsByDateRange(_ context.Context, _ int64, _ core.LedgerKind, _, _ time.Time) ([]core.LedgerRecord, error) {
	return f.rangeRecords, f.rangeErr
}

func (f *fakeStore) RecordsByProfile(_ context.Context, _ int64, _ core.LedgerKind) ([]core.LedgerRecord, error) {
	return f.allRecords, f.allErr
}

func (f *fakeStore) LatestRecords(_ context.Context, _ int64, _ core.LedgerKind, limit int) ([]core.LedgerRecord, error) {
	f.latestLimit = limit
	return f.latestRecords, f.latestErr
}

func testLogger() *log.Logger {
	return log.New(slog.LevelError, log.ComponentAnalysis)
}

func TestFetchPrefersRangeQuery(t *testing.T) {
	store := &fakeStore{
		rangeRecords: []core.LedgerRecord{mkRecord("in range", 100, nov, "")},
		allRecords:   []core.LedgerRecord{mkRecord("everything", 200, nov, "")},
	}
	a := NewAccessor(store, testLogger())

	got := a.Fetch(context.Background(), 1, core.KindIncome, testWindowStart, testWindowEnd)
	if len(got) != 1 || got[0].Name != "in range" {
		t.Errorf("Fetch = %+v, want the range query result", got)
	}
}

func TestFetchFallsBackToFilter(t *testing.T) {
	before := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	after := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{
		rangeErr: errors.New("range query broken"),
		allRecords: []core.LedgerRecord{
			mkRecord("too old", 100, before, ""),
			mkRecord("inside", 200, nov, ""),
			mkRecord("after window end", 300, after, ""),
			mkRecord("undated", 400, time.Time{}, ""),
		},
	}
	a := NewAccessor(store, testLogger())

	got := a.Fetch(context.Background(), 1, core.KindIncome, testWindowStart, testWindowEnd)

	// The filter strategy enforces only the lower bound, so the record
	// dated after the window end survives.
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(got), got)
	}
	if got[0].Name != "inside" || got[1].Name != "after window end" {
		t.Errorf("unexpected records: %+v", got)
	}
}

func TestFetchFallsBackToLatest(t *testing.T) {
	store := &fakeStore{
		rangeErr:      errors.New("range query broken"),
		allErr:        errors.New("profile scan broken"),
		latestRecords: []core.LedgerRecord{mkRecord("latest", 100, nov, "")},
	}
	a := NewAccessor(store, testLogger())

	got := a.Fetch(context.Background(), 1, core.KindExpense, testWindowStart, testWindowEnd)
	if len(got) != 1 || got[0].Name != "latest" {
		t.Errorf("Fetch = %+v, want latest records", got)
	}
	if store.latestLimit != 5 {
		t.Errorf("latest limit = %d, want 5", store.latestLimit)
	}
}

func TestFetchAllStrategiesFail(t *testing.T) {
	store := &fakeStore{
		rangeErr:  errors.New("broken"),
		allErr:    errors.New("broken"),
		latestErr: errors.New("broken"),
	}
	a := NewAccessor(store, testLogger())

	got := a.Fetch(context.Background(), 1, core.KindIncome, testWindowStart, testWindowEnd)
	if got != nil {
		t.Errorf("Fetch = %+v, want nil when every strategy fails", got)
	}
}

func TestFetchEmptyRangeIsNotAFailure(t *testing.T) {
	store := &fakeStore{
		rangeRecords: []core.LedgerRecord{},
		allRecords:   []core.LedgerRecord{mkRecord("should not be reached", 100, nov, "")},
	}
	a := NewAccessor(store, testLogger())

	got := a.Fetch(context.Background(), 1, core.KindIncome, testWindowStart, testWindowEnd)
	if len(got) != 0 {
		t.Errorf("Fetch = %+v, want the empty range result without falling back", got)
	}
}
