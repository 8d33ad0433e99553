package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"moneta/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedProfile(t *testing.T, repo *SQLiteRepository) core.Profile {
	t.Helper()
	p, err := repo.CreateProfile(context.Background(), core.Profile{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	return p
}

func seedRecord(t *testing.T, repo *SQLiteRepository, kind core.LedgerKind, profileID int64, name string, cents int64, date time.Time) core.LedgerRecord {
	t.Helper()
	rec, err := repo.CreateRecord(context.Background(), kind, core.LedgerRecord{
		ProfileID: profileID,
		Name:      name,
		Amount:    &core.Money{Cents: cents},
		Date:      date,
	})
	if err != nil {
		t.Fatalf("CreateRecord(%s, %s): %v", kind, name, err)
	}
	return rec
}

func TestProfileRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	p := seedProfile(t, repo)

	got, err := repo.GetProfile(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.FullName != "Asha Verma" || got.Email != "asha@example.com" {
		t.Errorf("unexpected profile: %+v", got)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetProfile(context.Background(), 999)
	if !errors.Is(err, core.ErrProfileNotFound) {
		t.Errorf("GetProfile(999) = %v, want ErrProfileNotFound", err)
	}
}

func TestCategories(t *testing.T) {
	repo := newTestRepo(t)
	p := seedProfile(t, repo)

	cat, err := repo.CreateCategory(context.Background(), core.Category{
		ProfileID: p.ID, Name: "Groceries", Type: "expense",
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	got, err := repo.GetCategory(context.Background(), cat.ID)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got.Name != "Groceries" || got.Type != "expense" {
		t.Errorf("unexpected category: %+v", got)
	}

	list, err := repo.ListCategories(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("ListCategories returned %d categories, want 1", len(list))
	}

	if _, err := repo.GetCategory(context.Background(), 12345); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Errorf("GetCategory(12345) = %v, want ErrCategoryNotFound", err)
	}
}

func TestRecordQueries(t *testing.T) {
	repo := newTestRepo(t)
	p := seedProfile(t, repo)
	ctx := context.Background()

	cat, err := repo.CreateCategory(ctx, core.Category{ProfileID: p.ID, Name: "Rent", Type: "expense"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	seedRecord(t, repo, core.KindIncome, p.ID, "Salary Jan", 1000000, jan)
	seedRecord(t, repo, core.KindIncome, p.ID, "Salary Feb", 1000000, feb)
	seedRecord(t, repo, core.KindIncome, p.ID, "Salary Mar", 1000000, mar)

	rent, err := repo.CreateRecord(ctx, core.KindExpense, core.LedgerRecord{
		ProfileID:  p.ID,
		CategoryID: cat.ID,
		Name:       "January rent",
		Amount:     &core.Money{Cents: 400000},
		Date:       jan,
	})
	if err != nil {
		t.Fatalf("CreateRecord(expense): %v", err)
	}

	t.Run("date range filters and orders", func(t *testing.T) {
		got, err := repo.RecordsByDateRange(ctx, p.ID, core.KindIncome, feb, mar)
		if err != nil {
			t.Fatalf("RecordsByDateRange: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d records, want 2", len(got))
		}
		if got[0].Name != "Salary Feb" || got[1].Name != "Salary Mar" {
			t.Errorf("wrong order: %s, %s", got[0].Name, got[1].Name)
		}
	})

	t.Run("by profile newest first", func(t *testing.T) {
		got, err := repo.RecordsByProfile(ctx, p.ID, core.KindIncome)
		if err != nil {
			t.Fatalf("RecordsByProfile: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d records, want 3", len(got))
		}
		if got[0].Name != "Salary Mar" {
			t.Errorf("first record = %s, want Salary Mar", got[0].Name)
		}
	})

	t.Run("latest honors limit", func(t *testing.T) {
		got, err := repo.LatestRecords(ctx, p.ID, core.KindIncome, 2)
		if err != nil {
			t.Fatalf("LatestRecords: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d records, want 2", len(got))
		}
	})

	t.Run("category name joined", func(t *testing.T) {
		got, err := repo.RecordsByProfile(ctx, p.ID, core.KindExpense)
		if err != nil {
			t.Fatalf("RecordsByProfile(expense): %v", err)
		}
		if len(got) != 1 || got[0].CategoryName != "Rent" {
			t.Errorf("expected joined category name Rent, got %+v", got)
		}
	})

	t.Run("records by month", func(t *testing.T) {
		got, err := repo.RecordsByMonth(ctx, p.ID, core.KindIncome, 2025, 2)
		if err != nil {
			t.Fatalf("RecordsByMonth: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Salary Feb" {
			t.Errorf("RecordsByMonth(2025, 2) = %+v", got)
		}
	})

	t.Run("totals", func(t *testing.T) {
		total, err := repo.TotalByProfile(ctx, p.ID, core.KindIncome)
		if err != nil {
			t.Fatalf("TotalByProfile: %v", err)
		}
		if total != 3000000 {
			t.Errorf("income total = %d, want 3000000", total)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.DeleteRecord(ctx, core.KindExpense, p.ID, rent.ID); err != nil {
			t.Fatalf("DeleteRecord: %v", err)
		}
		err := repo.DeleteRecord(ctx, core.KindExpense, p.ID, rent.ID)
		if !errors.Is(err, core.ErrRecordNotFound) {
			t.Errorf("second delete = %v, want ErrRecordNotFound", err)
		}
	})
}

func TestInvalidKindRejected(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.RecordsByProfile(ctx, 1, core.LedgerKind("bogus")); !errors.Is(err, core.ErrInvalidKind) {
		t.Errorf("RecordsByProfile(bogus) = %v, want ErrInvalidKind", err)
	}
	if _, err := repo.CreateRecord(ctx, core.LedgerKind("bogus"), core.LedgerRecord{}); !errors.Is(err, core.ErrInvalidKind) {
		t.Errorf("CreateRecord(bogus) = %v, want ErrInvalidKind", err)
	}
}
