package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestLedgerKind(t *testing.T) {
	if !KindIncome.Valid() || !KindExpense.Valid() {
		t.Error("income and expense kinds must be valid")
	}
	if LedgerKind("savings").Valid() {
		t.Error("unknown kind must be invalid")
	}
	if KindIncome.Table() != "incomes" || KindExpense.Table() != "expenses" {
		t.Errorf("unexpected tables: %s, %s", KindIncome.Table(), KindExpense.Table())
	}
}

func TestLedgerRecordValidate(t *testing.T) {
	valid := LedgerRecord{
		Name:   "Salary",
		Amount: &Money{Cents: 1000000},
		Date:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mutate  func(r *LedgerRecord)
		wantErr error
	}{
		{"valid", func(r *LedgerRecord) {}, nil},
		{"empty name", func(r *LedgerRecord) { r.Name = "  " }, ErrEmptyName},
		{"nil amount", func(r *LedgerRecord) { r.Amount = nil }, ErrInvalidAmount},
		{"zero amount", func(r *LedgerRecord) { r.Amount = &Money{} }, ErrInvalidAmount},
		{"zero date", func(r *LedgerRecord) { r.Date = time.Time{} }, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			err := rec.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := (Category{Name: "Rent", Type: "expense"}).Validate(); err != nil {
		t.Errorf("valid category rejected: %v", err)
	}
	if err := (Category{Name: "Rent", Type: "other"}).Validate(); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("bad type: got %v, want ErrInvalidKind", err)
	}
	if err := (Category{Name: "", Type: "income"}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: got %v, want ErrEmptyName", err)
	}
}

func TestMonthlySeriesMarshalOrder(t *testing.T) {
	s := MonthlySeries{
		{Label: "Nov 2024", Amount: 1000000},
		{Label: "Dec 2024", Amount: 2000000},
		{Label: "Jan 2025", Amount: 1500050},
	}

	got, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Nov 2024":10000.00,"Dec 2024":20000.00,"Jan 2025":15000.50}`
	if string(got) != want {
		t.Errorf("MonthlySeries JSON = %s, want %s", got, want)
	}
}

func TestRupeesMarshal(t *testing.T) {
	got, err := json.Marshal(Rupees(500000))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != "5000.00" {
		t.Errorf("Rupees JSON = %s, want 5000.00", got)
	}
}
