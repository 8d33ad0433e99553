package core

import (
	"errors"
	"strings"
	"time"
)

const (
	KindIncome  LedgerKind = "income"
	KindExpense LedgerKind = "expense"
)

type (
	// LedgerKind discriminates the two kinds of ledger records. Incomes and
	// expenses share one shape; the kind is a tag, not a type hierarchy.
	LedgerKind string

	// LedgerRecord is a single income or expense entry belonging to one profile.
	// Amount is a pointer because legacy rows may carry a NULL amount; the
	// aggregation pipeline skips such records instead of failing.
	LedgerRecord struct {
		ID           int64
		ProfileID    int64
		CategoryID   int64
		CategoryName string
		Name         string
		Icon         string
		Amount       *Money
		Date         time.Time
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	// Profile identifies the owner of a ledger.
	Profile struct {
		ID        int64
		FullName  string
		Email     string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Category labels ledger records. Type matches a LedgerKind.
	Category struct {
		ID        int64
		ProfileID int64
		Name      string
		Type      string
		Icon      string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	ErrInvalidKind      = errors.New("invalid ledger kind")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyName        = errors.New("empty name")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrRecordNotFound   = errors.New("record not found")
)

// Valid reports whether the kind is one of the two known discriminants.
func (k LedgerKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Table returns the storage table backing this kind.
func (k LedgerKind) Table() string {
	if k == KindIncome {
		return "incomes"
	}
	return "expenses"
}

func (r LedgerRecord) Validate() error {
	if len(strings.TrimSpace(r.Name)) == 0 {
		return ErrEmptyName
	}
	if len(r.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if r.Amount == nil {
		return ErrInvalidAmount
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if !LedgerKind(c.Type).Valid() {
		return ErrInvalidKind
	}
	return nil
}

func (p Profile) Validate() error {
	if len(strings.TrimSpace(p.FullName)) == 0 {
		return ErrEmptyName
	}
	if !strings.Contains(p.Email, "@") {
		return errors.New("invalid email")
	}
	return nil
}
