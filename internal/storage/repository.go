package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"moneta/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// SQLiteRepository is the ledger store. Incomes and expenses live in two
// tables of identical shape; the LedgerKind selects the table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateProfile inserts a profile and returns it with ID and timestamps set.
func (r *SQLiteRepository) CreateProfile(ctx context.Context, p core.Profile) (core.Profile, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (full_name, email, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		p.FullName, p.Email, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return core.Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Profile{}, fmt.Errorf("profile id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now

	slog.InfoContext(ctx, "Profile created", "id", id, "email", p.Email)
	return p, nil
}

// GetProfile returns core.ErrProfileNotFound for unknown IDs.
func (r *SQLiteRepository) GetProfile(ctx context.Context, id int64) (core.Profile, error) {
	var (
		p                    core.Profile
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, full_name, email, created_at, updated_at FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.FullName, &p.Email, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Profile{}, core.ErrProfileNotFound
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("select profile %d: %w", id, err)
	}
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return p, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (profile_id, name, type, icon, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ProfileID, c.Name, c.Type, c.Icon, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("category id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var (
		c                    core.Category
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, profile_id, name, type, icon, created_at, updated_at FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.ProfileID, &c.Name, &c.Type, &c.Icon, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrCategoryNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("select category %d: %w", id, err)
	}
	c.CreatedAt = parseTimestamp(createdAt)
	c.UpdatedAt = parseTimestamp(updatedAt)
	return c, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, profileID int64) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, profile_id, name, type, icon, created_at, updated_at FROM categories WHERE profile_id = ? ORDER BY name`,
		profileID)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var (
			c                    core.Category
			createdAt, updatedAt string
		)
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.Name, &c.Type, &c.Icon, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CreatedAt = parseTimestamp(createdAt)
		c.UpdatedAt = parseTimestamp(updatedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateRecord inserts a ledger record of the given kind.
func (r *SQLiteRepository) CreateRecord(ctx context.Context, kind core.LedgerKind, rec core.LedgerRecord) (core.LedgerRecord, error) {
	if !kind.Valid() {
		return core.LedgerRecord{}, core.ErrInvalidKind
	}
	now := time.Now().UTC()
	var categoryID any
	if rec.CategoryID > 0 {
		categoryID = rec.CategoryID
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (profile_id, category_id, name, icon, amount_cents, date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, kind.Table()),
		rec.ProfileID, categoryID, rec.Name, rec.Icon, rec.Amount.Cents, rec.Date.Format(dateLayout),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return core.LedgerRecord{}, fmt.Errorf("insert %s: %w", kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.LedgerRecord{}, fmt.Errorf("%s id: %w", kind, err)
	}
	rec.ID = id
	rec.CreatedAt = now
	rec.UpdatedAt = now

	slog.InfoContext(ctx, "Ledger record created",
		"kind", string(kind),
		"id", id,
		"profile_id", rec.ProfileID,
		"amount_cents", rec.Amount.Cents)
	return rec, nil
}

// DeleteRecord removes a record owned by the profile. Missing rows yield
// core.ErrRecordNotFound.
func (r *SQLiteRepository) DeleteRecord(ctx context.Context, kind core.LedgerKind, profileID, id int64) error {
	if !kind.Valid() {
		return core.ErrInvalidKind
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND profile_id = ?`, kind.Table()), id, profileID)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

const recordColumns = `r.id, r.profile_id, COALESCE(r.category_id, 0), COALESCE(c.name, ''),
	r.name, r.icon, r.amount_cents, COALESCE(r.date, ''), r.created_at, r.updated_at`

// RecordsByDateRange returns records with date in [start, end], oldest first.
func (r *SQLiteRepository) RecordsByDateRange(ctx context.Context, profileID int64, kind core.LedgerKind, start, end time.Time) ([]core.LedgerRecord, error) {
	if !kind.Valid() {
		return nil, core.ErrInvalidKind
	}
	query := fmt.Sprintf(`SELECT %s FROM %s r LEFT JOIN categories c ON c.id = r.category_id
		WHERE r.profile_id = ? AND r.date >= ? AND r.date <= ? ORDER BY r.date`,
		recordColumns, kind.Table())
	return r.queryRecords(ctx, query, profileID, start.Format(dateLayout), end.Format(dateLayout))
}

// RecordsByProfile returns every record for the profile, newest first.
func (r *SQLiteRepository) RecordsByProfile(ctx context.Context, profileID int64, kind core.LedgerKind) ([]core.LedgerRecord, error) {
	if !kind.Valid() {
		return nil, core.ErrInvalidKind
	}
	query := fmt.Sprintf(`SELECT %s FROM %s r LEFT JOIN categories c ON c.id = r.category_id
		WHERE r.profile_id = ? ORDER BY r.date DESC`,
		recordColumns, kind.Table())
	return r.queryRecords(ctx, query, profileID)
}

// LatestRecords returns the most recent records for the profile regardless
// of date, newest first.
func (r *SQLiteRepository) LatestRecords(ctx context.Context, profileID int64, kind core.LedgerKind, limit int) ([]core.LedgerRecord, error) {
	if !kind.Valid() {
		return nil, core.ErrInvalidKind
	}
	query := fmt.Sprintf(`SELECT %s FROM %s r LEFT JOIN categories c ON c.id = r.category_id
		WHERE r.profile_id = ? ORDER BY r.date DESC LIMIT ?`,
		recordColumns, kind.Table())
	return r.queryRecords(ctx, query, profileID, limit)
}

// RecordsByMonth returns records for one calendar month, oldest first.
func (r *SQLiteRepository) RecordsByMonth(ctx context.Context, profileID int64, kind core.LedgerKind, year, month int) ([]core.LedgerRecord, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return r.RecordsByDateRange(ctx, profileID, kind, start, end)
}

// TotalByProfile sums every non-null amount for the profile and kind.
func (r *SQLiteRepository) TotalByProfile(ctx context.Context, profileID int64, kind core.LedgerKind) (int64, error) {
	if !kind.Valid() {
		return 0, core.ErrInvalidKind
	}
	var total int64
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COALESCE(SUM(amount_cents), 0) FROM %s WHERE profile_id = ?`, kind.Table()),
		profileID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum %s: %w", kind, err)
	}
	return total, nil
}

func (r *SQLiteRepository) queryRecords(ctx context.Context, query string, args ...any) ([]core.LedgerRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.LedgerRecord
	for rows.Next() {
		var (
			rec                  core.LedgerRecord
			amount               sql.NullInt64
			date                 string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.ProfileID, &rec.CategoryID, &rec.CategoryName,
			&rec.Name, &rec.Icon, &amount, &date, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if amount.Valid {
			rec.Amount = &core.Money{Cents: amount.Int64}
		}
		if date != "" {
			if d, err := time.Parse(dateLayout, date); err == nil {
				rec.Date = d
			}
		}
		rec.CreatedAt = parseTimestamp(createdAt)
		rec.UpdatedAt = parseTimestamp(updatedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
