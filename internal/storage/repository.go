package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a referenced entity does not exist, e.g. a
// transaction deleted between a list emission and a detail fetch. Callers
// treat it as a terminal state, not a retryable failure.
var ErrNotFound = errors.New("not found")

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

// Ping reports whether the underlying database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertTransaction stores a new transaction and returns its assigned id.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (title, amount_cents, kind, category, date_ms, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Title, t.AmountCents, t.Kind, t.Category, t.DateMillis, t.Note)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"title", t.Title,
		"amount_cents", t.AmountCents,
		"kind", t.Kind,
		"category", t.Category)

	return id, nil
}

// DeleteTransaction removes a transaction by id. Deleting an already absent
// row is not an error.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// UpsertBudget inserts a budget, replacing the limit when a budget for the
// same (category, month, year) already exists. When a non-zero id is given
// only the limit is updated, preserving category, month, year and id.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, b Budget) (int64, error) {
	if b.ID != 0 {
		res, err := r.db.ExecContext(ctx,
			`UPDATE budgets SET limit_cents = ? WHERE id = ?`, b.LimitCents, b.ID)
		if err != nil {
			return 0, fmt.Errorf("update budget: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return 0, ErrNotFound
		}
		slog.InfoContext(ctx, "Budget limit updated", "id", b.ID, "limit_cents", b.LimitCents)
		return b.ID, nil
	}

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO budgets (category, limit_cents, month, year)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (category, month, year) DO UPDATE SET limit_cents = excluded.limit_cents
		 RETURNING id`,
		b.Category, b.LimitCents, b.Month, b.Year).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"id", id,
		"category", b.Category,
		"limit_cents", b.LimitCents,
		"month", b.Month,
		"year", b.Year)

	return id, nil
}

// DeleteBudget removes a budget by id.
func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget deleted", "id", id)
	return nil
}
