package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"saveit/internal/core"
)

const transactionColumns = `id, title, amount_cents, kind, category, date_ms, note`

// AllTransactions returns every transaction ordered by date descending.
func (r *SQLiteRepository) AllTransactions(ctx context.Context) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY date_ms DESC`)
}

// RecentTransactions returns the limit most recent transactions.
func (r *SQLiteRepository) RecentTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY date_ms DESC LIMIT ?`, limit)
}

// TotalByKind sums all transaction amounts of one kind. An empty table
// yields zero, which matches the balance identity for an empty ledger.
func (r *SQLiteRepository) TotalByKind(ctx context.Context, kind core.TransactionKind) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE kind = ?`,
		string(kind)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total by kind: %w", err)
	}
	return total, nil
}

// SpendingByCategory returns all-time expense sums grouped by category.
func (r *SQLiteRepository) SpendingByCategory(ctx context.Context) ([]core.CategorySpend, error) {
	return r.queryCategorySums(ctx,
		`SELECT category, SUM(amount_cents) FROM transactions
		 WHERE kind = 'EXPENSE' GROUP BY category`)
}

// SpendingByCategoryInRange returns expense sums grouped by category for
// transactions dated within [start, end] inclusive.
func (r *SQLiteRepository) SpendingByCategoryInRange(ctx context.Context, start, end time.Time) ([]core.CategorySpend, error) {
	return r.queryCategorySums(ctx,
		`SELECT category, SUM(amount_cents) FROM transactions
		 WHERE kind = 'EXPENSE' AND date_ms >= ? AND date_ms <= ?
		 GROUP BY category`,
		start.UnixMilli(), end.UnixMilli())
}

// TotalExpenseInRange sums expenses dated within [start, end] inclusive.
func (r *SQLiteRepository) TotalExpenseInRange(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions
		 WHERE kind = 'EXPENSE' AND date_ms >= ? AND date_ms <= ?`,
		start.UnixMilli(), end.UnixMilli()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total expense in range: %w", err)
	}
	return total, nil
}

// TransactionByID fetches a single transaction, returning ErrNotFound when
// it no longer exists.
func (r *SQLiteRepository) TransactionByID(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction by id: %w", err)
	}
	return t.ToCore(), nil
}

// TransactionsByCategory returns a category's transactions, newest first.
func (r *SQLiteRepository) TransactionsByCategory(ctx context.Context, category string) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE category = ? ORDER BY date_ms DESC`, category)
}

// TransactionsByCategoryInRange narrows TransactionsByCategory to the
// inclusive [start, end] window.
func (r *SQLiteRepository) TransactionsByCategoryInRange(ctx context.Context, category string, start, end time.Time) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE category = ? AND date_ms BETWEEN ? AND ?
		 ORDER BY date_ms DESC`,
		category, start.UnixMilli(), end.UnixMilli())
}

// TransactionsByCategoryAndKind narrows TransactionsByCategory to one kind.
func (r *SQLiteRepository) TransactionsByCategoryAndKind(ctx context.Context, category string, kind core.TransactionKind) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE category = ? AND kind = ? ORDER BY date_ms DESC`,
		category, string(kind))
}

// BudgetsForMonth returns all budgets for the given month and year.
func (r *SQLiteRepository) BudgetsForMonth(ctx context.Context, month, year int) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, limit_cents, month, year FROM budgets
		 WHERE month = ? AND year = ?`, month, year)
	if err != nil {
		return nil, fmt.Errorf("budgets for month: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.LimitCents, &b.Month, &b.Year); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b.ToCore())
	}
	return out, rows.Err()
}

// BudgetByID fetches a single budget, returning ErrNotFound when absent.
func (r *SQLiteRepository) BudgetByID(ctx context.Context, id int64) (core.Budget, error) {
	var b Budget
	err := r.db.QueryRowContext(ctx,
		`SELECT id, category, limit_cents, month, year FROM budgets WHERE id = ?`, id).
		Scan(&b.ID, &b.Category, &b.LimitCents, &b.Month, &b.Year)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("budget by id: %w", err)
	}
	return b.ToCore(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.Title, &t.AmountCents, &t.Kind, &t.Category, &t.DateMillis, &t.Note)
	return t, err
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t.ToCore())
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) queryCategorySums(ctx context.Context, query string, args ...any) ([]core.CategorySpend, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category sums: %w", err)
	}
	defer rows.Close()

	var out []core.CategorySpend
	for rows.Next() {
		var category string
		var total int64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		out = append(out, core.CategorySpend{Category: category, Total: core.Money{Cents: total}})
	}
	return out, rows.Err()
}
