package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"saveit/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func insertTestTransaction(t *testing.T, repo *SQLiteRepository, title string, cents int64, kind core.TransactionKind, category string, date time.Time) int64 {
	t.Helper()
	id, err := repo.InsertTransaction(context.Background(), TransactionFromCore(core.Transaction{
		Title:    title,
		Amount:   core.Money{Cents: cents},
		Kind:     kind,
		Category: category,
		Date:     date,
	}))
	if err != nil {
		t.Fatalf("InsertTransaction(%q) error = %v", title, err)
	}
	return id
}

func TestInsertAndGetTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	date := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	id := insertTestTransaction(t, repo, "Groceries", 7250, core.Expense, "Food", date)
	if id < 1 {
		t.Fatalf("InsertTransaction() id = %d, want >= 1", id)
	}

	got, err := repo.TransactionByID(ctx, id)
	if err != nil {
		t.Fatalf("TransactionByID() error = %v", err)
	}
	if got.Title != "Groceries" || got.Amount.Cents != 7250 || got.Kind != core.Expense || got.Category != "Food" {
		t.Errorf("TransactionByID() = %+v", got)
	}
	if !got.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", got.Date, date)
	}
}

func TestTransactionByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.TransactionByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("TransactionByID(999) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := insertTestTransaction(t, repo, "Coffee", 450, core.Expense, "Food", time.Now().UTC())

	if err := repo.DeleteTransaction(ctx, id); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if _, err := repo.TransactionByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("TransactionByID after delete error = %v, want ErrNotFound", err)
	}

	if err := repo.DeleteTransaction(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteTransaction twice error = %v, want ErrNotFound", err)
	}
}

func TestTotalsAndRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	insertTestTransaction(t, repo, "Salary", 200000, core.Income, "Salary", base)
	insertTestTransaction(t, repo, "Rent", 80000, core.Expense, "Bills", base.AddDate(0, 0, 1))
	insertTestTransaction(t, repo, "Lunch", 1500, core.Expense, "Food", base.AddDate(0, 0, 2))

	income, err := repo.TotalByKind(ctx, core.Income)
	if err != nil {
		t.Fatalf("TotalByKind(income) error = %v", err)
	}
	if income != 200000 {
		t.Errorf("income total = %d, want 200000", income)
	}

	expense, err := repo.TotalByKind(ctx, core.Expense)
	if err != nil {
		t.Fatalf("TotalByKind(expense) error = %v", err)
	}
	if expense != 81500 {
		t.Errorf("expense total = %d, want 81500", expense)
	}

	recent, err := repo.RecentTransactions(ctx, 2)
	if err != nil {
		t.Fatalf("RecentTransactions() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len(recent) = %d, want 2", len(recent))
	}
	if recent[0].Title != "Lunch" || recent[1].Title != "Rent" {
		t.Errorf("recent order = %q, %q; want Lunch, Rent", recent[0].Title, recent[1].Title)
	}
}

func TestTotalByKindEmptyLedger(t *testing.T) {
	repo := newTestRepo(t)

	total, err := repo.TotalByKind(context.Background(), core.Income)
	if err != nil {
		t.Fatalf("TotalByKind() error = %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0 on empty ledger", total)
	}
}

func TestSpendingByCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	insertTestTransaction(t, repo, "Lunch", 1500, core.Expense, "Food", base)
	insertTestTransaction(t, repo, "Dinner", 3500, core.Expense, "Food", base.AddDate(0, 0, 1))
	insertTestTransaction(t, repo, "Bus", 250, core.Expense, "Travel", base)
	// Income never counts as spending.
	insertTestTransaction(t, repo, "Salary", 200000, core.Income, "Salary", base)

	spending, err := repo.SpendingByCategory(ctx)
	if err != nil {
		t.Fatalf("SpendingByCategory() error = %v", err)
	}

	totals := make(map[string]int64)
	for _, s := range spending {
		totals[s.Category] = s.Total.Cents
	}
	if totals["Food"] != 5000 {
		t.Errorf("Food = %d, want 5000", totals["Food"])
	}
	if totals["Travel"] != 250 {
		t.Errorf("Travel = %d, want 250", totals["Travel"])
	}
	if _, ok := totals["Salary"]; ok {
		t.Errorf("income category leaked into spending: %v", totals)
	}
}

func TestRangeQueries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	insertTestTransaction(t, repo, "February", 1000, core.Expense, "Food", time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC))
	insertTestTransaction(t, repo, "Early March", 2000, core.Expense, "Food", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	insertTestTransaction(t, repo, "Late March", 3000, core.Expense, "Travel", time.Date(2025, 3, 31, 23, 59, 59, 999000000, time.UTC))
	insertTestTransaction(t, repo, "April", 4000, core.Expense, "Food", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 23, 59, 59, 999000000, time.UTC)

	total, err := repo.TotalExpenseInRange(ctx, start, end)
	if err != nil {
		t.Fatalf("TotalExpenseInRange() error = %v", err)
	}
	if total != 5000 {
		t.Errorf("March total = %d, want 5000 (inclusive bounds)", total)
	}

	byCat, err := repo.SpendingByCategoryInRange(ctx, start, end)
	if err != nil {
		t.Fatalf("SpendingByCategoryInRange() error = %v", err)
	}
	if len(byCat) != 2 {
		t.Errorf("len = %d, want 2 categories in March", len(byCat))
	}
}

func TestUpsertBudget(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	b := Budget{Category: "Food", LimitCents: 10000, Month: 3, Year: 2025}
	id, err := repo.UpsertBudget(ctx, b)
	if err != nil {
		t.Fatalf("UpsertBudget() error = %v", err)
	}
	if id < 1 {
		t.Fatalf("UpsertBudget() id = %d, want >= 1", id)
	}

	// Same category+month+year collapses onto the existing row.
	b.LimitCents = 15000
	id2, err := repo.UpsertBudget(ctx, b)
	if err != nil {
		t.Fatalf("UpsertBudget() second call error = %v", err)
	}
	if id2 != id {
		t.Errorf("conflicting upsert id = %d, want %d", id2, id)
	}

	got, err := repo.BudgetByID(ctx, id)
	if err != nil {
		t.Fatalf("BudgetByID() error = %v", err)
	}
	if got.Limit.Cents != 15000 {
		t.Errorf("limit after upsert = %d, want 15000", got.Limit.Cents)
	}

	budgets, err := repo.BudgetsForMonth(ctx, 3, 2025)
	if err != nil {
		t.Fatalf("BudgetsForMonth() error = %v", err)
	}
	if len(budgets) != 1 {
		t.Errorf("len(budgets) = %d, want 1 (no duplicates)", len(budgets))
	}
}

func TestUpsertBudgetByIDUpdatesLimitOnly(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.UpsertBudget(ctx, Budget{Category: "Travel", LimitCents: 20000, Month: 3, Year: 2025})
	if err != nil {
		t.Fatalf("UpsertBudget() error = %v", err)
	}

	if _, err := repo.UpsertBudget(ctx, Budget{ID: id, Category: "Travel", LimitCents: 25000, Month: 3, Year: 2025}); err != nil {
		t.Fatalf("UpsertBudget(by id) error = %v", err)
	}

	got, err := repo.BudgetByID(ctx, id)
	if err != nil {
		t.Fatalf("BudgetByID() error = %v", err)
	}
	if got.Limit.Cents != 25000 {
		t.Errorf("limit = %d, want 25000", got.Limit.Cents)
	}

	if _, err := repo.UpsertBudget(ctx, Budget{ID: 999, Category: "Travel", LimitCents: 100, Month: 3, Year: 2025}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpsertBudget(missing id) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteBudget(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.UpsertBudget(ctx, Budget{Category: "Fun", LimitCents: 5000, Month: 3, Year: 2025})
	if err != nil {
		t.Fatalf("UpsertBudget() error = %v", err)
	}

	if err := repo.DeleteBudget(ctx, id); err != nil {
		t.Fatalf("DeleteBudget() error = %v", err)
	}
	if _, err := repo.BudgetByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("BudgetByID after delete error = %v, want ErrNotFound", err)
	}
}

func TestExportStateLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := insertTestTransaction(t, repo, "First", 100, core.Expense, "Food", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	second := insertTestTransaction(t, repo, "Second", 200, core.Expense, "Food", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))

	pending, err := repo.PendingExportTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("PendingExportTransactions() error = %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("len(pending) = %d, want 2", len(pending))
	}
	// Oldest first.
	if pending[0].ID != first {
		t.Errorf("pending[0].ID = %d, want %d", pending[0].ID, first)
	}

	if err := repo.MarkExported(ctx, first); err != nil {
		t.Fatalf("MarkExported() error = %v", err)
	}
	if err := repo.MarkExportError(ctx, second); err != nil {
		t.Fatalf("MarkExportError() error = %v", err)
	}

	pending, err = repo.PendingExportTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("PendingExportTransactions() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("len(pending) = %d, want 0 after marking", len(pending))
	}
}

func TestSettingsDefaultsAndRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	symbol, err := repo.CurrencySymbol(ctx)
	if err != nil {
		t.Fatalf("CurrencySymbol() error = %v", err)
	}
	if symbol != DefaultCurrencySymbol {
		t.Errorf("default symbol = %q, want %q", symbol, DefaultCurrencySymbol)
	}

	theme, err := repo.ThemeMode(ctx)
	if err != nil {
		t.Fatalf("ThemeMode() error = %v", err)
	}
	if theme != DefaultThemeMode {
		t.Errorf("default theme = %q, want %q", theme, DefaultThemeMode)
	}

	if err := repo.SaveCurrency(ctx, "€"); err != nil {
		t.Fatalf("SaveCurrency() error = %v", err)
	}
	if err := repo.SaveTheme(ctx, "DARK"); err != nil {
		t.Fatalf("SaveTheme() error = %v", err)
	}

	symbol, _ = repo.CurrencySymbol(ctx)
	if symbol != "€" {
		t.Errorf("symbol = %q, want €", symbol)
	}
	theme, _ = repo.ThemeMode(ctx)
	if theme != "DARK" {
		t.Errorf("theme = %q, want DARK", theme)
	}

	// Saving again overwrites rather than duplicating.
	if err := repo.SaveCurrency(ctx, "£"); err != nil {
		t.Fatalf("SaveCurrency() second call error = %v", err)
	}
	symbol, _ = repo.CurrencySymbol(ctx)
	if symbol != "£" {
		t.Errorf("symbol = %q, want £", symbol)
	}
}

func TestTransactionsByCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	march := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	insertTestTransaction(t, repo, "Groceries", 5000, core.Expense, "Food", march)
	insertTestTransaction(t, repo, "Lunch", 1500, core.Expense, "Food", april)
	insertTestTransaction(t, repo, "Cashback", 300, core.Income, "Food", april)
	insertTestTransaction(t, repo, "Fuel", 4000, core.Expense, "Travel", march)

	all, err := repo.TransactionsByCategory(ctx, "Food")
	if err != nil {
		t.Fatalf("TransactionsByCategory() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// Newest first.
	if all[0].Title == "Groceries" {
		t.Errorf("first = %q, want an April row first", all[0].Title)
	}

	start, end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	inMarch, err := repo.TransactionsByCategoryInRange(ctx, "Food", start, end)
	if err != nil {
		t.Fatalf("TransactionsByCategoryInRange() error = %v", err)
	}
	if len(inMarch) != 1 || inMarch[0].Title != "Groceries" {
		t.Errorf("in range = %+v, want only Groceries", inMarch)
	}

	expenses, err := repo.TransactionsByCategoryAndKind(ctx, "Food", core.Expense)
	if err != nil {
		t.Fatalf("TransactionsByCategoryAndKind() error = %v", err)
	}
	if len(expenses) != 2 {
		t.Errorf("expense rows = %d, want 2", len(expenses))
	}
	for _, tx := range expenses {
		if tx.Kind != core.Expense {
			t.Errorf("row %q kind = %q, want EXPENSE", tx.Title, tx.Kind)
		}
	}

	empty, err := repo.TransactionsByCategory(ctx, "Health")
	if err != nil {
		t.Fatalf("TransactionsByCategory(Health) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unused category rows = %d, want 0", len(empty))
	}
}
