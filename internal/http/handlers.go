package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"saveit/internal/core"
	"saveit/internal/derive"
	"saveit/internal/storage"
)

const (
	recentTransactionLimit = 5
	homeCacheKey           = "home"
)

// symbol loads the configured currency symbol, falling back to the default
// when settings cannot be read.
func (s *Server) symbol(ctx context.Context) string {
	sym, err := s.storage.CurrencySymbol(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Currency symbol lookup failed", "error", err)
		return storage.DefaultCurrencySymbol
	}
	return sym
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if summary, found := s.homeCache.Get(homeCacheKey); found {
		writeJSON(w, http.StatusOK, summary)
		return
	}

	income, err := s.storage.TotalByKind(ctx, core.Income)
	if err != nil {
		slog.ErrorContext(ctx, "Income total query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	expense, err := s.storage.TotalByKind(ctx, core.Expense)
	if err != nil {
		slog.ErrorContext(ctx, "Expense total query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	recent, err := s.storage.RecentTransactions(ctx, recentTransactionLimit)
	if err != nil {
		slog.ErrorContext(ctx, "Recent transactions query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}

	summary := derive.BuildHomeSummary(income, expense, recent, s.symbol(ctx))
	s.homeCache.Set(homeCacheKey, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	kind := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("kind")))
	switch kind {
	case "", "EXPENSE":
		writeJSON(w, http.StatusOK, core.ExpenseCategories)
	case "INCOME":
		writeJSON(w, http.StatusOK, core.IncomeCategories)
	default:
		writeError(w, http.StatusBadRequest, "kind must be EXPENSE or INCOME")
	}
}

// handleCategoryTransactions lists one category's transactions, optionally
// narrowed to a kind or to a calendar month.
func (s *Server) handleCategoryTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category := strings.TrimSpace(r.PathValue("name"))
	if category == "" {
		writeError(w, http.StatusBadRequest, "category name is required")
		return
	}

	kind := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("kind")))

	var (
		transactions []core.Transaction
		err          error
	)
	switch {
	case kind != "":
		if kind != string(core.Expense) && kind != string(core.Income) {
			writeError(w, http.StatusBadRequest, "kind must be EXPENSE or INCOME")
			return
		}
		transactions, err = s.storage.TransactionsByCategoryAndKind(ctx, category, core.TransactionKind(kind))
	case r.URL.Query().Get("month") != "":
		month, perr := queryInt(r, "month", 0)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr.Error())
			return
		}
		year, perr := queryInt(r, "year", time.Now().Year())
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr.Error())
			return
		}
		if month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
			return
		}
		start, end := derive.MonthCursor{Year: year, Month: time.Month(month)}.Range()
		transactions, err = s.storage.TransactionsByCategoryInRange(ctx, category, start, end)
	default:
		transactions, err = s.storage.TransactionsByCategory(ctx, category)
	}
	if err != nil {
		slog.ErrorContext(ctx, "Category transactions query failed", "error", err, "category", category)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	writeJSON(w, http.StatusOK, derive.Rows(transactions, s.symbol(ctx)))
}

type transactionRequest struct {
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Kind     string `json:"kind"`
	Category string `json:"category"`
	DateMs   int64  `json:"date_ms"`
	Note     string `json:"note"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	date := time.Now().UTC()
	if req.DateMs > 0 {
		date = time.UnixMilli(req.DateMs).UTC()
	}

	t := core.Transaction{
		Title:    strings.TrimSpace(req.Title),
		Amount:   core.Money{Cents: cents},
		Kind:     core.TransactionKind(strings.ToUpper(strings.TrimSpace(req.Kind))),
		Category: strings.TrimSpace(req.Category),
		Date:     date,
		Note:     strings.TrimSpace(req.Note),
	}

	id, err := s.tracker.SaveTransaction(ctx, t)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(ctx, "Transaction save failed", "error", err, "title", t.Title)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	transactions, err := s.storage.AllTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Transaction list query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	buckets := derive.BucketByDay(transactions, s.symbol(ctx), time.Now())
	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleTransactionDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := s.storage.TransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(ctx, "Transaction lookup failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}

	writeJSON(w, http.StatusOK, derive.BuildTransactionDetail(t, s.symbol(ctx)))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.tracker.DeleteTransaction(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(ctx, "Transaction delete failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	criteria := derive.Criteria{
		Query:    strings.TrimSpace(q.Get("q")),
		Kind:     derive.KindAll,
		Date:     derive.DateAllTime,
		Category: strings.TrimSpace(q.Get("category")),
		Sort:     derive.SortNewest,
	}

	if v := strings.ToUpper(strings.TrimSpace(q.Get("kind"))); v != "" {
		switch derive.KindFilter(v) {
		case derive.KindAll, derive.KindExpense, derive.KindIncome:
			criteria.Kind = derive.KindFilter(v)
		default:
			writeError(w, http.StatusBadRequest, "kind must be ALL, EXPENSE or INCOME")
			return
		}
	}
	if v := strings.ToUpper(strings.TrimSpace(q.Get("date"))); v != "" {
		switch derive.DateFilter(v) {
		case derive.DateAllTime, derive.DateThisMonth, derive.DateLast30Days, derive.DateLast7Days:
			criteria.Date = derive.DateFilter(v)
		default:
			writeError(w, http.StatusBadRequest, "date must be ALL_TIME, THIS_MONTH, LAST_30_DAYS or LAST_7_DAYS")
			return
		}
	}
	if v := strings.ToUpper(strings.TrimSpace(q.Get("sort"))); v != "" {
		switch derive.SortOption(v) {
		case derive.SortNewest, derive.SortOldest, derive.SortHighestAmount, derive.SortLowestAmount:
			criteria.Sort = derive.SortOption(v)
		default:
			writeError(w, http.StatusBadRequest, "sort must be NEWEST, OLDEST, HIGHEST_AMOUNT or LOWEST_AMOUNT")
			return
		}
	}

	transactions, err := s.storage.AllTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Transaction list query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	rows := derive.Search(transactions, criteria, s.symbol(ctx), time.Now())
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cursor := derive.CurrentMonth(time.Now()).Shift(offset)
	start, end := cursor.Range()
	cacheKey := start.Format("2006-01")

	if analytics, found := s.analyticsCache.Get(cacheKey); found {
		writeJSON(w, http.StatusOK, analytics)
		return
	}

	total, err := s.storage.TotalExpenseInRange(ctx, start, end)
	if err != nil {
		slog.ErrorContext(ctx, "Expense total query failed", "error", err, "year", cursor.Year, "month", int(cursor.Month))
		writeError(w, http.StatusInternalServerError, "failed to load analytics")
		return
	}
	byCategory, err := s.storage.SpendingByCategoryInRange(ctx, start, end)
	if err != nil {
		slog.ErrorContext(ctx, "Category spending query failed", "error", err, "year", cursor.Year, "month", int(cursor.Month))
		writeError(w, http.StatusInternalServerError, "failed to load analytics")
		return
	}

	analytics := derive.BuildMonthAnalytics(cursor, total, byCategory, s.symbol(ctx))
	s.analyticsCache.Set(cacheKey, analytics)
	writeJSON(w, http.StatusOK, analytics)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()

	month, err := queryInt(r, "month", int(now.Month()))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, err := queryInt(r, "year", now.Year())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	budgets, err := s.storage.BudgetsForMonth(ctx, month, year)
	if err != nil {
		slog.ErrorContext(ctx, "Budget list query failed", "error", err, "month", month, "year", year)
		writeError(w, http.StatusInternalServerError, "failed to load budgets")
		return
	}
	spending, err := s.storage.SpendingByCategory(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Category spending query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load budgets")
		return
	}

	overview := derive.BuildBudgetOverview(budgets, spending, s.symbol(ctx))
	writeJSON(w, http.StatusOK, overview)
}

type budgetRequest struct {
	Category string `json:"category"`
	Limit    string `json:"limit"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Limit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid limit")
		return
	}

	b := core.Budget{
		Category: strings.TrimSpace(req.Category),
		Limit:    core.Money{Cents: cents},
		Month:    req.Month,
		Year:     req.Year,
	}

	id, err := s.tracker.SaveBudget(ctx, b)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(ctx, "Budget save failed", "error", err, "category", b.Category)
		writeError(w, http.StatusInternalServerError, "failed to save budget")
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleBudgetDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := s.storage.BudgetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "budget not found")
			return
		}
		slog.ErrorContext(ctx, "Budget lookup failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to load budget")
		return
	}

	spending, err := s.storage.SpendingByCategory(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Category spending query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load budget")
		return
	}

	writeJSON(w, http.StatusOK, derive.BuildBudgetUtilization(b, spending, s.symbol(ctx)))
}

type budgetUpdateRequest struct {
	Limit string `json:"limit"`
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req budgetUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Limit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid limit")
		return
	}

	b, err := s.storage.BudgetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "budget not found")
			return
		}
		slog.ErrorContext(ctx, "Budget lookup failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to load budget")
		return
	}

	b.Limit = core.Money{Cents: cents}
	if _, err := s.tracker.SaveBudget(ctx, b); err != nil {
		slog.ErrorContext(ctx, "Budget update failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to update budget")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.tracker.DeleteBudget(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "budget not found")
			return
		}
		slog.ErrorContext(ctx, "Budget delete failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete budget")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type settingsResponse struct {
	CurrencySymbol string `json:"currency_symbol"`
	ThemeMode      string `json:"theme_mode"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	symbol, err := s.storage.CurrencySymbol(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Currency symbol lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	theme, err := s.storage.ThemeMode(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Theme mode lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{CurrencySymbol: symbol, ThemeMode: theme})
}

type settingsRequest struct {
	CurrencySymbol string `json:"currency_symbol"`
	ThemeMode      string `json:"theme_mode"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate the whole request before writing anything, so a rejected
	// update leaves both settings untouched.
	symbol := strings.TrimSpace(req.CurrencySymbol)
	theme := strings.ToUpper(strings.TrimSpace(req.ThemeMode))
	switch theme {
	case "", "SYSTEM", "LIGHT", "DARK":
	default:
		writeError(w, http.StatusUnprocessableEntity, "theme_mode must be SYSTEM, LIGHT or DARK")
		return
	}

	if symbol != "" {
		if err := s.storage.SaveCurrency(ctx, symbol); err != nil {
			slog.ErrorContext(ctx, "Currency save failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
		// Formatted amounts embed the symbol, so cached views are stale now.
		s.invalidateDerived()
	}

	if theme != "" {
		if err := s.storage.SaveTheme(ctx, theme); err != nil {
			slog.ErrorContext(ctx, "Theme save failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}

	s.handleGetSettings(w, r)
}

// isValidationError reports whether err stems from domain validation rather
// than storage or transport.
func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidKind) ||
		errors.Is(err, core.ErrInvalidMonth) ||
		errors.Is(err, core.ErrInvalidYear) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrZeroDate)
}
