package derive

import (
	"sort"
	"strings"
	"time"

	"saveit/internal/core"
)

// Filter enumerations. Each criterion is independent; a transaction passes
// only if it satisfies all five.
type (
	KindFilter string
	DateFilter string
	SortOption string
)

const (
	KindAll     KindFilter = "ALL"
	KindExpense KindFilter = "EXPENSE"
	KindIncome  KindFilter = "INCOME"

	DateAllTime    DateFilter = "ALL_TIME"
	DateThisMonth  DateFilter = "THIS_MONTH"
	DateLast30Days DateFilter = "LAST_30_DAYS"
	DateLast7Days  DateFilter = "LAST_7_DAYS"

	SortNewest        SortOption = "NEWEST"
	SortOldest        SortOption = "OLDEST"
	SortHighestAmount SortOption = "HIGHEST_AMOUNT"
	SortLowestAmount  SortOption = "LOWEST_AMOUNT"
)

// Criteria collects the five independent search filters into one record so
// a change to any one of them recomputes the whole pipeline.
type Criteria struct {
	Query    string
	Kind     KindFilter
	Date     DateFilter
	Category string // empty means any category
	Sort     SortOption
}

// Search filters the full transaction list by the conjunction of all
// criteria, sorts the survivors by the chosen comparator, and maps them to
// display rows. The sort is stable: ties keep their prior relative order.
// Date-range predicates are evaluated against now at call time, not cached.
func Search(transactions []core.Transaction, c Criteria, symbol string, now time.Time) []TransactionRow {
	filtered := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if matches(t, c, now) {
			filtered = append(filtered, t)
		}
	}

	switch c.Sort {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Date.Before(filtered[j].Date)
		})
	case SortHighestAmount:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Amount.Cents > filtered[j].Amount.Cents
		})
	case SortLowestAmount:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Amount.Cents < filtered[j].Amount.Cents
		})
	default: // SortNewest
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Date.After(filtered[j].Date)
		})
	}

	rows := make([]TransactionRow, 0, len(filtered))
	for _, t := range filtered {
		rows = append(rows, rowFromTransaction(t, symbol, layoutDayDate))
	}
	return rows
}

func matches(t core.Transaction, c Criteria, now time.Time) bool {
	if q := strings.ToLower(c.Query); q != "" {
		title := strings.ToLower(t.Title)
		note := strings.ToLower(t.Note)
		if !strings.Contains(title, q) && !strings.Contains(note, q) {
			return false
		}
	}

	switch c.Kind {
	case KindExpense:
		if t.Kind != core.Expense {
			return false
		}
	case KindIncome:
		if t.Kind != core.Income {
			return false
		}
	}

	if c.Category != "" && t.Category != c.Category {
		return false
	}

	return inDateRange(t.Date, c.Date, now)
}

// inDateRange implements the date-range predicates. "This month" is
// calendar year+month equality, not a rolling window; the last-30/7-day
// filters compare raw millisecond differences from now, so partial days
// count.
func inDateRange(date time.Time, filter DateFilter, now time.Time) bool {
	switch filter {
	case DateThisMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()
	case DateLast30Days:
		return now.UnixMilli()-date.UnixMilli() <= 30*24*60*60*1000
	case DateLast7Days:
		return now.UnixMilli()-date.UnixMilli() <= 7*24*60*60*1000
	default: // DateAllTime
		return true
	}
}
