// Package derive turns persisted records and settings into display-ready
// view state. Everything here is a pure function over already-materialized
// inputs; nothing blocks and nothing is cached.
package derive

import (
	"time"

	"saveit/internal/core"
)

// Date layouts used by the view rows.
const (
	layoutListDateTime = "Jan 02, 03:04 PM" // recent-activity rows
	layoutDayDate      = "Jan 02, 2006"     // search rows, bucket labels
	layoutTimeOnly     = "03:04 PM"         // rows inside a day bucket
	layoutDetailDate   = "Monday, 02 Jan 2006"
	layoutDayKey       = "20060102" // day-granularity comparison key
)

// Amount colors for list rows.
const (
	colorExpense = "#F44336"
	colorIncome  = "#4CAF50"
)

// TransactionRow is one display row of a transaction list.
type TransactionRow struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

func rowFromTransaction(t core.Transaction, symbol, dateLayout string) TransactionRow {
	config := core.CategoryByName(t.Category)
	color := colorIncome
	if t.Kind == core.Expense {
		color = colorExpense
	}
	return TransactionRow{
		ID:     t.ID,
		Title:  t.DisplayTitle(),
		Date:   t.Date.Format(dateLayout),
		Amount: core.SignedAmount(t.Amount.Cents, t.Kind, symbol),
		Color:  color,
		Icon:   config.Icon,
	}
}

// Rows maps transactions to day-dated display rows, preserving input order.
func Rows(transactions []core.Transaction, symbol string) []TransactionRow {
	rows := make([]TransactionRow, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, rowFromTransaction(t, symbol, layoutDayDate))
	}
	return rows
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Format(layoutDayKey) == b.Format(layoutDayKey)
}
