package storage

import (
	"time"

	"saveit/internal/core"
)

// Export states for the transaction mirror (see internal/worker).
const (
	ExportPending int64 = 0
	ExportDone    int64 = 1
	ExportError   int64 = 2
)

// Transaction is the database row shape. Dates are stored as Unix
// milliseconds, amounts as cents.
type Transaction struct {
	ID          int64
	Title       string
	AmountCents int64
	Kind        string
	Category    string
	DateMillis  int64
	Note        string
	ExportState int64
}

func (t Transaction) ToCore() core.Transaction {
	return core.Transaction{
		ID:       t.ID,
		Title:    t.Title,
		Amount:   core.Money{Cents: t.AmountCents},
		Kind:     core.TransactionKind(t.Kind),
		Category: t.Category,
		Date:     time.UnixMilli(t.DateMillis).UTC(),
		Note:     t.Note,
	}
}

func TransactionFromCore(t core.Transaction) Transaction {
	return Transaction{
		ID:          t.ID,
		Title:       t.Title,
		AmountCents: t.Amount.Cents,
		Kind:        string(t.Kind),
		Category:    t.Category,
		DateMillis:  t.Date.UnixMilli(),
		Note:        t.Note,
	}
}

type Budget struct {
	ID         int64
	Category   string
	LimitCents int64
	Month      int64
	Year       int64
}

func (b Budget) ToCore() core.Budget {
	return core.Budget{
		ID:       b.ID,
		Category: b.Category,
		Limit:    core.Money{Cents: b.LimitCents},
		Month:    int(b.Month),
		Year:     int(b.Year),
	}
}

func BudgetFromCore(b core.Budget) Budget {
	return Budget{
		ID:         b.ID,
		Category:   b.Category,
		LimitCents: b.Limit.Cents,
		Month:      int64(b.Month),
		Year:       int64(b.Year),
	}
}
