package derive

import "saveit/internal/core"

// HomeSummary is the balance card plus recent activity.
type HomeSummary struct {
	Balance string           `json:"balance"`
	Income  string           `json:"income"`
	Expense string           `json:"expense"`
	Recent  []TransactionRow `json:"recent"`
}

// BuildHomeSummary computes balance = income - expense and maps the recent
// transactions to display rows. Absent totals are passed as zero by the
// storage layer, which keeps the balance identity trivially true for an
// empty ledger.
func BuildHomeSummary(incomeCents, expenseCents int64, recent []core.Transaction, symbol string) HomeSummary {
	balance := incomeCents - expenseCents
	rows := make([]TransactionRow, 0, len(recent))
	for _, t := range recent {
		rows = append(rows, rowFromTransaction(t, symbol, layoutListDateTime))
	}
	return HomeSummary{
		Balance: core.FormatAmount(balance, symbol),
		Income:  core.FormatAmount(incomeCents, symbol),
		Expense: core.FormatAmount(expenseCents, symbol),
		Recent:  rows,
	}
}
