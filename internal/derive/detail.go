package derive

import "saveit/internal/core"

// TransactionDetail is the fully formatted single-transaction view.
type TransactionDetail struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Note       string `json:"note,omitempty"`
	Category   string `json:"category"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	Background string `json:"background"`
	Kind       string `json:"kind"`
	IsExpense  bool   `json:"is_expense"`
}

// BuildTransactionDetail formats one transaction for the detail view. The
// amount here is unsigned; the kind carries the direction.
func BuildTransactionDetail(t core.Transaction, symbol string) TransactionDetail {
	config := core.CategoryByName(t.Category)
	color := colorIncome
	if t.Kind == core.Expense {
		color = colorExpense
	}
	return TransactionDetail{
		ID:         t.ID,
		Title:      t.DisplayTitle(),
		Amount:     core.FormatAmount(t.Amount.Cents, symbol),
		Date:       t.Date.Format(layoutDetailDate),
		Time:       t.Date.Format(layoutTimeOnly),
		Note:       t.Note,
		Category:   t.Category,
		Icon:       config.Icon,
		Color:      color,
		Background: config.Background,
		Kind:       string(t.Kind),
		IsExpense:  t.Kind == core.Expense,
	}
}
