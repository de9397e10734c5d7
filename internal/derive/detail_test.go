package derive

import (
	"testing"
	"time"

	"saveit/internal/core"
)

func TestBuildTransactionDetail(t *testing.T) {
	tr := core.Transaction{
		ID:       42,
		Title:    "Concert tickets",
		Amount:   core.Money{Cents: 12050},
		Kind:     core.Expense,
		Category: "Fun",
		Date:     time.Date(2025, 3, 14, 21, 15, 0, 0, time.UTC),
		Note:     "two seats",
	}

	got := BuildTransactionDetail(tr, "$")

	if got.Amount != "$120.50" {
		t.Errorf("Amount = %q, want %q (unsigned)", got.Amount, "$120.50")
	}
	if got.Date != "Friday, 14 Mar 2025" {
		t.Errorf("Date = %q, want %q", got.Date, "Friday, 14 Mar 2025")
	}
	if got.Time != "09:15 PM" {
		t.Errorf("Time = %q, want %q", got.Time, "09:15 PM")
	}
	if !got.IsExpense || got.Kind != "EXPENSE" {
		t.Errorf("Kind/IsExpense = %q/%v, want EXPENSE/true", got.Kind, got.IsExpense)
	}
	if got.Icon != "movie" {
		t.Errorf("Icon = %q, want %q", got.Icon, "movie")
	}
	if got.Color != "#F44336" {
		t.Errorf("Color = %q, want %q", got.Color, "#F44336")
	}
}
