package core

import (
	"errors"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		Title:    "Groceries",
		Amount:   Money{Cents: 1250},
		Kind:     Expense,
		Category: "Food",
		Date:     time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(tr *Transaction) {}, nil},
		{"zero amount", func(tr *Transaction) { tr.Amount.Cents = 0 }, ErrInvalidAmount},
		{"negative amount", func(tr *Transaction) { tr.Amount.Cents = -100 }, ErrInvalidAmount},
		{"bad kind", func(tr *Transaction) { tr.Kind = "TRANSFER" }, ErrInvalidKind},
		{"blank category", func(tr *Transaction) { tr.Category = "   " }, ErrEmptyCategory},
		{"zero date", func(tr *Transaction) { tr.Date = time.Time{} }, ErrZeroDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTransaction()
			tt.mutate(&tr)
			err := tr.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBudgetValidate(t *testing.T) {
	valid := Budget{Category: "Food", Limit: Money{Cents: 10000}, Month: 3, Year: 2025}

	tests := []struct {
		name    string
		mutate  func(*Budget)
		wantErr error
	}{
		{"valid", func(b *Budget) {}, nil},
		{"zero limit", func(b *Budget) { b.Limit.Cents = 0 }, ErrInvalidAmount},
		{"blank category", func(b *Budget) { b.Category = "" }, ErrEmptyCategory},
		{"month too low", func(b *Budget) { b.Month = 0 }, ErrInvalidMonth},
		{"month too high", func(b *Budget) { b.Month = 13 }, ErrInvalidMonth},
		{"bad year", func(b *Budget) { b.Year = 0 }, ErrInvalidYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			err := b.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	tr := validTransaction()
	if got := tr.DisplayTitle(); got != "Groceries" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "Groceries")
	}

	tr.Title = "  "
	if got := tr.DisplayTitle(); got != "Food" {
		t.Errorf("DisplayTitle() with blank title = %q, want %q", got, "Food")
	}
}
