package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense TransactionKind = "EXPENSE"
	Income  TransactionKind = "INCOME"
)

type (
	TransactionKind string

	Money struct {
		Cents int64
	}

	// Transaction is a recorded monetary event. Dates are compared at
	// millisecond resolution.
	Transaction struct {
		ID       int64
		Title    string
		Amount   Money
		Kind     TransactionKind
		Category string
		Date     time.Time
		Note     string
	}

	// Budget is a monthly spending cap for one category.
	Budget struct {
		ID       int64
		Category string
		Limit    Money
		Month    int // 1-12
		Year     int
	}

	// CategorySpend is an expense total aggregated by category name.
	CategorySpend struct {
		Category string
		Total    Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidYear   = errors.New("invalid year")
	ErrEmptyCategory = errors.New("empty category")
	ErrZeroDate      = errors.New("date cannot be zero")
)

func (k TransactionKind) Valid() bool {
	return k == Expense || k == Income
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// DisplayTitle falls back to the category name when no title was entered.
func (t Transaction) DisplayTitle() string {
	if strings.TrimSpace(t.Title) == "" {
		return t.Category
	}
	return t.Title
}

func (b Budget) Validate() error {
	if err := b.Limit.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidMonth
	}
	if b.Year < 1 {
		return ErrInvalidYear
	}
	return nil
}
