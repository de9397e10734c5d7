// Package core holds the domain model shared by storage, services and the
// derivation layer.
//
// This file contains money parsing and formatting. Amounts are kept as cents
// to avoid floating-point drift; formatting always renders two fraction
// digits with thousands grouping, and a negative sign precedes the currency
// symbol ("-$500.00", never "$-500.00").
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted. Non-numeric, negative and zero inputs are rejected; the write
// boundary simply does not attempt the write in that case.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	cents := iv*100 + frac
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// FormatAmount renders cents with the given currency symbol, e.g.
// FormatAmount(123456, "$") -> "$1,234.56" and FormatAmount(-5000, "$") ->
// "-$50.00".
func FormatAmount(cents int64, symbol string) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	rem := cents % 100
	s := groupThousands(whole) + "." + pad2(rem)
	if neg {
		return "-" + symbol + s
	}
	return symbol + s
}

// SignedAmount renders the list-row form: "- $12.50" for expenses and
// "+ $12.50" for income. The magnitude is always positive.
func SignedAmount(cents int64, kind TransactionKind, symbol string) string {
	formatted := FormatAmount(abs(cents), symbol)
	if kind == Expense {
		return "- " + formatted
	}
	return "+ " + formatted
}

func groupThousands(v int64) string {
	digits := strconv.FormatInt(v, 10)
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
