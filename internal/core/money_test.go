package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		cents  int64
		symbol string
		want   string
	}{
		{15000, "$", "$150.00"},
		{20000, "$", "$200.00"},
		{5000, "$", "$50.00"},
		{123456, "$", "$1,234.56"},
		{100000000, "$", "$1,000,000.00"},
		{-50000, "$", "-$500.00"},
		{5, "$", "$0.05"},
		{0, "$", "$0.00"},
		{999, "€", "€9.99"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.cents, tc.symbol); got != tc.want {
			t.Errorf("FormatAmount(%d, %q) = %q, want %q", tc.cents, tc.symbol, got, tc.want)
		}
	}
}

func TestSignedAmount(t *testing.T) {
	cases := []struct {
		cents int64
		kind  TransactionKind
		want  string
	}{
		{1250, Expense, "- $12.50"},
		{1250, Income, "+ $12.50"},
		{-1250, Expense, "- $12.50"}, // magnitude only
	}
	for _, tc := range cases {
		if got := SignedAmount(tc.cents, tc.kind, "$"); got != tc.want {
			t.Errorf("SignedAmount(%d, %s) = %q, want %q", tc.cents, tc.kind, got, tc.want)
		}
	}
}
