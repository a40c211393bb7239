package core

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != 6 || d.Day() != 15 {
		t.Fatalf("unexpected date %v", d)
	}
	if d.MonthKey() != "2024-06" {
		t.Fatalf("month key = %q", d.MonthKey())
	}

	for _, bad := range []string{"", "15/06/2024", "2024-13-01", "soon"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}

func TestTransactionInputValidate(t *testing.T) {
	base := TransactionInput{
		Amount:   "25.50",
		Category: "Food",
		Date:     "2024-06-01",
		Kind:     Expense,
	}

	tx, err := base.Validate()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if tx.Amount.Cents != 2550 || tx.Kind != Expense || tx.Date != "2024-06-01" {
		t.Fatalf("unexpected transaction %+v", tx)
	}

	cases := []struct {
		name string
		mut  func(*TransactionInput)
		want error
	}{
		{"empty amount", func(in *TransactionInput) { in.Amount = "" }, ErrEmptyAmount},
		{"blank amount", func(in *TransactionInput) { in.Amount = "   " }, ErrEmptyAmount},
		{"negative amount", func(in *TransactionInput) { in.Amount = "-5" }, ErrInvalidAmount},
		{"zero amount", func(in *TransactionInput) { in.Amount = "0" }, ErrInvalidAmount},
		{"non numeric", func(in *TransactionInput) { in.Amount = "abc" }, ErrInvalidAmount},
		{"no category", func(in *TransactionInput) { in.Category = "" }, ErrNoCategorySelected},
		{"no date", func(in *TransactionInput) { in.Date = "" }, ErrEmptyDate},
		{"bad date", func(in *TransactionInput) { in.Date = "01/06/2024" }, ErrEmptyDate},
	}
	for _, tc := range cases {
		in := base
		tc.mut(&in)
		if _, err := in.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Category: "Food", Amount: Money{Cents: 10000}, Month: "2024-06", AlertThreshold: 80}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		b    Budget
		want error
	}{
		{"zero amount", Budget{Category: "Food", Month: "2024-06"}, ErrInvalidAmount},
		{"negative amount", Budget{Category: "Food", Amount: Money{Cents: -1}, Month: "2024-06"}, ErrInvalidAmount},
		{"blank category", Budget{Category: "  ", Amount: Money{Cents: 1}, Month: "2024-06"}, ErrInvalidCategory},
		{"bad month", Budget{Category: "Food", Amount: Money{Cents: 1}, Month: "June"}, ErrEmptyDate},
		{"threshold out of range", Budget{Category: "Food", Amount: Money{Cents: 1}, Month: "2024-06", AlertThreshold: 150}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		if err := tc.b.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
